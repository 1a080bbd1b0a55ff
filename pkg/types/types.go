package types

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DispatchKind distinguishes action dispatches from filter dispatches.
type DispatchKind string

const (
	DispatchKindAction DispatchKind = "action"
	DispatchKindFilter DispatchKind = "filter"
)

// Valid reports whether the kind is one of the two dispatch kinds.
func (k DispatchKind) Valid() bool {
	return k == DispatchKindAction || k == DispatchKindFilter
}

// DispatchRecord describes a completed dispatch so downstream systems can
// audit hook traffic, power dashboards, or debug plugin ordering issues.
type DispatchRecord struct {
	ID         uuid.UUID
	Tag        string
	Kind       DispatchKind
	Callbacks  int
	Duration   time.Duration
	Meta       map[string]any
	OccurredAt time.Time
}

// Hooks groups optional callbacks invoked after registry workflows complete.
type Hooks struct {
	AfterDispatch func(context.Context, DispatchRecord)
}

// DispatchSink is the minimal DI contract for emitting dispatch records. Keep
// it stable and limited to Record so hosts can swap sinks without breaking
// changes.
type DispatchSink interface {
	Record(context.Context, DispatchRecord) error
}

// DispatchRepository exposes read-side access to persisted dispatch records.
type DispatchRepository interface {
	ListDispatches(ctx context.Context, filter DispatchFilter) (DispatchPage, error)
	DispatchStats(ctx context.Context, filter DispatchStatsFilter) (DispatchStats, error)
}

// Pagination supports query pagination across feeds and dashboards.
type Pagination struct {
	Limit  int
	Offset int
}

// DispatchFilter collects filters accepted by the dispatch feed.
type DispatchFilter struct {
	Tags       []string
	Kinds      []DispatchKind
	Since      time.Time
	Until      time.Time
	Pagination Pagination
}

// DispatchPage represents a paginated slice of the dispatch feed.
type DispatchPage struct {
	Records    []DispatchRecord
	Total      int
	NextOffset int
	HasMore    bool
}

// DispatchStatsFilter narrows the stats aggregation window.
type DispatchStatsFilter struct {
	Tags  []string
	Since time.Time
	Until time.Time
}

// DispatchStats powers dashboard widgets summarizing hook traffic.
type DispatchStats struct {
	Total  int
	ByTag  map[string]int
	ByKind map[string]int
}

// Clock abstracts time retrieval for deterministic testing.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID creation.
type IDGenerator interface {
	UUID() uuid.UUID
}

// Logger captures basic logging hooks used by the registry and journal.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// SystemClock defers to time.Now for production usage.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator produces UUIDv4 identifiers.
type UUIDGenerator struct{}

// UUID returns a randomly generated UUID.
func (UUIDGenerator) UUID() uuid.UUID { return uuid.New() }

// NopLogger discards all log lines.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, error, ...any) {}

var (
	// ErrNilCallback indicates a nil callback was passed to a register or
	// remove operation.
	ErrNilCallback = errors.New("go-hooks: nil callback")
	// ErrMissingSink occurs when a sink decorator was constructed without a
	// delegate sink.
	ErrMissingSink = errors.New("go-hooks: missing dispatch sink")
)
