package journal

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-hooks/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed dispatch journal.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*LogEntry]
	Clock      types.Clock
	IDGen      types.IDGenerator
	Sanitizer  *Sanitizer
}

type dispatchStore interface {
	repository.Repository[*LogEntry]
}

// Repository persists dispatch records and exposes query helpers.
type Repository struct {
	dispatchStore
	db        *bun.DB
	clock     types.Clock
	idGen     types.IDGenerator
	sanitizer *Sanitizer
}

// NewRepository constructs a repository that implements both DispatchSink and
// DispatchRepository. When WithCache is supplied the underlying store is
// wrapped in a go-repository-cache decorator unless the caller already
// provided a cached repository.
func NewRepository(cfg RepositoryConfig, options ...RepositoryOption) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("journal: db or repository required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*LogEntry]{
			NewRecord: func() *LogEntry { return &LogEntry{} },
			GetID: func(entry *LogEntry) uuid.UUID {
				if entry == nil {
					return uuid.Nil
				}
				return entry.ID
			},
			SetID: func(entry *LogEntry, id uuid.UUID) {
				if entry != nil {
					entry.ID = id
				}
			},
		})
	}

	opts := applyRepositoryOptions(options)
	if opts.CacheEnabled {
		wrapped, err := maybeWrapCache(repo, opts.CacheConfig)
		if err != nil {
			return nil, err
		}
		repo = wrapped
	}

	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}

	return &Repository{
		dispatchStore: repo,
		db:            cfg.DB,
		clock:         clock,
		idGen:         idGen,
		sanitizer:     cfg.Sanitizer,
	}, nil
}

var (
	_ repository.Repository[*LogEntry] = (*Repository)(nil)
	_ types.DispatchSink               = (*Repository)(nil)
	_ types.DispatchRepository         = (*Repository)(nil)
)

// Record persists a dispatch record. Meta payloads run through the configured
// sanitizer (or the package default) before they reach storage.
func (r *Repository) Record(ctx context.Context, record types.DispatchRecord) error {
	record = SanitizeRecord(r.sanitizer, record)
	entry := toLogEntry(record)
	if entry.ID == uuid.Nil {
		entry.ID = r.idGen.UUID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.clock.Now()
	}
	_, err := r.Create(ctx, entry)
	return err
}

// ListDispatches returns a paginated feed filtered by the supplied criteria.
func (r *Repository) ListDispatches(ctx context.Context, filter types.DispatchFilter) (types.DispatchPage, error) {
	pagination := normalizePagination(filter.Pagination, 50, 200)
	criteria := []repository.SelectCriteria{
		func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.OrderExpr("created_at DESC").
				Limit(pagination.Limit).
				Offset(pagination.Offset)
			return applyDispatchFilter(q, filter)
		},
	}

	rows, total, err := r.List(ctx, criteria...)
	if err != nil {
		return types.DispatchPage{}, err
	}
	records := make([]types.DispatchRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, toDispatchRecord(row))
	}
	return types.DispatchPage{
		Records:    records,
		Total:      total,
		NextOffset: pagination.Offset + pagination.Limit,
		HasMore:    pagination.Offset+pagination.Limit < total,
	}, nil
}

// DispatchStats aggregates totals by tag and kind for dashboard widgets.
func (r *Repository) DispatchStats(ctx context.Context, filter types.DispatchStatsFilter) (types.DispatchStats, error) {
	stats := types.DispatchStats{
		ByTag:  make(map[string]int),
		ByKind: make(map[string]int),
	}
	if r.db == nil {
		return stats, errors.New("journal: stats requires bun DB")
	}
	query := r.db.NewSelect().
		Table("hook_dispatches").
		ColumnExpr("COUNT(*) AS total").
		ColumnExpr("tag").
		ColumnExpr("kind").
		Group("tag").
		Group("kind")
	query = applyDispatchStatsFilter(query, filter)

	type row struct {
		Tag   string `bun:"tag"`
		Kind  string `bun:"kind"`
		Total int    `bun:"total"`
	}
	var rows []row
	if err := query.Scan(ctx, &rows); err != nil {
		return stats, err
	}
	total := 0
	for _, rec := range rows {
		stats.ByTag[rec.Tag] += rec.Total
		stats.ByKind[rec.Kind] += rec.Total
		total += rec.Total
	}
	stats.Total = total
	return stats, nil
}

func maybeWrapCache(repo repository.Repository[*LogEntry], cfg *cache.Config) (repository.Repository[*LogEntry], error) {
	if _, ok := repo.(*repositorycache.CachedRepository[*LogEntry]); ok {
		return repo, nil
	}
	conf := cache.DefaultConfig()
	if cfg != nil {
		conf = *cfg
	}
	service, err := cache.NewCacheService(conf)
	if err != nil {
		return nil, err
	}
	return repositorycache.New(repo, service, cache.NewDefaultKeySerializer()), nil
}

func applyDispatchFilter(q *bun.SelectQuery, filter types.DispatchFilter) *bun.SelectQuery {
	if len(filter.Tags) > 0 {
		q = q.Where("tag IN (?)", bun.In(filter.Tags))
	}
	if len(filter.Kinds) > 0 {
		kinds := make([]string, 0, len(filter.Kinds))
		for _, kind := range filter.Kinds {
			kinds = append(kinds, string(kind))
		}
		q = q.Where("kind IN (?)", bun.In(kinds))
	}
	if !filter.Since.IsZero() {
		q = q.Where("created_at >= ?", filter.Since)
	}
	if !filter.Until.IsZero() {
		q = q.Where("created_at <= ?", filter.Until)
	}
	return q
}

func applyDispatchStatsFilter(q *bun.SelectQuery, filter types.DispatchStatsFilter) *bun.SelectQuery {
	if len(filter.Tags) > 0 {
		q = q.Where("tag IN (?)", bun.In(filter.Tags))
	}
	if !filter.Since.IsZero() {
		q = q.Where("created_at >= ?", filter.Since)
	}
	if !filter.Until.IsZero() {
		q = q.Where("created_at <= ?", filter.Until)
	}
	return q
}

func toLogEntry(record types.DispatchRecord) *LogEntry {
	return &LogEntry{
		ID:         record.ID,
		Tag:        record.Tag,
		Kind:       string(record.Kind),
		Callbacks:  record.Callbacks,
		DurationUS: record.Duration.Microseconds(),
		Meta:       cloneMap(record.Meta),
		CreatedAt:  record.OccurredAt,
	}
}

func toDispatchRecord(entry *LogEntry) types.DispatchRecord {
	if entry == nil {
		return types.DispatchRecord{}
	}
	return types.DispatchRecord{
		ID:         entry.ID,
		Tag:        entry.Tag,
		Kind:       types.DispatchKind(entry.Kind),
		Callbacks:  entry.Callbacks,
		Duration:   time.Duration(entry.DurationUS) * time.Microsecond,
		Meta:       cloneMap(entry.Meta),
		OccurredAt: entry.CreatedAt,
	}
}

func normalizePagination(p types.Pagination, def, max int) types.Pagination {
	if p.Limit <= 0 {
		p.Limit = def
	}
	if p.Limit > max {
		p.Limit = max
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
