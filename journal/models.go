package journal

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LogEntry models the persisted row in hook_dispatches.
type LogEntry struct {
	bun.BaseModel `bun:"table:hook_dispatches"`

	ID         uuid.UUID      `bun:",pk,type:uuid"`
	Tag        string         `bun:"tag"`
	Kind       string         `bun:"kind"`
	Callbacks  int            `bun:"callbacks"`
	DurationUS int64          `bun:"duration_us"`
	Meta       map[string]any `bun:"meta,type:jsonb"`
	CreatedAt  time.Time      `bun:"created_at"`
}
