package journal

import (
	"context"

	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-hooks/pkg/types"
)

// FeatureJournalDispatch is the feature key consulted before recording a
// dispatch. Hosts register it with their go-featuregate provider to toggle
// journaling at runtime without rewiring the registry.
const FeatureJournalDispatch = "hooks.journal.dispatch"

// GatedSink wraps a DispatchSink behind a feature gate so hosts can turn
// journaling on and off per environment. A nil gate behaves as always-on.
type GatedSink struct {
	sink types.DispatchSink
	gate featuregate.FeatureGate
	key  string
}

// NewGatedSink decorates sink with the supplied gate. Key defaults to
// FeatureJournalDispatch when empty.
func NewGatedSink(sink types.DispatchSink, gate featuregate.FeatureGate, key string) (*GatedSink, error) {
	if sink == nil {
		return nil, types.ErrMissingSink
	}
	if key == "" {
		key = FeatureJournalDispatch
	}
	return &GatedSink{sink: sink, gate: gate, key: key}, nil
}

var _ types.DispatchSink = (*GatedSink)(nil)

// Record forwards to the wrapped sink when the feature is enabled. Gate
// evaluation errors fail open: a broken flag provider must not drop audit
// records.
func (s *GatedSink) Record(ctx context.Context, record types.DispatchRecord) error {
	if s.gate != nil {
		enabled, err := s.gate.Enabled(ctx, s.key)
		if err == nil && !enabled {
			return nil
		}
	}
	return s.sink.Record(ctx, record)
}
