package journal

import (
	"context"

	"github.com/goliatone/go-hooks/pkg/types"
)

// SinkObserver bridges a DispatchSink to the registry's AfterDispatch hook.
// Sink failures are logged and swallowed: journaling is an observation layer
// and must never disturb dispatch.
func SinkObserver(sink types.DispatchSink, logger types.Logger) func(context.Context, types.DispatchRecord) {
	if logger == nil {
		logger = types.NopLogger{}
	}
	return func(ctx context.Context, record types.DispatchRecord) {
		if sink == nil {
			return
		}
		if err := sink.Record(ctx, record); err != nil {
			logger.Error("journal sink failed", err, "tag", record.Tag, "kind", record.Kind)
		}
	}
}
