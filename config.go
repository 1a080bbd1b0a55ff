package hooks

import "github.com/goliatone/go-hooks/pkg/types"

// Config captures the optional dependencies a Registry can be wired with.
// Every field has a working default so callers can pass the zero value.
type Config struct {
	// Logger receives debug lines for register and dispatch events. Defaults
	// to types.NopLogger.
	Logger types.Logger

	// Clock supplies dispatch timestamps and durations. Defaults to
	// types.SystemClock.
	Clock types.Clock

	// Hooks are observer callbacks fired after registry workflows complete.
	// AfterDispatch fires after every DoAction/ApplyFilters call that invoked
	// at least one callback; it never fires for unknown-tag no-ops.
	Hooks types.Hooks
}

func normalizeConfig(cfg Config) Config {
	if cfg.Logger == nil {
		cfg.Logger = types.NopLogger{}
	}
	if cfg.Clock == nil {
		cfg.Clock = types.SystemClock{}
	}
	return cfg
}
