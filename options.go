package hooks

import (
	"fmt"

	opts "github.com/goliatone/go-options"
)

// MergeOptions composes dispatch option maps from layered sources, e.g. host
// defaults, site configuration, and call-site overrides. Later layers win
// key conflicts. The registry itself never interprets options; this is a
// convenience for hosts assembling the payload they pass to DoAction or
// ApplyFilters.
func MergeOptions(layers ...map[string]any) (map[string]any, error) {
	if len(layers) == 0 {
		return map[string]any{}, nil
	}
	stacked := make([]opts.Layer[map[string]any], 0, len(layers))
	for i, payload := range layers {
		if payload == nil {
			payload = map[string]any{}
		}
		name := fmt.Sprintf("layer-%d", i)
		scope := opts.NewScope(name, i)
		stacked = append(stacked, opts.NewLayer(scope, payload, opts.WithSnapshotID[map[string]any](name)))
	}
	stack, err := opts.NewStack(stacked...)
	if err != nil {
		return nil, err
	}
	merged, err := stack.Merge()
	if err != nil {
		return nil, err
	}
	if merged.Value == nil {
		return map[string]any{}, nil
	}
	return merged.Value, nil
}
