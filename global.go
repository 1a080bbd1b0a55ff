package hooks

import "sync"

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry used by the package-level
// functions. The registry is created lazily on first access.
func Default() *Registry {
	defaultOnce.Do(func() {
		if defaultRegistry == nil {
			defaultRegistry = New(Config{})
		}
	})
	return defaultRegistry
}

// SetDefault replaces the process-wide registry. Call this during
// initialization, before any package-level function runs, when the host wants
// the global surface journaled or logged.
func SetDefault(r *Registry) {
	if r == nil {
		return
	}
	defaultOnce.Do(func() {})
	defaultRegistry = r
}

// AddAction registers an action on the default registry.
func AddAction(tag string, fn ActionFunc, priority ...int) error {
	return Default().AddAction(tag, fn, priority...)
}

// AddFilter registers a filter on the default registry.
func AddFilter(tag string, fn FilterFunc, priority ...int) error {
	return Default().AddFilter(tag, fn, priority...)
}

// RemoveAction removes every registration of fn under tag on the default
// registry.
func RemoveAction(tag string, fn ActionFunc) error {
	return Default().RemoveAction(tag, fn)
}

// RemoveFilter removes every registration of fn under tag on the default
// registry.
func RemoveFilter(tag string, fn FilterFunc) error {
	return Default().RemoveFilter(tag, fn)
}

// DoAction dispatches tag's actions on the default registry.
func DoAction(tag string, options any) {
	Default().DoAction(tag, options)
}

// ApplyFilters threads value through tag's filters on the default registry.
func ApplyFilters(tag string, value any, options any) any {
	return Default().ApplyFilters(tag, value, options)
}

// HasAction reports whether the default registry has actions under tag.
func HasAction(tag string) bool {
	return Default().HasAction(tag)
}

// HasFilter reports whether the default registry has filters under tag.
func HasFilter(tag string) bool {
	return Default().HasFilter(tag)
}

// RemoveAllActions drops every action under tag on the default registry.
func RemoveAllActions(tag string) {
	Default().RemoveAllActions(tag)
}

// RemoveAllFilters drops every filter under tag on the default registry.
func RemoveAllFilters(tag string) {
	Default().RemoveAllFilters(tag)
}
