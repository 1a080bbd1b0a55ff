// Package hooks implements a named-hook registry in the style of classic
// plugin systems: hosts and plugins register action callbacks (fire-and-forget
// notifications) and filter callbacks (value transformers) against string
// tags, then trigger every registration for a tag in priority order.
//
// The registry is payload agnostic. Options and filter values travel through
// as `any`; callbacks agree on shapes out of band, exactly like the plugin
// ecosystems this package is modeled after.
//
// Hosts typically expose one process-wide registry through the package-level
// functions (AddAction, DoAction, ApplyFilters, ...) and hand isolated
// instances to tests or plugin sandboxes via New.
package hooks
