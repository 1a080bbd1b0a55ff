package hooks

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-hooks/pkg/types"
)

// ActionFunc is the callback shape for actions. The options payload is
// whatever the dispatching caller supplied; callbacks that expect nothing can
// ignore it.
type ActionFunc func(options any)

// FilterFunc is the callback shape for filters. It receives the current value
// and the dispatch options and returns the replacement value. The returned
// value may be of a different type than the input; the chain does not enforce
// type stability between stages.
type FilterFunc func(value any, options any) any

// DefaultPriority is applied when a register call omits the priority.
const DefaultPriority = 10

// entry pairs a callback with its dispatch priority. seq records registration
// order and breaks priority ties so dispatch order is deterministic even
// without a stable sort.
type entry struct {
	priority int
	seq      uint64
	ref      uintptr
	action   ActionFunc
	filter   FilterFunc
}

// Registry stores action and filter callbacks keyed by tag and dispatches
// them in ascending priority order. A tag with no registrations behaves
// identically to a tag that never existed.
//
// The two stores are guarded by a mutex so hosts with multiple goroutines can
// share one instance, but the lock is never held while callbacks run: every
// dispatch operates on a snapshot taken up front, so callbacks may re-enter
// the registry (including for the tag currently dispatching) without
// deadlocking, and mutations made mid-dispatch only affect later dispatches.
type Registry struct {
	mu      sync.RWMutex
	actions map[string][]entry
	filters map[string][]entry
	seq     uint64

	logger types.Logger
	clock  types.Clock
	hooks  types.Hooks
}

// New constructs a Registry from the supplied configuration. The zero Config
// is valid and yields a silent, unobserved registry.
func New(cfg Config) *Registry {
	norm := normalizeConfig(cfg)
	return &Registry{
		actions: make(map[string][]entry),
		filters: make(map[string][]entry),
		logger:  norm.Logger,
		clock:   norm.Clock,
		hooks:   norm.Hooks,
	}
}

// AddAction registers fn under tag. Priority defaults to DefaultPriority when
// omitted; lower priorities dispatch first and equal priorities dispatch in
// registration order. The same callback may be registered any number of
// times; every registration is retained.
func (r *Registry) AddAction(tag string, fn ActionFunc, priority ...int) error {
	if fn == nil {
		return errNilCallback("action")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.actions[tag] = append(r.actions[tag], entry{
		priority: pickPriority(priority),
		seq:      r.seq,
		ref:      callbackRef(fn),
		action:   fn,
	})
	r.logger.Debug("hook registered", "tag", tag, "kind", types.DispatchKindAction)
	return nil
}

// AddFilter registers fn under tag with the same priority and retention
// semantics as AddAction.
func (r *Registry) AddFilter(tag string, fn FilterFunc, priority ...int) error {
	if fn == nil {
		return errNilCallback("filter")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.filters[tag] = append(r.filters[tag], entry{
		priority: pickPriority(priority),
		seq:      r.seq,
		ref:      callbackRef(fn),
		filter:   fn,
	})
	r.logger.Debug("hook registered", "tag", tag, "kind", types.DispatchKindFilter)
	return nil
}

// RemoveAction removes every registration of fn under tag, regardless of the
// priorities they were registered with. Removing from an unknown tag, or a
// callback that was never registered, is a no-op.
//
// Identity is the callback's code pointer: closures created from the same
// function literal share identity, mirroring how duplicate registrations of
// one callback are all removed by a single call.
func (r *Registry) RemoveAction(tag string, fn ActionFunc) error {
	if fn == nil {
		return errNilCallback("action")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.actions[tag] = removeByRef(r.actions[tag], callbackRef(fn))
	if len(r.actions[tag]) == 0 {
		delete(r.actions, tag)
	}
	return nil
}

// RemoveFilter removes every registration of fn under tag with the same
// matching semantics as RemoveAction.
func (r *Registry) RemoveFilter(tag string, fn FilterFunc) error {
	if fn == nil {
		return errNilCallback("filter")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.filters[tag] = removeByRef(r.filters[tag], callbackRef(fn))
	if len(r.filters[tag]) == 0 {
		delete(r.filters, tag)
	}
	return nil
}

// RemoveAllActions drops every action registered under tag.
func (r *Registry) RemoveAllActions(tag string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.actions, tag)
}

// RemoveAllFilters drops every filter registered under tag.
func (r *Registry) RemoveAllFilters(tag string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.filters, tag)
}

// DoAction invokes every action registered under tag in priority order,
// passing options to each. Unknown tags are a silent no-op.
//
// Callback panics are not recovered: a panicking callback aborts the rest of
// the dispatch and surfaces to the DoAction caller. Hosts that want isolation
// must recover inside their own callbacks.
func (r *Registry) DoAction(tag string, options any) {
	snapshot := r.snapshot(r.actions, tag)
	if len(snapshot) == 0 {
		return
	}
	sortEntries(snapshot)

	started := r.clock.Now()
	for _, ent := range snapshot {
		ent.action(options)
	}
	r.afterDispatch(tag, types.DispatchKindAction, len(snapshot), started)
}

// ApplyFilters threads value through every filter registered under tag in
// priority order, passing options to each stage, and returns the final value.
// Unknown tags return value unchanged. Panic semantics match DoAction.
func (r *Registry) ApplyFilters(tag string, value any, options any) any {
	snapshot := r.snapshot(r.filters, tag)
	if len(snapshot) == 0 {
		return value
	}
	sortEntries(snapshot)

	started := r.clock.Now()
	for _, ent := range snapshot {
		value = ent.filter(value, options)
	}
	r.afterDispatch(tag, types.DispatchKindFilter, len(snapshot), started)
	return value
}

// HasAction reports whether tag has at least one registered action.
func (r *Registry) HasAction(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions[tag]) > 0
}

// HasFilter reports whether tag has at least one registered filter.
func (r *Registry) HasFilter(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.filters[tag]) > 0
}

// ActionCount returns the number of actions registered under tag.
func (r *Registry) ActionCount(tag string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions[tag])
}

// FilterCount returns the number of filters registered under tag.
func (r *Registry) FilterCount(tag string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.filters[tag])
}

// ActionTags returns every tag with at least one registered action.
func (r *Registry) ActionTags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return tagList(r.actions)
}

// FilterTags returns every tag with at least one registered filter.
func (r *Registry) FilterTags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return tagList(r.filters)
}

// Reset removes every registration from both stores. Intended for test
// teardown and plugin sandbox recycling.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = make(map[string][]entry)
	r.filters = make(map[string][]entry)
}

// snapshot copies the entries for tag so dispatch can run without the lock.
func (r *Registry) snapshot(store map[string][]entry, tag string) []entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := store[tag]
	if len(entries) == 0 {
		return nil
	}
	out := make([]entry, len(entries))
	copy(out, entries)
	return out
}

func (r *Registry) afterDispatch(tag string, kind types.DispatchKind, callbacks int, started time.Time) {
	finished := r.clock.Now()
	r.logger.Debug("hook dispatched", "tag", tag, "kind", kind, "callbacks", callbacks)
	if r.hooks.AfterDispatch == nil {
		return
	}
	r.hooks.AfterDispatch(context.Background(), types.DispatchRecord{
		Tag:        tag,
		Kind:       kind,
		Callbacks:  callbacks,
		Duration:   finished.Sub(started),
		OccurredAt: started,
	})
}

func pickPriority(priority []int) int {
	if len(priority) > 0 {
		return priority[0]
	}
	return DefaultPriority
}

// callbackRef returns the callback's code pointer, the identity used by the
// remove operations.
func callbackRef(fn any) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

func removeByRef(entries []entry, ref uintptr) []entry {
	if len(entries) == 0 {
		return entries
	}
	kept := make([]entry, 0, len(entries))
	for _, ent := range entries {
		if ent.ref != ref {
			kept = append(kept, ent)
		}
	}
	return kept
}

// sortEntries orders by ascending priority, breaking ties on registration
// order so equal-priority callbacks dispatch in the order they were added.
func sortEntries(entries []entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority < entries[j].priority
		}
		return entries[i].seq < entries[j].seq
	})
}

func tagList(store map[string][]entry) []string {
	if len(store) == 0 {
		return nil
	}
	tags := make([]string, 0, len(store))
	for tag := range store {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
