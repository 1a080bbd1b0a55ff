package hooks

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-hooks/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestRegistry_DoAction_PriorityOrder(t *testing.T) {
	reg := New(Config{})

	var got []string
	slow := func(any) { got = append(got, "slow") }
	fast := func(any) { got = append(got, "fast") }

	require.NoError(t, reg.AddAction("boot", slow, 20))
	require.NoError(t, reg.AddAction("boot", fast, 5))

	reg.DoAction("boot", nil)
	require.Equal(t, []string{"fast", "slow"}, got)
}

func TestRegistry_DoAction_EqualPriorityKeepsRegistrationOrder(t *testing.T) {
	reg := New(Config{})

	var got []int
	for i := 0; i < 8; i++ {
		i := i
		require.NoError(t, reg.AddAction("tick", func(any) { got = append(got, i) }))
	}

	reg.DoAction("tick", nil)
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, got)
}

func TestRegistry_DoAction_DefaultPriority(t *testing.T) {
	reg := New(Config{})

	var got []string
	require.NoError(t, reg.AddAction("save", func(any) { got = append(got, "default") }))
	require.NoError(t, reg.AddAction("save", func(any) { got = append(got, "early") }, 5))
	require.NoError(t, reg.AddAction("save", func(any) { got = append(got, "late") }, 15))

	reg.DoAction("save", nil)
	require.Equal(t, []string{"early", "default", "late"}, got)
}

func TestRegistry_DoAction_UnknownTagIsNoop(t *testing.T) {
	reg := New(Config{})
	require.NotPanics(t, func() {
		reg.DoAction("never_registered", nil)
	})
}

func TestRegistry_DoAction_PassesOptions(t *testing.T) {
	reg := New(Config{})

	var seen any
	require.NoError(t, reg.AddAction("notify", func(options any) { seen = options }))

	payload := map[string]any{"user": "sample"}
	reg.DoAction("notify", payload)
	require.Equal(t, payload, seen)
}

func TestRegistry_RemoveAction_RemovesAllRegistrations(t *testing.T) {
	reg := New(Config{})

	calls := 0
	cb := func(any) { calls++ }

	require.NoError(t, reg.AddAction("save", cb, 5))
	require.NoError(t, reg.AddAction("save", cb, 20))
	require.Equal(t, 2, reg.ActionCount("save"))

	require.NoError(t, reg.RemoveAction("save", cb))
	require.False(t, reg.HasAction("save"))

	reg.DoAction("save", nil)
	require.Zero(t, calls)
}

func TestRegistry_RemoveAction_KeepsOtherCallbacks(t *testing.T) {
	reg := New(Config{})

	var got []string
	keep := func(any) { got = append(got, "keep") }
	drop := func(any) { got = append(got, "drop") }

	require.NoError(t, reg.AddAction("save", keep))
	require.NoError(t, reg.AddAction("save", drop))
	require.NoError(t, reg.RemoveAction("save", drop))

	reg.DoAction("save", nil)
	require.Equal(t, []string{"keep"}, got)
	require.True(t, reg.HasAction("save"))
}

func TestRegistry_RemoveAction_UnknownTagIsNoop(t *testing.T) {
	reg := New(Config{})
	require.NoError(t, reg.RemoveAction("missing", func(any) {}))
}

func TestRegistry_ApplyFilters_IdentityOnUnknownTag(t *testing.T) {
	reg := New(Config{})

	value := map[string]any{"untouched": true}
	got := reg.ApplyFilters("missing", value, nil)
	require.Equal(t, value, got)
}

func TestRegistry_ApplyFilters_ChainsInPriorityOrder(t *testing.T) {
	reg := New(Config{})

	require.NoError(t, reg.AddFilter("content", func(value, _ any) any {
		return value.(string) + "-first"
	}, 5))
	require.NoError(t, reg.AddFilter("content", func(value, _ any) any {
		return value.(string) + "-second"
	}, 10))

	got := reg.ApplyFilters("content", "base", nil)
	require.Equal(t, "base-first-second", got)
}

func TestRegistry_ApplyFilters_Uppercase(t *testing.T) {
	reg := New(Config{})

	require.NoError(t, reg.AddFilter("content", func(value, _ any) any {
		return strings.ToUpper(value.(string))
	}))

	require.Equal(t, "HI", reg.ApplyFilters("content", "hi", nil))
}

func TestRegistry_ApplyFilters_TypeMayChangeBetweenStages(t *testing.T) {
	reg := New(Config{})

	require.NoError(t, reg.AddFilter("measure", func(value, _ any) any {
		return len(value.(string))
	}, 5))
	require.NoError(t, reg.AddFilter("measure", func(value, _ any) any {
		return value.(int) * 2
	}, 10))

	require.Equal(t, 10, reg.ApplyFilters("measure", "hello", nil))
}

func TestRegistry_ApplyFilters_OptionsReachEveryStage(t *testing.T) {
	reg := New(Config{})

	var seen []any
	for i := 0; i < 3; i++ {
		require.NoError(t, reg.AddFilter("content", func(value, options any) any {
			seen = append(seen, options)
			return value
		}))
	}

	reg.ApplyFilters("content", "v", "opts")
	require.Equal(t, []any{"opts", "opts", "opts"}, seen)
}

func TestRegistry_DoAction_PanicPropagatesAndAbortsDispatch(t *testing.T) {
	reg := New(Config{})

	var got []string
	require.NoError(t, reg.AddAction("boot", func(any) { got = append(got, "first") }, 1))
	require.NoError(t, reg.AddAction("boot", func(any) { panic("second exploded") }, 2))
	require.NoError(t, reg.AddAction("boot", func(any) { got = append(got, "third") }, 3))

	require.PanicsWithValue(t, "second exploded", func() {
		reg.DoAction("boot", nil)
	})
	require.Equal(t, []string{"first"}, got)
}

func TestRegistry_ApplyFilters_PanicPropagates(t *testing.T) {
	reg := New(Config{})

	require.NoError(t, reg.AddFilter("content", func(value, _ any) any {
		panic("filter exploded")
	}))

	require.PanicsWithValue(t, "filter exploded", func() {
		reg.ApplyFilters("content", "v", nil)
	})
}

func TestRegistry_ReentrantAddIsInvisibleToInflightDispatch(t *testing.T) {
	reg := New(Config{})

	var got []string
	late := func(any) { got = append(got, "late") }

	require.NoError(t, reg.AddAction("boot", func(any) {
		got = append(got, "first")
		require.NoError(t, reg.AddAction("boot", late))
	}, 1))

	reg.DoAction("boot", nil)
	require.Equal(t, []string{"first"}, got)

	reg.DoAction("boot", nil)
	require.Equal(t, []string{"first", "first", "late"}, got)
}

func TestRegistry_ReentrantRemoveDoesNotAffectInflightDispatch(t *testing.T) {
	reg := New(Config{})

	var got []string
	second := func(any) { got = append(got, "second") }

	require.NoError(t, reg.AddAction("boot", func(any) {
		got = append(got, "first")
		require.NoError(t, reg.RemoveAction("boot", second))
	}, 1))
	require.NoError(t, reg.AddAction("boot", second, 2))

	reg.DoAction("boot", nil)
	require.Equal(t, []string{"first", "second"}, got)

	reg.DoAction("boot", nil)
	require.Equal(t, []string{"first", "second", "first"}, got)
}

func TestRegistry_ReentrantDispatchOfAnotherTag(t *testing.T) {
	reg := New(Config{})

	var got []string
	require.NoError(t, reg.AddAction("outer", func(any) {
		got = append(got, "outer")
		reg.DoAction("inner", nil)
	}))
	require.NoError(t, reg.AddAction("inner", func(any) {
		got = append(got, "inner")
	}))

	reg.DoAction("outer", nil)
	require.Equal(t, []string{"outer", "inner"}, got)
}

func TestRegistry_HasAction(t *testing.T) {
	reg := New(Config{})

	require.False(t, reg.HasAction("unregistered_tag"))
	require.NoError(t, reg.AddAction("boot", func(any) {}))
	require.True(t, reg.HasAction("boot"))
	require.False(t, reg.HasFilter("boot"))
}

func TestRegistry_EmptyTagIsLegal(t *testing.T) {
	reg := New(Config{})

	calls := 0
	require.NoError(t, reg.AddAction("", func(any) { calls++ }))
	require.True(t, reg.HasAction(""))

	reg.DoAction("", nil)
	require.Equal(t, 1, calls)
}

func TestRegistry_NilCallbackFailsFast(t *testing.T) {
	reg := New(Config{})

	require.True(t, IsValidation(reg.AddAction("boot", nil)))
	require.True(t, IsValidation(reg.AddFilter("content", nil)))
	require.True(t, IsValidation(reg.RemoveAction("boot", nil)))
	require.True(t, IsValidation(reg.RemoveFilter("content", nil)))
}

func TestRegistry_RemoveAllAndReset(t *testing.T) {
	reg := New(Config{})

	require.NoError(t, reg.AddAction("boot", func(any) {}))
	require.NoError(t, reg.AddAction("save", func(any) {}))
	require.NoError(t, reg.AddFilter("content", func(v, _ any) any { return v }))

	reg.RemoveAllActions("boot")
	require.False(t, reg.HasAction("boot"))
	require.True(t, reg.HasAction("save"))

	reg.Reset()
	require.False(t, reg.HasAction("save"))
	require.False(t, reg.HasFilter("content"))
	require.Empty(t, reg.ActionTags())
	require.Empty(t, reg.FilterTags())
}

func TestRegistry_Tags(t *testing.T) {
	reg := New(Config{})

	require.NoError(t, reg.AddAction("boot", func(any) {}))
	require.NoError(t, reg.AddAction("save", func(any) {}))
	require.NoError(t, reg.AddFilter("content", func(v, _ any) any { return v }))

	require.Equal(t, []string{"boot", "save"}, reg.ActionTags())
	require.Equal(t, []string{"content"}, reg.FilterTags())
}

func TestRegistry_AfterDispatchObserver(t *testing.T) {
	var records []types.DispatchRecord
	reg := New(Config{
		Clock: fixedClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		Hooks: types.Hooks{
			AfterDispatch: func(_ context.Context, rec types.DispatchRecord) {
				records = append(records, rec)
			},
		},
	})

	require.NoError(t, reg.AddAction("boot", func(any) {}))
	require.NoError(t, reg.AddAction("boot", func(any) {}))
	require.NoError(t, reg.AddFilter("content", func(v, _ any) any { return v }))

	reg.DoAction("boot", nil)
	reg.ApplyFilters("content", "v", nil)
	reg.DoAction("missing", nil)

	require.Len(t, records, 2)
	require.Equal(t, "boot", records[0].Tag)
	require.Equal(t, types.DispatchKindAction, records[0].Kind)
	require.Equal(t, 2, records[0].Callbacks)
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), records[0].OccurredAt)
	require.Equal(t, "content", records[1].Tag)
	require.Equal(t, types.DispatchKindFilter, records[1].Kind)
	require.Equal(t, 1, records[1].Callbacks)
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }
