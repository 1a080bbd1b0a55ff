package types

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestDispatchKind_Valid(t *testing.T) {
	require.True(t, DispatchKindAction.Valid())
	require.True(t, DispatchKindFilter.Valid())
	require.False(t, DispatchKind("webhook").Valid())
	require.False(t, DispatchKind("").Valid())
}

func TestSystemClock_ReturnsUTC(t *testing.T) {
	now := SystemClock{}.Now()
	require.Equal(t, time.UTC, now.Location())
}

func TestUUIDGenerator_ProducesUniqueIDs(t *testing.T) {
	gen := UUIDGenerator{}
	a := gen.UUID()
	b := gen.UUID()
	require.NotEqual(t, uuid.Nil, a)
	require.NotEqual(t, a, b)
}
