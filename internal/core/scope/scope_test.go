package scope

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
)

func TestUserScope_CanAccess(t *testing.T) {
	userID := id.New()
	storeA := id.New()
	storeB := id.New()

	global := Global(userID, "support")
	assert.True(t, global.IsGlobal())
	assert.True(t, global.CanAccess(storeA))
	assert.True(t, global.CanAccess(storeB))

	bound := ForStore(userID, "clerk", storeA)
	assert.False(t, bound.IsGlobal())
	assert.True(t, bound.CanAccess(storeA))
	assert.False(t, bound.CanAccess(storeB))

	sid, ok := bound.StoreID()
	require.True(t, ok)
	assert.Equal(t, storeA, sid)

	_, ok = global.StoreID()
	assert.False(t, ok)
}

func TestUserScope_ResolveStore(t *testing.T) {
	userID := id.New()
	storeA := id.New()
	storeB := id.New()

	bound := ForStore(userID, "clerk", storeA)

	// Bound user without explicit store targets their own.
	sid, err := bound.ResolveStore(id.Nil())
	require.NoError(t, err)
	assert.Equal(t, storeA, sid)

	// Bound user naming their own store is fine.
	sid, err = bound.ResolveStore(storeA)
	require.NoError(t, err)
	assert.Equal(t, storeA, sid)

	// Bound user naming another store is rejected.
	_, err = bound.ResolveStore(storeB)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeCrossStoreReference))

	// Global user must name a store.
	global := Global(userID, "support")
	_, err = global.ResolveStore(id.Nil())
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	sid, err = global.ResolveStore(storeB)
	require.NoError(t, err)
	assert.Equal(t, storeB, sid)
}

func TestScopeContextRoundTrip(t *testing.T) {
	ctx := context.Background()

	_, ok := FromContext(ctx)
	assert.False(t, ok)

	_, err := MustFromContext(ctx)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized))

	s := ForStore(id.New(), "clerk", id.New())
	ctx = WithScope(ctx, s)

	got, err := MustFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}
