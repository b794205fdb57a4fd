package kernel_test

import (
	"testing"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleFromString(t *testing.T) {
	r, err := kernel.RoleFromString(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, kernel.RoleAdmin, r)

	_, err = kernel.RoleFromString("courier")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRole_ManagesBranch(t *testing.T) {
	assert.True(t, kernel.RoleAdmin.ManagesBranch())
	assert.True(t, kernel.RoleDispatcher.ManagesBranch())
	assert.False(t, kernel.RoleStaff.ManagesBranch())
}

func TestNewActor(t *testing.T) {
	userID, tenantID := kernel.NewUUID(), kernel.NewUUID()

	t.Run("valid actor", func(t *testing.T) {
		a, err := kernel.NewActor(userID, kernel.RoleStaff, tenantID)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, userID, a.UserID())
		assert.Equal(t, kernel.RoleStaff, a.Role())
		assert.Equal(t, tenantID, a.TenantID())
	})

	t.Run("joins every validation error", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.UUID{}, kernel.Role("ghost"), kernel.UUID{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "not a known role")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var a kernel.Actor
		assert.Equal(t, kernel.ErrActorIsNotConstructed, a.Validate())
	})
}
