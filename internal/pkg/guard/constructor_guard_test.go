package guard_test

import (
	"errors"
	"testing"

	"parcelhub/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	notConstructed := errors.New("entity not constructed")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(notConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_caller_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(notConstructed)

		require.Error(t, err)
		assert.Equal(t, notConstructed, err)
	})

	t.Run("zero_value_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInDomainType(t *testing.T) {
	errParcelNotConstructed := errors.New("parcel must be created via newParcel")

	type parcel struct {
		weight int
		guard  guard.ConstructorGuard
	}

	newParcel := func(weight int) (parcel, error) {
		if weight <= 0 {
			return parcel{}, errors.New("weight must be positive")
		}
		return parcel{weight: weight, guard: guard.NewConstructorGuard()}, nil
	}

	p, err := newParcel(3)
	require.NoError(t, err)
	require.NoError(t, p.guard.Validate(errParcelNotConstructed))

	var zero parcel
	assert.Equal(t, errParcelNotConstructed, zero.guard.Validate(errParcelNotConstructed))

	copied := p
	require.NoError(t, copied.guard.Validate(errParcelNotConstructed))
}
