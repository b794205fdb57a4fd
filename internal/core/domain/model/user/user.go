// Package user holds the read-only view of the user directory that the core
// needs: who belongs to which branch and in which role.
package user

import (
	"errors"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/guard"
)

var ErrUserIsNotConstructed = errors.New("User must be created via RestoreUser constructor")

type User struct {
	id       kernel.UUID
	tenantID kernel.UUID
	role     kernel.Role

	guard guard.ConstructorGuard
}

// RestoreUser builds a directory entry. Users are owned by the identity
// provider, so there is no NewUser.
func RestoreUser(id, tenantID kernel.UUID, role kernel.Role) (*User, error) {
	if err := errors.Join(id.Validate(), tenantID.Validate(), role.Validate()); err != nil {
		return nil, err
	}
	return &User{id: id, tenantID: tenantID, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID       { return u.id }
func (u *User) TenantID() kernel.UUID { return u.tenantID }
func (u *User) Role() kernel.Role     { return u.role }

// ManagesBranch reports whether u is an admin or dispatcher of tenantID.
func (u *User) ManagesBranch(tenantID kernel.UUID) bool {
	return u.role.ManagesBranch() && u.tenantID.IsEqual(tenantID)
}
