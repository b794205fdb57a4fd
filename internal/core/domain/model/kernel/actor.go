package kernel

import (
	"errors"
	"fmt"
	"strings"

	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

// Role is the organizational role of a user inside its branch.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDispatcher Role = "dispatcher"
	RoleStaff      Role = "staff"
)

// ErrActorIsNotConstructed is returned when an Actor was not built by NewActor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// RoleFromString parses a role name case-insensitively.
func RoleFromString(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleDispatcher, RoleStaff:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

// ManagesBranch reports whether the role administers branch operations.
// Admins and dispatchers are the branch audience for notifications and may
// dispatch, receive and assign.
func (r Role) ManagesBranch() bool {
	return r == RoleAdmin || r == RoleDispatcher
}

func (r Role) String() string {
	return string(r)
}

// Actor is the already-authenticated identity issuing a command.
type Actor struct {
	userID   UUID
	role     Role
	tenantID UUID

	guard guard.ConstructorGuard
}

func NewActor(userID UUID, role Role, tenantID UUID) (Actor, error) {
	if err := errors.Join(
		userID.Validate(),
		role.Validate(),
		tenantID.Validate(),
	); err != nil {
		return Actor{}, err
	}

	return Actor{
		userID:   userID,
		role:     role,
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) UserID() UUID   { return a.userID }
func (a Actor) Role() Role     { return a.role }
func (a Actor) TenantID() UUID { return a.tenantID }
