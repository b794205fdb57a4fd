package notification

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/pkg/errs"
	"parcelhub/internal/pkg/guard"
)

var (
	ErrEndpointIsRequired = errs.NewValueIsRequiredError("endpoint")
	ErrKeysAreRequired    = errs.NewValueIsRequiredError("keys")

	ErrPushSubscriptionIsNotConstructed = errors.New("PushSubscription must be created via NewPushSubscription constructor")
)

// PushSubscription is one browser or device endpoint of a user.
type PushSubscription struct {
	id        kernel.UUID
	tenantID  kernel.UUID
	userID    kernel.UUID
	endpoint  string
	authKey   string
	p256dhKey string

	guard guard.ConstructorGuard
}

func NewPushSubscription(id, tenantID, userID kernel.UUID, endpoint, authKey, p256dhKey string) (*PushSubscription, error) {
	endpoint = strings.TrimSpace(endpoint)
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		userID.Validate(),
		validateEndpoint(endpoint),
		validateKeys(authKey, p256dhKey),
	); err != nil {
		return nil, err
	}

	return &PushSubscription{
		id:        id,
		tenantID:  tenantID,
		userID:    userID,
		endpoint:  endpoint,
		authKey:   authKey,
		p256dhKey: p256dhKey,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (p *PushSubscription) Validate() error {
	if p == nil {
		return ErrPushSubscriptionIsNotConstructed
	}
	return p.guard.Validate(ErrPushSubscriptionIsNotConstructed)
}

func (p *PushSubscription) ID() kernel.UUID       { return p.id }
func (p *PushSubscription) TenantID() kernel.UUID { return p.tenantID }
func (p *PushSubscription) UserID() kernel.UUID   { return p.userID }
func (p *PushSubscription) Endpoint() string      { return p.endpoint }
func (p *PushSubscription) AuthKey() string       { return p.authKey }
func (p *PushSubscription) P256dhKey() string     { return p.p256dhKey }

func validateEndpoint(endpoint string) error {
	if endpoint == "" {
		return ErrEndpointIsRequired
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("endpoint", err)
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return errs.NewValueIsInvalidErrorWithCause("endpoint", fmt.Errorf("%q is not an absolute http(s) URL", endpoint))
	}
	return nil
}

func validateKeys(authKey, p256dhKey string) error {
	if strings.TrimSpace(authKey) == "" || strings.TrimSpace(p256dhKey) == "" {
		return ErrKeysAreRequired
	}
	return nil
}
