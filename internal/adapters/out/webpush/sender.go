// Package webpush delivers notifications over the Web Push protocol with
// VAPID authentication. Every push service host gets its own circuit
// breaker, so one failing provider does not slow down the others.
package webpush

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	webpushgo "github.com/SherClockHolmes/webpush-go"
	"github.com/sony/gobreaker"

	"parcelhub/internal/core/domain/model/notification"
	"parcelhub/internal/pkg/errs"
)

const (
	defaultTimeout = 3 * time.Second
	defaultTTL     = 24 * 60 * 60

	breakerFailures = 5
	breakerCooldown = 30 * time.Second
)

var ErrVAPIDNotConfigured = errors.New("VAPID public key, private key and subject are all required")

type Config struct {
	PublicKey  string
	PrivateKey string
	Subject    string
	Timeout    time.Duration
	TTL        int
}

// Complete reports whether every VAPID setting is present.
func (c Config) Complete() bool {
	return strings.TrimSpace(c.PublicKey) != "" &&
		strings.TrimSpace(c.PrivateKey) != "" &&
		strings.TrimSpace(c.Subject) != ""
}

type Sender struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewSender fails with ErrVAPIDNotConfigured on an incomplete config. A nil
// client means http.DefaultClient.
func NewSender(cfg Config, client *http.Client, log *slog.Logger) (*Sender, error) {
	if !cfg.Complete() {
		return nil, ErrVAPIDNotConfigured
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Sender{
		cfg:      cfg,
		client:   client,
		logger:   log.With("component", "webpush"),
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}, nil
}

// Send pushes payload to one subscription. 404 and 410 answers are
// permanent failures; everything else that is not 2xx is transient.
func (s *Sender) Send(ctx context.Context, sub *notification.PushSubscription, payload []byte) error {
	endpoint := sub.Endpoint()
	breaker, err := s.breaker(endpoint)
	if err != nil {
		return errs.NewTransientDeliveryError(endpoint, 0, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	_, err = breaker.Execute(func() (any, error) {
		return nil, s.send(ctx, sub, payload)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return errs.NewTransientDeliveryError(endpoint, 0, err)
	}
	return err
}

func (s *Sender) send(ctx context.Context, sub *notification.PushSubscription, payload []byte) error {
	endpoint := sub.Endpoint()

	resp, err := webpushgo.SendNotificationWithContext(ctx, payload, &webpushgo.Subscription{
		Endpoint: endpoint,
		Keys: webpushgo.Keys{
			Auth:   sub.AuthKey(),
			P256dh: sub.P256dhKey(),
		},
	}, &webpushgo.Options{
		HTTPClient:      s.client,
		Subscriber:      s.cfg.Subject,
		TTL:             s.cfg.TTL,
		Urgency:         webpushgo.UrgencyNormal,
		VAPIDPublicKey:  s.cfg.PublicKey,
		VAPIDPrivateKey: s.cfg.PrivateKey,
	})
	if err != nil {
		return errs.NewTransientDeliveryError(endpoint, 0, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return errs.NewPermanentDeliveryError(endpoint, resp.StatusCode)
	default:
		return errs.NewTransientDeliveryError(endpoint, resp.StatusCode, nil)
	}
}

func (s *Sender) breaker(endpoint string) (*gobreaker.CircuitBreaker, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse push endpoint: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("push endpoint %q has no host", endpoint)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cb, ok := s.breakers[u.Host]; ok {
		return cb, nil
	}

	host := u.Host
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "push:" + host,
		Timeout: breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		// A gone subscription says nothing about the health of its host.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errs.ErrPermanentDelivery)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.logger.Warn("push circuit breaker state changed",
				slog.String("host", host), slog.String("from", from.String()), slog.String("to", to.String()))
		},
	})
	s.breakers[host] = cb
	return cb, nil
}
