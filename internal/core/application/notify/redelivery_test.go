package notify_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"parcelhub/internal/core/application/notify"
	"parcelhub/internal/core/domain/model/event"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/notification"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// memoryOutbox keeps outbox rows in memory and, like a database call,
// refuses to work on an expired context.
type memoryOutbox struct {
	mu   sync.Mutex
	rows map[kernel.UUID]*outboxRow

	// failPublishOnce makes the next MarkPublished fail, as if the process
	// died between dispatching and recording it.
	failPublishOnce bool
}

type outboxRow struct {
	event     event.Event
	status    ports.OutboxStatus
	attempts  int
	updatedAt time.Time
}

func newMemoryOutbox() *memoryOutbox {
	return &memoryOutbox{rows: make(map[kernel.UUID]*outboxRow)}
}

func (o *memoryOutbox) Add(ctx context.Context, events ...event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, e := range events {
		o.rows[e.ID] = &outboxRow{event: e, status: ports.OutboxPending, updatedAt: time.Now()}
	}
	return nil
}

func (o *memoryOutbox) Claim(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	row, ok := o.rows[id]
	if !ok || row.status != ports.OutboxPending {
		return false, nil
	}
	row.status = ports.OutboxProcessing
	row.updatedAt = time.Now()
	return true, nil
}

func (o *memoryOutbox) ClaimStale(ctx context.Context, pendingBefore, processingBefore time.Time, limit int) ([]ports.OutboxMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	var out []ports.OutboxMessage
	for id, row := range o.rows {
		if len(out) == limit {
			break
		}
		stale := (row.status == ports.OutboxPending && row.updatedAt.Before(pendingBefore)) ||
			(row.status == ports.OutboxProcessing && row.updatedAt.Before(processingBefore))
		if !stale {
			continue
		}
		payload, err := event.Encode(row.event)
		if err != nil {
			return nil, err
		}
		row.status = ports.OutboxProcessing
		row.updatedAt = time.Now()
		out = append(out, ports.OutboxMessage{ID: id, EventType: row.event.Kind.String(), Payload: payload, Attempts: row.attempts})
	}
	return out, nil
}

func (o *memoryOutbox) MarkPublished(ctx context.Context, id kernel.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.failPublishOnce {
		o.failPublishOnce = false
		return errors.New("connection lost")
	}
	o.rows[id].status = ports.OutboxPublished
	return nil
}

func (o *memoryOutbox) MarkFailed(ctx context.Context, id kernel.UUID, _ error, maxAttempts int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	row := o.rows[id]
	row.attempts++
	row.status = ports.OutboxPending
	if row.attempts >= maxAttempts {
		row.status = ports.OutboxFailed
	}
	return nil
}

// age pushes every row back in time so the relay treats it as stale.
func (o *memoryOutbox) age(d time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, row := range o.rows {
		row.updatedAt = row.updatedAt.Add(-d)
	}
}

func (o *memoryOutbox) status(id kernel.UUID) ports.OutboxStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rows[id].status
}

// memoryFeed stores notifications with the same (event, recipient)
// uniqueness the database enforces.
type memoryFeed struct {
	mu   sync.Mutex
	rows map[[2]kernel.UUID]*notification.Notification
}

func newMemoryFeed() *memoryFeed {
	return &memoryFeed{rows: make(map[[2]kernel.UUID]*notification.Notification)}
}

func (f *memoryFeed) AddBatch(ctx context.Context, ns []*notification.Notification) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var written int64
	for _, n := range ns {
		key := [2]kernel.UUID{n.EventID(), n.RecipientID()}
		if _, ok := f.rows[key]; ok {
			continue
		}
		f.rows[key] = n
		written++
	}
	return written, nil
}

func (f *memoryFeed) List(context.Context, kernel.UUID, kernel.UUID, ports.NotificationFilter) ([]*notification.Notification, error) {
	return nil, nil
}

func (f *memoryFeed) CountUnread(context.Context, kernel.UUID, kernel.UUID) (int64, error) {
	return 0, nil
}

func (f *memoryFeed) MarkRead(context.Context, kernel.UUID, kernel.UUID, []kernel.UUID) (int64, error) {
	return 0, nil
}

// rowsPerRecipient counts the stored rows of one event by recipient.
func (f *memoryFeed) rowsPerRecipient(eventID kernel.UUID) map[kernel.UUID]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[kernel.UUID]int)
	for _, n := range f.rows {
		if n.EventID().IsEqual(eventID) {
			out[n.RecipientID()]++
		}
	}
	return out
}

// countingSender records every send. With block set it hangs until the
// context gives up, like an unresponsive push service.
type countingSender struct {
	block bool
	sent  atomic.Int32
}

func (s *countingSender) Send(ctx context.Context, sub *notification.PushSubscription, _ []byte) error {
	s.sent.Add(1)
	if !s.block {
		return nil
	}
	<-ctx.Done()
	return errs.NewTransientDeliveryError(sub.Endpoint(), 0, ctx.Err())
}

type RedeliveryTestSuite struct {
	suite.Suite

	origin, destination kernel.UUID
	admin, staff        *user.User

	outbox *memoryOutbox
	feed   *memoryFeed
	sender *countingSender
}

func TestRedeliveryTestSuite(t *testing.T) {
	suite.Run(t, new(RedeliveryTestSuite))
}

func (s *RedeliveryTestSuite) SetupTest() {
	s.origin, s.destination = kernel.NewUUID(), kernel.NewUUID()
	s.admin = newUser(s.T(), s.destination, kernel.RoleAdmin)
	s.staff = newUser(s.T(), s.destination, kernel.RoleStaff)
	s.outbox = newMemoryOutbox()
	s.feed = newMemoryFeed()
	s.sender = &countingSender{}
}

// dispatcher wires the real notify handler over the in-memory stores.
func (s *RedeliveryTestSuite) dispatcher() *notify.Dispatcher {
	directory := new(MockUserDirectory)
	directory.On("ListManagers", mock.Anything, []kernel.UUID{s.destination}).
		Return([]*user.User{s.admin}, nil).Maybe()

	subs := new(MockPushSubscriptionRepository)
	for _, u := range []*user.User{s.admin, s.staff} {
		subs.On("ListByUser", mock.Anything, s.destination, u.ID()).
			Return([]*notification.PushSubscription{newSubscription(s.T(), u, "https://push.example/"+u.ID().String())}, nil).Maybe()
	}

	registry := notify.NewRegistry()
	handler := notify.NewNotifyHandler(
		directory,
		services.NewAudienceResolver(),
		notify.NewWriter(s.feed),
		notify.NewPushService(subs, s.sender, 4, discardLogger()),
		discardLogger(),
	)
	s.Require().NoError(notify.RegisterNotifyHandler(registry, handler))
	return notify.NewDispatcher(registry, discardLogger())
}

func (s *RedeliveryTestSuite) delivered() event.Event {
	staffID := s.staff.ID()
	e := deliveryEvent(event.Delivered, s.origin, s.destination, &staffID)
	s.Require().NoError(s.outbox.Add(s.T().Context(), e))
	return e
}

func (s *RedeliveryTestSuite) assertOneRowPerRecipient(e event.Event) {
	rows := s.feed.rowsPerRecipient(e.ID)
	s.Equal(map[kernel.UUID]int{s.admin.ID(): 1, s.staff.ID(): 1}, rows)
}

func (s *RedeliveryTestSuite) TestSlowPushStillMarksEventPublished() {
	s.sender.block = true
	dispatcher := s.dispatcher()
	e := s.delivered()

	p := notify.NewPublisher(s.outbox, dispatcher, 3, 50*time.Millisecond, discardLogger())
	p.Publish(s.T().Context(), e)
	p.Wait()

	s.Equal(ports.OutboxPublished, s.outbox.status(e.ID), "an exhausted dispatch deadline does not block settling")

	s.outbox.age(time.Hour)
	relay := notify.NewRelay(s.outbox, dispatcher, notify.RelayConfig{StaleAfter: time.Minute}, discardLogger())
	claimed, err := relay.RelayOnce(s.T().Context())
	s.Require().NoError(err)

	s.Zero(claimed)
	s.assertOneRowPerRecipient(e)
}

func (s *RedeliveryTestSuite) TestRelayRedeliveryWritesNoDuplicates() {
	dispatcher := s.dispatcher()
	e := s.delivered()
	relay := notify.NewRelay(s.outbox, dispatcher, notify.RelayConfig{StaleAfter: time.Minute}, discardLogger())

	s.outbox.failPublishOnce = true
	s.outbox.age(time.Hour)
	claimed, err := relay.RelayOnce(s.T().Context())
	s.Require().NoError(err)
	s.Equal(1, claimed)
	s.Equal(ports.OutboxProcessing, s.outbox.status(e.ID), "the outcome was lost")

	s.outbox.age(time.Hour)
	claimed, err = relay.RelayOnce(s.T().Context())
	s.Require().NoError(err)
	s.Equal(1, claimed)

	s.Equal(ports.OutboxPublished, s.outbox.status(e.ID))
	s.assertOneRowPerRecipient(e)
	s.Equal(int32(2), s.sender.sent.Load(), "recipients are pushed once")
}

func (s *RedeliveryTestSuite) TestPublisherThenRelayWritesNoDuplicates() {
	dispatcher := s.dispatcher()
	e := s.delivered()

	s.outbox.failPublishOnce = true
	p := notify.NewPublisher(s.outbox, dispatcher, 3, time.Second, discardLogger())
	p.Publish(s.T().Context(), e)
	p.Wait()

	s.outbox.age(time.Hour)
	relay := notify.NewRelay(s.outbox, dispatcher, notify.RelayConfig{StaleAfter: time.Minute}, discardLogger())
	claimed, err := relay.RelayOnce(s.T().Context())
	s.Require().NoError(err)

	s.Equal(1, claimed)
	s.assertOneRowPerRecipient(e)
}

func TestSettleSurvivesExpiredDispatchContext(t *testing.T) {
	outbox := new(MockOutboxRepository)
	registry := notify.NewRegistry()
	require.NoError(t, notify.RegisterNotifyHandler(registry, func(ctx context.Context, _ event.Event) error {
		<-ctx.Done()
		return nil
	}))
	e := deliveryEvent(event.Delivered, kernel.NewUUID(), kernel.NewUUID(), nil)

	outbox.On("Claim", mock.Anything, e.ID).Return(true, nil).Once()
	outbox.On("MarkPublished", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), e.ID).Return(nil).Once()

	p := notify.NewPublisher(outbox, notify.NewDispatcher(registry, discardLogger()), 3, 20*time.Millisecond, discardLogger())
	p.Publish(t.Context(), e)
	p.Wait()

	outbox.AssertExpectations(t)
}
