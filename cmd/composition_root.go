package cmd

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	httpin "parcelhub/internal/adapters/in/http"
	"parcelhub/internal/adapters/out/postgres"
	"parcelhub/internal/adapters/out/postgres/notificationrepo"
	"parcelhub/internal/adapters/out/postgres/outboxrepo"
	"parcelhub/internal/adapters/out/postgres/pushsubrepo"
	"parcelhub/internal/adapters/out/postgres/userrepo"
	redisadapter "parcelhub/internal/adapters/out/redis"
	"parcelhub/internal/adapters/out/redis/ratelimit"
	"parcelhub/internal/adapters/out/webpush"
	"parcelhub/internal/core/application/notify"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/jobs"
)

type CompositionRoot struct {
	cfg    Config
	gormDB *gorm.DB
	redis  *redis.Client
	logger *slog.Logger

	uowFactory    *postgres.GormUnitOfWorkFactory
	directory     ports.UserDirectory
	notifications ports.NotificationRepository
	subscriptions ports.PushSubscriptionRepository
	locker        ports.Locker

	writer    *notify.Writer
	publisher *notify.Publisher
	relay     *notify.Relay
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, redisClient *redis.Client, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:           cfg,
		gormDB:        gormDB,
		redis:         redisClient,
		logger:        logger,
		uowFactory:    postgres.NewGormUnitOfWorkFactory(gormDB),
		directory:     userrepo.NewGormUserDirectory(gormDB),
		notifications: notificationrepo.NewGormNotificationRepository(gormDB),
		subscriptions: pushsubrepo.NewGormPushSubscriptionRepository(gormDB),
		locker:        redisadapter.NewLocker(redisClient, redisadapter.DefaultLockOptions(), logger),
	}

	sender, err := c.pushSender()
	if err != nil {
		return nil, err
	}

	c.writer = notify.NewWriter(c.notifications)
	push := notify.NewPushService(c.subscriptions, sender, cfg.PushConcurrency, logger)

	registry := notify.NewRegistry()
	handler := notify.NewNotifyHandler(c.directory, services.NewAudienceResolver(), c.writer, push, logger)
	if err := notify.RegisterNotifyHandler(registry, handler); err != nil {
		return nil, fmt.Errorf("register notify handler: %w", err)
	}
	dispatcher := notify.NewDispatcher(registry, logger)

	outbox := outboxrepo.NewGormOutboxRepository(gormDB)
	c.publisher = notify.NewPublisher(outbox, dispatcher, cfg.OutboxMaxAttempts, 0, logger)
	c.relay = notify.NewRelay(outbox, dispatcher, notify.RelayConfig{
		StaleAfter:  cfg.OutboxStaleAfter,
		MaxAttempts: cfg.OutboxMaxAttempts,
	}, logger)

	return c, nil
}

// pushSender returns nil, and push stays off, unless every VAPID setting is present.
func (c *CompositionRoot) pushSender() (ports.PushSender, error) {
	cfg := webpush.Config{
		PublicKey:  c.cfg.VAPIDPublicKey,
		PrivateKey: c.cfg.VAPIDPrivateKey,
		Subject:    c.cfg.VAPIDSubject,
		Timeout:    c.cfg.PushTimeout,
	}
	if !cfg.Complete() {
		c.logger.Info("web push disabled, VAPID settings are incomplete")
		return nil, nil
	}

	sender, err := webpush.NewSender(cfg, nil, c.logger)
	if err != nil {
		return nil, fmt.Errorf("create web push sender: %w", err)
	}
	return sender, nil
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.shipmentUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateTransitionShipmentCommandHandler() commands.TransitionShipmentCommandHandler {
	var opts []services.ValidatorOption
	if c.cfg.TransitionCreatorOnly {
		opts = append(opts, services.WithCreatorOnlyAuthority())
	}
	return commands.NewTransitionShipmentCommandHandler(c.shipmentUoWFactory(), c.locker, c.directory, c.publisher, opts...)
}

func (c *CompositionRoot) CreateCreateManifestCommandHandler() commands.CreateManifestCommandHandler {
	return commands.NewCreateManifestCommandHandler(c.uowFactoryFunc(), c.publisher)
}

func (c *CompositionRoot) CreateReceiveManifestCommandHandler() commands.ReceiveManifestCommandHandler {
	return commands.NewReceiveManifestCommandHandler(c.uowFactoryFunc(), c.publisher)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListBranchShipmentsQueryHandler() queries.ListBranchShipmentsQueryHandler {
	return queries.NewListBranchShipmentsQueryHandler(c.gormDB)
}

// Router builds the echo instance serving the API.
func (c *CompositionRoot) Router() *echo.Echo {
	server := httpin.NewServer(httpin.Handlers{
		CreateShipment:      c.CreateCreateShipmentCommandHandler(),
		TransitionShipment:  c.CreateTransitionShipmentCommandHandler(),
		CreateManifest:      c.CreateCreateManifestCommandHandler(),
		ReceiveManifest:     c.CreateReceiveManifestCommandHandler(),
		MarkRead:            commands.NewMarkNotificationsReadCommandHandler(c.notifications),
		SubscribePush:       commands.NewSubscribePushCommandHandler(c.subscriptions),
		UnsubscribePush:     commands.NewUnsubscribePushCommandHandler(c.subscriptions),
		GetShipment:         c.CreateGetShipmentQueryHandler(),
		ListBranchShipments: c.CreateListBranchShipmentsQueryHandler(),
		NotificationFeed:    c.writer,
	}, c.logger)

	return httpin.NewRouter(server, c.directory, ratelimit.NewRedisStore(c.redis), httpin.RouterConfig{
		RateLimitRequests: c.cfg.RateLimitRequests,
		RateLimitWindow:   c.cfg.RateLimitWindow,
	}, c.logger)
}

func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.relay, c.locker, c.cfg.OutboxRelaySchedule, c.logger)
}

// Publisher is exposed so shutdown can wait for in-flight dispatches.
func (c *CompositionRoot) Publisher() *notify.Publisher {
	return c.publisher
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uowFactoryFunc() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
