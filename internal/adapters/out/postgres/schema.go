package postgres

import (
	"parcelhub/internal/adapters/out/postgres/manifestrepo"
	"parcelhub/internal/adapters/out/postgres/notificationrepo"
	"parcelhub/internal/adapters/out/postgres/outboxrepo"
	"parcelhub/internal/adapters/out/postgres/pushsubrepo"
	"parcelhub/internal/adapters/out/postgres/shipmentrepo"
	"parcelhub/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormConfig is the configuration every connection is opened with.
// TranslateError turns unique violations into gorm.ErrDuplicatedKey, which
// repositories report as conflicts.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// Migrate creates or updates every parcelhub table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.StatusEntryDTO{},
		&manifestrepo.ManifestDTO{},
		&outboxrepo.OutboxEventDTO{},
		&notificationrepo.NotificationDTO{},
		&pushsubrepo.PushSubscriptionDTO{},
		&userrepo.UserDTO{},
	)
}
