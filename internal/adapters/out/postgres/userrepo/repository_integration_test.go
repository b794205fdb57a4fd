package userrepo_test

import (
	"context"
	"testing"

	"parcelhub/internal/adapters/out/postgres/pgtest"
	"parcelhub/internal/adapters/out/postgres/userrepo"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/user"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type UserDirectoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	directory *userrepo.GormUserDirectory
}

func (suite *UserDirectoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
	suite.directory = userrepo.NewGormUserDirectory(db)
}

func (suite *UserDirectoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
}

func (suite *UserDirectoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UserDirectoryIntegrationTestSuite) sync(id, tenant kernel.UUID, role kernel.Role) *user.User {
	u, err := user.RestoreUser(id, tenant, role)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.directory.Sync(context.Background(), u))
	return u
}

func (suite *UserDirectoryIntegrationTestSuite) TestSyncUpsertsRoleAndBranch() {
	ctx := context.Background()
	id, b1, b2 := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	suite.sync(id, b1, kernel.RoleStaff)
	suite.sync(id, b2, kernel.RoleAdmin)

	got, err := suite.directory.Get(ctx, id)
	suite.Require().NoError(err)
	suite.Equal(b2, got.TenantID())
	suite.Equal(kernel.RoleAdmin, got.Role())
}

func (suite *UserDirectoryIntegrationTestSuite) TestListManagersOfBranches() {
	ctx := context.Background()
	b1, b2, b3 := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	admin := suite.sync(kernel.NewUUID(), b1, kernel.RoleAdmin)
	dispatcher := suite.sync(kernel.NewUUID(), b2, kernel.RoleDispatcher)
	suite.sync(kernel.NewUUID(), b1, kernel.RoleStaff)
	suite.sync(kernel.NewUUID(), b3, kernel.RoleAdmin)

	managers, err := suite.directory.ListManagers(ctx, []kernel.UUID{b1, b2})
	suite.Require().NoError(err)

	ids := make([]kernel.UUID, 0, len(managers))
	for _, m := range managers {
		ids = append(ids, m.ID())
	}
	suite.ElementsMatch([]kernel.UUID{admin.ID(), dispatcher.ID()}, ids)
}

func (suite *UserDirectoryIntegrationTestSuite) TestGetUnknownUser() {
	_, err := suite.directory.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestUserDirectoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UserDirectoryIntegrationTestSuite))
}
