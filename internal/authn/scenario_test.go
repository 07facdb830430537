package authn_test

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/N2Core/N2Identity/internal/authn"
	"github.com/N2Core/N2Identity/internal/db/models"
	"github.com/N2Core/N2Identity/internal/directory"
	"github.com/N2Core/N2Identity/internal/directory/gormstore"
	"github.com/N2Core/N2Identity/internal/rbac"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...), "failed to migrate test database")

	return db
}

func setupScenario(t *testing.T, now func() time.Time) (*directory.Manager, *authn.Authenticator, *models.User) {
	t.Helper()

	ctx := context.Background()
	manager := directory.NewManager(gormstore.Factory(setupTestDB(t)), directory.WithClock(now))

	_, err := manager.EnsureSystemRoles(ctx)
	require.NoError(t, err)

	alice := &models.User{UserName: "alice", Email: "alice@example.com"}
	res, err := manager.CreateUser(ctx, alice, "Passw0rd!")
	require.NoError(t, err)
	require.True(t, res.IsSuccess(), res.String())

	a, err := authn.NewAuthenticator(manager)
	require.NoError(t, err)

	return manager, a, alice
}

func TestScenarioLogin(t *testing.T) {
	_, a, _ := setupScenario(t, time.Now)
	ctx := context.Background()

	uc, err := a.Authenticate(ctx, authn.Login{UserName: "alice", Password: "Passw0rd!"})
	require.NoError(t, err)
	require.NotNil(t, uc)
	assert.Equal(t, "alice", uc.UserName())
	assert.True(t, uc.IsAuthenticated())
	assert.Empty(t, uc.CurrentRoles())

	uc, err = a.Authenticate(ctx, authn.Login{UserName: "ALICE", Password: "Passw0rd!"})
	require.NoError(t, err)
	assert.NotNil(t, uc, "user names are matched case insensitively")
}

func TestScenarioEnumerationResistance(t *testing.T) {
	_, a, _ := setupScenario(t, time.Now)
	ctx := context.Background()

	ghost, ghostErr := a.Authenticate(ctx, authn.Login{UserName: "ghost", Password: "x"})
	wrong, wrongErr := a.Authenticate(ctx, authn.Login{UserName: "alice", Password: "wrong"})

	assert.Nil(t, ghost)
	assert.Nil(t, wrong)
	assert.NoError(t, ghostErr)
	assert.NoError(t, wrongErr)
}

func TestScenarioLockout(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	manager, a, alice := setupScenario(t, func() time.Time { return now })
	ctx := context.Background()

	end := now.Add(time.Hour)
	alice.LockoutEnabled = true
	alice.LockoutEnd = &end
	_, err := manager.Update(ctx, alice)
	require.NoError(t, err)

	uc, err := a.Authenticate(ctx, authn.Login{UserName: "alice", Password: "Passw0rd!"})
	require.NoError(t, err)
	assert.Nil(t, uc)
}

func TestScenarioRoles(t *testing.T) {
	manager, a, alice := setupScenario(t, time.Now)
	ctx := context.Background()
	login := authn.Login{UserName: "alice", Password: "Passw0rd!"}

	_, err := manager.AddToRole(ctx, alice, rbac.Publisher)
	require.NoError(t, err)

	uc, err := a.Authenticate(ctx, login)
	require.NoError(t, err)
	require.NotNil(t, uc)
	assert.True(t, uc.CanPublish())

	_, err = manager.RemoveFromRole(ctx, alice, rbac.Publisher)
	require.NoError(t, err)
	_, err = manager.AddToRole(ctx, alice, rbac.Designer)
	require.NoError(t, err)

	uc, err = a.Authenticate(ctx, login)
	require.NoError(t, err)
	require.NotNil(t, uc)
	assert.False(t, uc.CanPublish())
	assert.True(t, uc.CanDesign())
	assert.Equal(t, []string{rbac.Designer}, uc.CurrentRoles())
}
