package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shelterplus/shelterplus-api/internal/config"
	"github.com/shelterplus/shelterplus-api/internal/domain"
	"github.com/shelterplus/shelterplus-api/internal/repository"
	repoPostgres "github.com/shelterplus/shelterplus-api/internal/repository/postgres"
	"github.com/shelterplus/shelterplus-api/internal/service"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer and returns a connection
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_shelterplus"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&domain.Lobby{},
		&domain.LobbyPlayer{},
		&domain.Game{},
		&domain.Player{},
		&domain.Card{},
		&domain.Vote{},
		&domain.MinuteRequest{},
		&domain.RevealPlan{},
		&domain.GameEvent{},
		&domain.GameAdmin{},
		&domain.Invite{},
	)
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		ctx := context.Background()
		tdb.Container.Terminate(ctx)
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"invites",
		"game_admins",
		"game_events",
		"reveal_plans",
		"minute_requests",
		"votes",
		"cards",
		"players",
		"games",
		"lobby_players",
		"lobbies",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:          "0", // Random port
		Environment:   "test",
		JWTSecret:     "test-jwt-secret-key-for-testing-only",
		AllowedOrigin: "*",
	}
}

// TestEnv wires repositories and services against a test database, with
// recording fakes in place of Discord and the realtime hub.
type TestEnv struct {
	DB          *TestDB
	Repos       *repository.Repositories
	Services    *service.Services
	Presets     *config.OfficialPresets
	Notifier    *FakeNotifier
	Broadcaster *FakeBroadcaster
}

// NewTestEnv builds a full service stack on a fresh container. Tests that
// exercise the database should skip themselves under -short.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	testDB := NewTestDB(t)
	repos := repoPostgres.NewRepositories(testDB.DB)
	presets := config.NewOfficialPresets("")
	notifier := NewFakeNotifier()
	broadcaster := NewFakeBroadcaster()

	services := service.NewServices(repos, presets, notifier, broadcaster)

	return &TestEnv{
		DB:          testDB,
		Repos:       repos,
		Services:    services,
		Presets:     presets,
		Notifier:    notifier,
		Broadcaster: broadcaster,
	}
}
