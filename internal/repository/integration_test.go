//go:build integration

// integration_test.go
package repository

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"go_vocab_sets/internal/config"
	"go_vocab_sets/internal/model"

	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var pgDB *gorm.DB

// TestMain は postgres コンテナを起動し、埋め込みマイグレーションを適用します。
func TestMain(m *testing.M) {
	testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	pool.MaxWait = 120 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=user",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=vocabkeep",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start PostgreSQL resource: %s", err)
	}

	databaseURL := fmt.Sprintf("postgres://user:secret@%s/vocabkeep?sslmode=disable", resource.GetHostPort("5432/tcp"))
	testLogger.Info("PostgreSQL container started", slog.String("url", databaseURL))

	if err := pool.Retry(func() error {
		var errRetry error
		pgDB, errRetry = NewDB(config.DatabaseConfig{Driver: DriverPostgres, URL: databaseURL, ConnectAttempts: 1},
			slog.New(slog.NewTextHandler(io.Discard, nil)))
		return errRetry
	}); err != nil {
		_ = pool.Purge(resource)
		log.Fatalf("Could not connect to PostgreSQL: %s", err)
	}

	if err := RunMigrations(databaseURL, testLogger); err != nil {
		_ = pool.Purge(resource)
		log.Fatalf("Could not migrate: %s", err)
	}
	// 2回目は ErrNoChange で成功する
	if err := RunMigrations(databaseURL, testLogger); err != nil {
		_ = pool.Purge(resource)
		log.Fatalf("Second migration run failed: %s", err)
	}

	code := m.Run()

	if err := pool.Purge(resource); err != nil {
		log.Printf("Could not purge resource: %s", err)
	}
	os.Exit(code)
}

func TestPostgres_SetAndEntryLifecycle(t *testing.T) {
	ctx := context.Background()
	sets := NewGormSetRepository()
	entries := NewGormEntryRepository()
	owner := uuid.New()

	set := newSet(owner, "Greetings", "greetings-"+uuid.NewString()[:8])
	require.NoError(t, sets.Create(ctx, pgDB, set))
	assert.ErrorIs(t, sets.Create(ctx, pgDB, newSet(owner, "Dup", set.Slug)), model.ErrConflict)

	entry := newEntry(set, "你好", "Hello", false)
	require.NoError(t, entries.Create(ctx, pgDB, entry))

	found, err := entries.Find(ctx, pgDB, model.EntryFilter{OwnerID: owner, Query: "HELLO"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, entry.EntryID, found[0].EntryID)

	// ON DELETE CASCADE
	require.NoError(t, sets.Delete(ctx, pgDB, set.SetID))
	_, err = entries.FindByID(ctx, pgDB, entry.EntryID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestPostgres_WordLengthConstraint(t *testing.T) {
	ctx := context.Background()
	set := newSet(uuid.New(), "Long", "long-"+uuid.NewString()[:8])
	require.NoError(t, NewGormSetRepository().Create(ctx, pgDB, set))

	err := NewGormEntryRepository().Create(ctx, pgDB, newEntry(set, "一二三四五六七八九十一", "too long", false))
	assert.Error(t, err)
}
