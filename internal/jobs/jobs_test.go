package jobs_test

import (
	"context"
	"testing"
	"time"

	"log/slog"

	migrations "github.com/jpereira/homecheck/db"
	"github.com/jpereira/homecheck/internal/db"
	"github.com/jpereira/homecheck/internal/jobs"
	"github.com/jpereira/homecheck/internal/models"
	"github.com/jpereira/homecheck/internal/repository/sqlite"
)

func setupJobsDB(t *testing.T, name string) (*sqlite.SQLiteRepo, func()) {
	t.Helper()
	ctx := context.Background()
	// shared in-memory DB so multiple connections see the same schema
	d, err := db.New(ctx, "file:"+name+"?mode=memory&cache=shared", slog.Default())
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	if err := db.Migrate(ctx, d, migrations.Migrations); err != nil {
		d.Close()
		t.Fatalf("migrate: %v", err)
	}
	return sqlite.New(d, slog.Default()), func() { d.Close() }
}

func TestEnqueueAndProcess(t *testing.T) {
	repo, cleanup := setupJobsDB(t, "jobsprocess")
	defer cleanup()
	ctx := context.Background()

	handled := make(chan struct{}, 1)
	handlers := map[string]jobs.Handler{
		"test": func(ctx context.Context, j *models.BackgroundJob) error {
			handled <- struct{}{}
			return nil
		},
	}
	pool := jobs.NewWorkerPool(repo, handlers, slog.Default(), 1)
	pool.Start(ctx)
	defer pool.Stop()

	if _, err := pool.Enqueue(ctx, "test", map[string]string{"foo": "bar"}, 10, 3); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case <-handled:
		// ok
	case <-time.After(3 * time.Second):
		t.Fatalf("handler was not called")
	}
}

func TestUnknownJobTypeGoesToDeadLetter(t *testing.T) {
	repo, cleanup := setupJobsDB(t, "jobsdlq")
	defer cleanup()
	ctx := context.Background()

	pool := jobs.NewWorkerPool(repo, map[string]jobs.Handler{}, slog.Default(), 1)
	pool.Start(ctx)
	defer pool.Stop()

	if _, err := pool.Enqueue(ctx, "nobody-handles-this", nil, 10, 3); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		j, err := repo.FetchNext(ctx)
		if err != nil {
			t.Fatalf("fetch next: %v", err)
		}
		if j == nil {
			return // moved out of the queue
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("job was not moved to the dead letter queue")
}

func TestBackoffDuration(t *testing.T) {
	if d := jobs.BackoffDuration(0); d != time.Second {
		t.Fatalf("attempt 0: got %v", d)
	}
	if d := jobs.BackoffDuration(1); d != 2*time.Second {
		t.Fatalf("attempt 1: got %v", d)
	}
	if d := jobs.BackoffDuration(3); d != 8*time.Second {
		t.Fatalf("attempt 3: got %v", d)
	}
	if d := jobs.BackoffDuration(20); d != 5*time.Minute {
		t.Fatalf("attempt 20 should cap at 5m, got %v", d)
	}
}
