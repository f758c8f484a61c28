package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/ytxrecon/internal/models"
	"github.com/desertthunder/ytxrecon/internal/shared"
)

func TestRunRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewRunRepository(db)
		run, err := repo.Create(ctx)
		if err != nil {
			t.Fatalf("failed to create run: %v", err)
		}

		if run.ID == "" {
			t.Error("run ID should be set after creation")
		}
		if run.Status != models.RunRunning {
			t.Errorf("expected status %s, got %s", models.RunRunning, run.Status)
		}

		retrieved, err := repo.Get(ctx, run.ID)
		if err != nil {
			t.Fatalf("failed to get run: %v", err)
		}
		if retrieved.CompletedAt != nil {
			t.Error("running run should not have a completion time")
		}
		if !retrieved.StartedAt.Equal(run.StartedAt) {
			t.Errorf("expected started_at %v, got %v", run.StartedAt, retrieved.StartedAt)
		}
	})

	t.Run("Complete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewRunRepository(db)
		run, err := repo.Create(ctx)
		if err != nil {
			t.Fatalf("failed to create run: %v", err)
		}

		counts := models.RunCounts{SearchLogs: 10, Enriched: 8, Reconciled: 6, Dropped: 4, MissingCatalog: 1, NullPercentage: 2}
		if err := repo.Complete(ctx, run.ID, counts); err != nil {
			t.Fatalf("failed to complete run: %v", err)
		}

		retrieved, err := repo.Get(ctx, run.ID)
		if err != nil {
			t.Fatalf("failed to get run: %v", err)
		}
		if retrieved.Status != models.RunCompleted {
			t.Errorf("expected status %s, got %s", models.RunCompleted, retrieved.Status)
		}
		if retrieved.RunCounts != counts {
			t.Errorf("expected counts %+v, got %+v", counts, retrieved.RunCounts)
		}
		if retrieved.CompletedAt == nil {
			t.Fatal("completed run should have a completion time")
		}
		if retrieved.Duration() < 0 {
			t.Errorf("negative run duration %v", retrieved.Duration())
		}

		if err := repo.Complete(ctx, run.ID, counts); !errors.Is(err, shared.ErrRunNotFound) {
			t.Errorf("expected ErrRunNotFound when completing twice, got %v", err)
		}
	})

	t.Run("Fail", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewRunRepository(db)
		run, err := repo.Create(ctx)
		if err != nil {
			t.Fatalf("failed to create run: %v", err)
		}

		if err := repo.Fail(ctx, run.ID, context.DeadlineExceeded); err != nil {
			t.Fatalf("failed to fail run: %v", err)
		}

		retrieved, err := repo.Get(ctx, run.ID)
		if err != nil {
			t.Fatalf("failed to get run: %v", err)
		}
		if retrieved.Status != models.RunFailed {
			t.Errorf("expected status %s, got %s", models.RunFailed, retrieved.Status)
		}
		if retrieved.ErrorMessage != context.DeadlineExceeded.Error() {
			t.Errorf("unexpected error message %q", retrieved.ErrorMessage)
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewRunRepository(db)
		for range 3 {
			if _, err := repo.Create(ctx); err != nil {
				t.Fatalf("failed to create run: %v", err)
			}
		}

		runs, err := repo.List(ctx, 0)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 3 {
			t.Errorf("expected 3 runs, got %d", len(runs))
		}

		limited, err := repo.List(ctx, 2)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(limited) != 2 {
			t.Errorf("expected 2 runs, got %d", len(limited))
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewRunRepository(db)

		if _, err := repo.Get(ctx, "non-existent-id"); !errors.Is(err, shared.ErrRunNotFound) {
			t.Errorf("expected ErrRunNotFound from Get, got %v", err)
		}
		if err := repo.Complete(ctx, "non-existent-id", models.RunCounts{}); !errors.Is(err, shared.ErrRunNotFound) {
			t.Errorf("expected ErrRunNotFound from Complete, got %v", err)
		}
		if err := repo.Fail(ctx, "non-existent-id", nil); !errors.Is(err, shared.ErrRunNotFound) {
			t.Errorf("expected ErrRunNotFound from Fail, got %v", err)
		}
	})
}
