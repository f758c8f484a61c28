package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/ytxrecon/internal/models"
	"github.com/desertthunder/ytxrecon/internal/reconcile"
	"github.com/desertthunder/ytxrecon/internal/repositories"
	"github.com/desertthunder/ytxrecon/internal/shared"
	"github.com/urfave/cli/v3"
)

// SeedSearchTypes upserts the default search type labels.
func (r *Runner) SeedSearchTypes(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	db, err := r.database()
	if err != nil {
		return err
	}
	defer db.Close()

	types := models.DefaultSearchTypes()
	if err := repositories.NewSearchTypeRepository(db).Seed(ctx, types); err != nil {
		return err
	}

	r.logger.Info("seeded search types", "count", len(types))
	return r.writePlain("✓ Seeded %d search types\n", len(types))
}

// SeedSnapshot validates a JSON snapshot file and stages its tables.
func (r *Runner) SeedSnapshot(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadConfig(cmd); err != nil {
		return err
	}

	path := cmd.String("file")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snapshot models.Snapshot
	if err := shared.UnmarshalJSON(data, &snapshot); err != nil {
		return fmt.Errorf("%w: failed to parse %s: %v", shared.ErrInvalidInput, path, err)
	}

	if err := reconcile.ValidateSnapshot(&snapshot); err != nil {
		return err
	}

	db, err := r.database()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repositories.NewSnapshotRepository(db).Stage(ctx, &snapshot); err != nil {
		return err
	}

	r.logger.Info("staged snapshot", "file", path, "search_logs", len(snapshot.SearchLog), "matches", len(snapshot.VideoMatches))
	return r.writePlain("✓ Staged %d search log entries from %s\n", len(snapshot.SearchLog), path)
}
