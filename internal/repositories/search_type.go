package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/ytxrecon/internal/models"
)

// SearchTypeRepository manages the search type labels.
type SearchTypeRepository struct {
	db *sql.DB
}

// NewSearchTypeRepository creates a new SearchTypeRepository with the given database connection
func NewSearchTypeRepository(db *sql.DB) *SearchTypeRepository {
	return &SearchTypeRepository{db: db}
}

// Seed inserts types, renaming any label whose id already exists.
func (r *SearchTypeRepository) Seed(ctx context.Context, types []models.SearchTypeLookup) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		return seedSearchTypes(ctx, tx, types)
	})
}

// List returns every search type ordered by id.
func (r *SearchTypeRepository) List(ctx context.Context) ([]models.SearchTypeLookup, error) {
	types, err := queryAll(ctx, r.db,
		"SELECT search_type_id, search_type_name FROM search_types ORDER BY search_type_id",
		func(rows *sql.Rows) (st models.SearchTypeLookup, err error) {
			err = rows.Scan(&st.SearchTypeID, &st.SearchTypeName)
			return st, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query search types: %w", err)
	}
	return types, nil
}

func seedSearchTypes(ctx context.Context, tx *sql.Tx, types []models.SearchTypeLookup) error {
	for _, st := range types {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO search_types (search_type_id, search_type_name)
			VALUES (?, ?)
			ON CONFLICT(search_type_id) DO UPDATE SET search_type_name = excluded.search_type_name
		`, st.SearchTypeID, st.SearchTypeName)
		if err != nil {
			return fmt.Errorf("failed to seed search type %d: %w", st.SearchTypeID, err)
		}
	}
	return nil
}
