package repo

import (
	"context"
	"fmt"

	"fundledger/internal/domain"
	"fundledger/internal/sqlinline"
)

// AdminRepositoryPG archives admin flags in PostgreSQL.
type AdminRepositoryPG struct {
	db DBTX
}

// NewAdminRepository creates a new admin flag archive repo.
func NewAdminRepository(db DBTX) *AdminRepositoryPG {
	return &AdminRepositoryPG{db: db}
}

// SetFlag stores the flag for a (normalized) identity.
func (r *AdminRepositoryPG) SetFlag(ctx context.Context, identity domain.Identity, enabled bool) error {
	_, err := r.db.Exec(ctx, sqlinline.QSetAdminFlag, string(identity.Normalize()), enabled)
	if err != nil {
		return fmt.Errorf("set admin flag for %s: %w", identity.Short(), err)
	}
	return nil
}

// List returns every stored flag, for boot replay.
func (r *AdminRepositoryPG) List(ctx context.Context) (map[domain.Identity]bool, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListAdminFlags)
	if err != nil {
		return nil, fmt.Errorf("list admin flags: %w", err)
	}
	defer rows.Close()

	flags := make(map[domain.Identity]bool)
	for rows.Next() {
		var (
			identity string
			enabled  bool
		)
		if err := rows.Scan(&identity, &enabled); err != nil {
			return nil, fmt.Errorf("scan admin flag: %w", err)
		}
		flags[domain.Identity(identity)] = enabled
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list admin flags: %w", err)
	}
	return flags, nil
}
