package repository

import (
	"context"
	"fmt"

	"unifest/internal/database"
	"unifest/internal/models"
)

type TierRepository struct {
	db *database.DB
}

func NewTierRepository(db *database.DB) *TierRepository {
	return &TierRepository{db: db}
}

// Create inserts a pricing tier after verifying, inside one transaction, that
// its range does not overlap an existing tier for the same event.
func (r *TierRepository) Create(ctx context.Context, tier *models.TeamPricingTier) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var overlapping int
	checkQuery := `
		SELECT COUNT(*) FROM team_pricing_tiers
		WHERE event_id = $1 AND min_members <= $3 AND $2 <= max_members`
	err = tx.QueryRowContext(ctx, checkQuery, tier.EventID, tier.MinMembers, tier.MaxMembers).Scan(&overlapping)
	if err != nil {
		return err
	}
	if overlapping > 0 {
		return fmt.Errorf("tier [%d, %d] overlaps an existing tier for event %s",
			tier.MinMembers, tier.MaxMembers, tier.EventID)
	}

	insertQuery := `
		INSERT INTO team_pricing_tiers (event_id, min_members, max_members, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err = tx.QueryRowContext(ctx, insertQuery,
		tier.EventID,
		tier.MinMembers,
		tier.MaxMembers,
		tier.Price,
	).Scan(&tier.ID, &tier.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *TierRepository) GetByEvent(ctx context.Context, eventID string) ([]models.TeamPricingTier, error) {
	var tiers []models.TeamPricingTier
	query := `
		SELECT id, event_id, min_members, max_members, price, created_at
		FROM team_pricing_tiers
		WHERE event_id = $1
		ORDER BY min_members`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var tier models.TeamPricingTier
		err := rows.Scan(
			&tier.ID,
			&tier.EventID,
			&tier.MinMembers,
			&tier.MaxMembers,
			&tier.Price,
			&tier.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, tier)
	}

	return tiers, rows.Err()
}
