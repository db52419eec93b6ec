package badges

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/learnquest/internal/client/backend"
	"github.com/dmitrijs2005/learnquest/internal/client/models"
)

const table = "user_badges"

type earnedRow struct {
	EarnedAt time.Time `json:"earned_at"`
	Badge    *struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		IconURL     string `json:"icon_url"`
	} `json:"badges"`
}

type RESTRepository struct {
	db backend.Tables
}

func NewRESTRepository(db backend.Tables) *RESTRepository {
	return &RESTRepository{db: db}
}

// ListByUser returns earned badges, most recent first. Rows whose badge
// definition is gone are skipped.
func (r *RESTRepository) ListByUser(ctx context.Context, userID string) ([]models.Badge, error) {
	q := backend.NewQuery().
		Select("earned_at,badges(id,name,description,icon_url)").
		Eq("user_id", userID).
		Order("earned_at", false)

	var rows []earnedRow
	if err := r.db.Select(ctx, table, q, &rows); err != nil {
		return nil, fmt.Errorf("list badges of %s: %w", userID, err)
	}

	out := make([]models.Badge, 0, len(rows))
	for _, row := range rows {
		if row.Badge == nil {
			continue
		}
		out = append(out, models.Badge{
			ID:          row.Badge.ID,
			Name:        row.Badge.Name,
			Description: row.Badge.Description,
			IconURL:     row.Badge.IconURL,
			EarnedAt:    row.EarnedAt,
		})
	}
	return out, nil
}

func (r *RESTRepository) DeleteByUser(ctx context.Context, userID string) error {
	if err := r.db.Delete(ctx, table, backend.NewQuery().Eq("user_id", userID)); err != nil {
		return fmt.Errorf("delete badges of %s: %w", userID, err)
	}
	return nil
}
