package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/volleyball-stats/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) UpsertTeams(ctx context.Context, items []team.Team) error {
	if len(items) == 0 {
		return nil
	}

	return r.store.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, item := range items {
			if err := item.Validate(); err != nil {
				return fmt.Errorf("validate team: %w", err)
			}
			insertModel := teamInsertModel{
				No:             item.No,
				Code:           item.Code,
				Name:           item.Name,
				Country:        item.Country,
				TranslatedName: item.TranslatedName,
				Img:            item.Img,
				ImgSquared:     item.ImgSquared,
				AltText:        item.AltText,
				Discipline:     item.Discipline,
				IsClub:         boolToInt(item.IsClub),
				TournamentCode: item.TournamentCode,
			}
			if err := upsert(ctx, tx, "teams", insertModel, "no"); err != nil {
				return fmt.Errorf("upsert team no=%d: %w", item.No, err)
			}
		}
		return nil
	})
}
