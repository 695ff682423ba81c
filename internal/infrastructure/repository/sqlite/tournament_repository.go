package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/volleyball-stats/internal/domain/tournament"
)

type TournamentRepository struct {
	store *Store
}

func NewTournamentRepository(store *Store) *TournamentRepository {
	return &TournamentRepository{store: store}
}

func (r *TournamentRepository) UpsertTournaments(ctx context.Context, items []tournament.Tournament) error {
	if len(items) == 0 {
		return nil
	}

	return r.store.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, item := range items {
			if err := item.Validate(); err != nil {
				return fmt.Errorf("validate tournament: %w", err)
			}
			insertModel := tournamentInsertModel{
				No:                   item.No,
				Name:                 item.Name,
				StartDate:            item.StartDate,
				EndDate:              item.EndDate,
				Discipline:           item.Discipline,
				DisciplineText:       item.DisciplineText,
				City:                 item.City,
				Country:              item.Country,
				CountryName:          item.CountryName,
				Gender:               item.Gender,
				GenderText:           item.GenderText,
				CompetitionShortName: item.CompetitionShortName,
				CompetitionFullName:  item.CompetitionFullName,
				CompetitionSlug:      item.CompetitionSlug,
				Logo:                 item.Logo,
				LogoSquare:           item.LogoSquare,
				LogoURL:              item.LogoURL,
				TicketsURL:           item.TicketsURL,
				VolleyBallTVLink:     item.VolleyBallTVLink,
				YouTubeLink:          item.YouTubeLink,
				StoreLink:            item.StoreLink,
				URL:                  item.URL,
				SubCompetitionType:   item.SubCompetitionType,
			}
			if err := upsert(ctx, tx, "tournaments", insertModel, "no"); err != nil {
				return fmt.Errorf("upsert tournament no=%d: %w", item.No, err)
			}
		}
		return nil
	})
}
