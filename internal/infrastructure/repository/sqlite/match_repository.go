package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/volleyball-stats/internal/domain/match"
)

// MatchRepository writes matches and the pools, rounds and sets derived
// from them.
type MatchRepository struct {
	store *Store
}

func NewMatchRepository(store *Store) *MatchRepository {
	return &MatchRepository{store: store}
}

func (r *MatchRepository) UpsertPools(ctx context.Context, items []match.Pool) error {
	if len(items) == 0 {
		return nil
	}

	return r.store.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, item := range items {
			if err := item.Validate(); err != nil {
				return fmt.Errorf("validate pool: %w", err)
			}
			insertModel := poolInsertModel{
				No:           item.No,
				Name:         item.Name,
				Code:         item.Code,
				TournamentNo: item.TournamentNo,
			}
			if err := upsert(ctx, tx, "pools", insertModel, "no"); err != nil {
				return fmt.Errorf("upsert pool no=%d: %w", item.No, err)
			}
		}
		return nil
	})
}

func (r *MatchRepository) UpsertRounds(ctx context.Context, items []match.Round) error {
	if len(items) == 0 {
		return nil
	}

	return r.store.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, item := range items {
			if err := item.Validate(); err != nil {
				return fmt.Errorf("validate round: %w", err)
			}
			insertModel := poolInsertModel{
				No:           item.No,
				Name:         item.Name,
				Code:         item.Code,
				TournamentNo: item.TournamentNo,
			}
			if err := upsert(ctx, tx, "rounds", insertModel, "no"); err != nil {
				return fmt.Errorf("upsert round no=%d: %w", item.No, err)
			}
		}
		return nil
	})
}

func (r *MatchRepository) UpsertMatches(ctx context.Context, items []match.Match) error {
	if len(items) == 0 {
		return nil
	}

	return r.store.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, item := range items {
			if err := item.Validate(); err != nil {
				return fmt.Errorf("validate match: %w", err)
			}
			if err := upsert(ctx, tx, "matches", toMatchInsertModel(item), "match_no"); err != nil {
				return fmt.Errorf("upsert match no=%d: %w", item.MatchNo, err)
			}
		}
		return nil
	})
}

func (r *MatchRepository) UpsertSets(ctx context.Context, items []match.Set) error {
	if len(items) == 0 {
		return nil
	}

	return r.store.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, item := range items {
			if err := item.Validate(); err != nil {
				return fmt.Errorf("validate set: %w", err)
			}
			insertModel := setInsertModel{
				MatchNo:     item.MatchNo,
				SetNumber:   item.SetNumber,
				PointsTeamA: item.PointsTeamA,
				PointsTeamB: item.PointsTeamB,
			}
			if err := upsert(ctx, tx, "sets", insertModel, "match_no", "set_number"); err != nil {
				return fmt.Errorf("upsert set match=%d set=%d: %w", item.MatchNo, item.SetNumber, err)
			}
		}
		return nil
	})
}

func toMatchInsertModel(item match.Match) matchInsertModel {
	return matchInsertModel{
		MatchNo:              item.MatchNo,
		MatchNoInTournament:  item.MatchNoInTournament,
		TournamentNo:         item.TournamentNo,
		TeamANo:              item.TeamANo,
		TeamBNo:              item.TeamBNo,
		WinnerTeamNo:         item.WinnerTeamNo,
		TeamAScore:           item.TeamAScore,
		TeamBScore:           item.TeamBScore,
		MatchDateUTC:         item.MatchDateUTC,
		MatchDateTimeLocal:   item.MatchDateTimeLocal,
		MatchStatus:          item.MatchStatus,
		CurrentSetNo:         item.CurrentSetNo,
		CompetitionSlug:      item.CompetitionSlug,
		CompetitionShortName: item.CompetitionShortName,
		CompetitionFullName:  item.CompetitionFullName,
		RoundNo:              item.RoundNo,
		PoolNo:               item.PoolNo,
		City:                 item.City,
		CountryCode:          item.CountryCode,
		Country:              item.Country,
		Gender:               item.Gender,
		GenderText:           item.GenderText,
		Discipline:           item.Discipline,
		DisciplineText:       item.DisciplineText,
		PinnedCompetition:    boolToInt(item.PinnedCompetition),
		IsMatchTBD:           boolToInt(item.IsMatchTBD),
		TournamentType:       item.TournamentType,
		Season:               item.Season,
		TicketLink:           item.TicketLink,
		VolleyBallTVLink:     item.VolleyBallTVLink,
		YouTubeLink:          item.YouTubeLink,
		MatchCenterURL:       item.MatchCenterURL,
		WorldRankingURL:      item.WorldRankingURL,
		TeamAReplacementTBD:  item.TeamAReplacementTBD,
		TeamBReplacementTBD:  item.TeamBReplacementTBD,
		Phase:                item.Phase,
		Court:                item.Court,
		CourtText:            item.CourtText,
	}
}
