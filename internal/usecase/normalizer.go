package usecase

import (
	"github.com/riskibarqy/volleyball-stats/internal/domain/feed"
	"github.com/riskibarqy/volleyball-stats/internal/domain/match"
	"github.com/riskibarqy/volleyball-stats/internal/domain/team"
	"github.com/riskibarqy/volleyball-stats/internal/domain/tournament"
)

// EntityKind names one relational table of the store.
type EntityKind string

const (
	KindTournaments EntityKind = "tournaments"
	KindTeams       EntityKind = "teams"
	KindPools       EntityKind = "pools"
	KindRounds      EntityKind = "rounds"
	KindMatches     EntityKind = "matches"
	KindSets        EntityKind = "sets"
)

// LoadOrder lists entity kinds so that every referenced row is written before
// the rows referencing it.
var LoadOrder = []EntityKind{KindTournaments, KindTeams, KindPools, KindRounds, KindMatches, KindSets}

// ParseEntityKind accepts the table name of an entity kind.
func ParseEntityKind(raw string) (EntityKind, bool) {
	for _, kind := range LoadOrder {
		if string(kind) == raw {
			return kind, true
		}
	}
	return "", false
}

// Batch holds the flat records derived from one bundle.
type Batch struct {
	Tournaments []tournament.Tournament
	Teams       []team.Team
	Pools       []match.Pool
	Rounds      []match.Round
	Matches     []match.Match
	Sets        []match.Set
}

func (b Batch) Count(kind EntityKind) int {
	switch kind {
	case KindTournaments:
		return len(b.Tournaments)
	case KindTeams:
		return len(b.Teams)
	case KindPools:
		return len(b.Pools)
	case KindRounds:
		return len(b.Rounds)
	case KindMatches:
		return len(b.Matches)
	case KindSets:
		return len(b.Sets)
	default:
		return 0
	}
}

// NormalizeBundle flattens a bundle into per-table records. Pools and rounds
// are derived from the matches that embed them, keeping the first occurrence
// of each number.
func NormalizeBundle(bundle feed.Bundle) Batch {
	return Batch{
		Tournaments: normalizeTournaments(bundle.Tournaments),
		Teams:       normalizeTeams(bundle.Teams),
		Pools:       extractPools(bundle.Matches),
		Rounds:      extractRounds(bundle.Matches),
		Matches:     normalizeMatches(bundle.Matches),
		Sets:        extractSets(bundle.Matches),
	}
}

func normalizeTournaments(items []feed.Tournament) []tournament.Tournament {
	out := make([]tournament.Tournament, 0, len(items))
	for _, item := range items {
		out = append(out, tournament.Tournament{
			No:                   item.No.OrZero(),
			Name:                 item.Name.Ptr(),
			StartDate:            item.StartDate.Ptr(),
			EndDate:              item.EndDate.Ptr(),
			Discipline:           item.Discipline.Ptr(),
			DisciplineText:       item.DisciplineText.Ptr(),
			City:                 item.City.Ptr(),
			Country:              item.Country.Ptr(),
			CountryName:          item.CountryName.Ptr(),
			Gender:               item.Gender.Ptr(),
			GenderText:           item.GenderText.Ptr(),
			CompetitionShortName: item.CompetitionShortName.Ptr(),
			CompetitionFullName:  item.CompetitionFullName.Ptr(),
			CompetitionSlug:      item.CompetitionSlug.Ptr(),
			Logo:                 item.Logo.Ptr(),
			LogoSquare:           item.LogoSquare.Ptr(),
			LogoURL:              item.LogoURL.Ptr(),
			TicketsURL:           item.TicketsURL.Ptr(),
			VolleyBallTVLink:     item.VolleyBallTVLink.Ptr(),
			YouTubeLink:          item.YouTubeLink.Ptr(),
			StoreLink:            item.StoreLink.Ptr(),
			URL:                  item.URL.Ptr(),
			SubCompetitionType:   item.SubCompetitionType.Ptr(),
		})
	}
	return out
}

func normalizeTeams(items []feed.Team) []team.Team {
	out := make([]team.Team, 0, len(items))
	for _, item := range items {
		out = append(out, team.Team{
			No:             item.No.OrZero(),
			Code:           item.Code.Ptr(),
			Name:           item.Name.Ptr(),
			Country:        item.Country.Ptr(),
			TranslatedName: item.TranslatedName.Ptr(),
			Img:            item.Img.Ptr(),
			ImgSquared:     item.ImgSquared.Ptr(),
			AltText:        item.AltText.Ptr(),
			Discipline:     item.Discipline.Ptr(),
			IsClub:         item.IsClub.Flag() == 1,
			TournamentCode: item.TournamentCode.Ptr(),
		})
	}
	return out
}

func extractPools(matches []feed.Match) []match.Pool {
	seen := make(map[int64]struct{})
	out := make([]match.Pool, 0)
	for _, item := range matches {
		if item.Pool == nil {
			continue
		}
		no := item.Pool.No.OrZero()
		if no == 0 {
			continue
		}
		if _, ok := seen[no]; ok {
			continue
		}
		seen[no] = struct{}{}
		out = append(out, match.Pool{
			No:           no,
			Name:         item.Pool.Name.Ptr(),
			Code:         item.Pool.Code.Ptr(),
			TournamentNo: item.TournamentNo.Ptr(),
		})
	}
	return out
}

func extractRounds(matches []feed.Match) []match.Round {
	seen := make(map[int64]struct{})
	out := make([]match.Round, 0)
	for _, item := range matches {
		no := item.RoundNo.OrZero()
		if no == 0 {
			continue
		}
		if _, ok := seen[no]; ok {
			continue
		}
		seen[no] = struct{}{}
		out = append(out, match.Round{
			No:           no,
			Name:         item.RoundName.Ptr(),
			Code:         item.RoundCode.Ptr(),
			TournamentNo: item.TournamentNo.Ptr(),
		})
	}
	return out
}

func normalizeMatches(items []feed.Match) []match.Match {
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		var poolNo *int64
		if item.Pool != nil {
			poolNo = item.Pool.No.NonZeroPtr()
		}

		out = append(out, match.Match{
			MatchNo:              item.No.OrZero(),
			MatchNoInTournament:  item.NoInTournament.Ptr(),
			TournamentNo:         item.TournamentNo.OrZero(),
			TeamANo:              item.TeamANo.OrZero(),
			TeamBNo:              item.TeamBNo.OrZero(),
			WinnerTeamNo:         item.WinnerTeamNo.NonZeroPtr(),
			TeamAScore:           item.TeamAScore.Ptr(),
			TeamBScore:           item.TeamBScore.Ptr(),
			MatchDateUTC:         item.MatchDateUTC.Ptr(),
			MatchDateTimeLocal:   item.MatchDateTimeLocal.Ptr(),
			MatchStatus:          item.MatchStatus.Ptr(),
			CurrentSetNo:         item.CurrentSetNo.Ptr(),
			CompetitionSlug:      item.CompetitionSlug.Ptr(),
			CompetitionShortName: item.CompetitionShortName.Ptr(),
			CompetitionFullName:  item.CompetitionFullName.Ptr(),
			RoundNo:              item.RoundNo.NonZeroPtr(),
			PoolNo:               poolNo,
			City:                 item.City.Ptr(),
			CountryCode:          item.CountryCode.Ptr(),
			Country:              item.Country.Ptr(),
			Gender:               item.Gender.Ptr(),
			GenderText:           item.GenderText.Ptr(),
			Discipline:           item.Discipline.Ptr(),
			DisciplineText:       item.DisciplineText.Ptr(),
			PinnedCompetition:    item.PinnedCompetition.Flag() == 1,
			IsMatchTBD:           item.IsMatchTBD.Flag() == 1,
			TournamentType:       item.TournamentType.Ptr(),
			Season:               item.Season.Ptr(),
			TicketLink:           item.TicketLink.Ptr(),
			VolleyBallTVLink:     item.VolleyBallTVLink.Ptr(),
			YouTubeLink:          item.YouTubeLink.Ptr(),
			MatchCenterURL:       item.MatchCenterURL.Ptr(),
			WorldRankingURL:      item.WorldRankingURL.Ptr(),
			TeamAReplacementTBD:  item.TeamAReplacementTBD.Ptr(),
			TeamBReplacementTBD:  item.TeamBReplacementTBD.Ptr(),
			Phase:                item.Phase.Ptr(),
			Court:                item.Court.Ptr(),
			CourtText:            item.CourtText.Ptr(),
		})
	}
	return out
}

func extractSets(matches []feed.Match) []match.Set {
	out := make([]match.Set, 0)
	for _, item := range matches {
		matchNo := item.No.OrZero()
		for _, set := range item.Sets {
			if !set.Played() {
				continue
			}
			out = append(out, match.Set{
				MatchNo:     matchNo,
				SetNumber:   set.No.OrZero(),
				PointsTeamA: set.PointsTeamA.OrZero(),
				PointsTeamB: set.PointsTeamB.OrZero(),
			})
		}
	}
	return out
}
