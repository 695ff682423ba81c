package match

import "fmt"

// Pool groups matches inside a tournament phase.
type Pool struct {
	No           int64
	Name         *string
	Code         *string
	TournamentNo *int64
}

func (p Pool) Validate() error {
	if p.No <= 0 {
		return fmt.Errorf("pool no is required")
	}
	return nil
}

// Round is a stage of a tournament such as a preliminary round or a final.
type Round struct {
	No           int64
	Name         *string
	Code         *string
	TournamentNo *int64
}

func (r Round) Validate() error {
	if r.No <= 0 {
		return fmt.Errorf("round no is required")
	}
	return nil
}

// Match is a single fixture between two teams.
type Match struct {
	MatchNo              int64
	MatchNoInTournament  *int64
	TournamentNo         int64
	TeamANo              int64
	TeamBNo              int64
	WinnerTeamNo         *int64
	TeamAScore           *int64
	TeamBScore           *int64
	MatchDateUTC         *string
	MatchDateTimeLocal   *string
	MatchStatus          *int64
	CurrentSetNo         *int64
	CompetitionSlug      *string
	CompetitionShortName *string
	CompetitionFullName  *string
	RoundNo              *int64
	PoolNo               *int64
	City                 *string
	CountryCode          *string
	Country              *string
	Gender               *string
	GenderText           *string
	Discipline           *string
	DisciplineText       *string
	PinnedCompetition    bool
	IsMatchTBD           bool
	TournamentType       *int64
	Season               *int64
	TicketLink           *string
	VolleyBallTVLink     *string
	YouTubeLink          *string
	MatchCenterURL       *string
	WorldRankingURL      *string
	TeamAReplacementTBD  *string
	TeamBReplacementTBD  *string
	Phase                *string
	Court                *string
	CourtText            *string
}

func (m Match) Validate() error {
	if m.MatchNo <= 0 {
		return fmt.Errorf("match no is required")
	}
	if m.TeamANo > 0 && m.TeamANo == m.TeamBNo {
		return fmt.Errorf("match %d: team a and team b must differ", m.MatchNo)
	}
	if m.WinnerTeamNo != nil && *m.WinnerTeamNo != m.TeamANo && *m.WinnerTeamNo != m.TeamBNo {
		return fmt.Errorf("match %d: winner %d is not one of the participating teams", m.MatchNo, *m.WinnerTeamNo)
	}

	return nil
}

// Set is the score of one played set of a match.
type Set struct {
	MatchNo     int64
	SetNumber   int64
	PointsTeamA int64
	PointsTeamB int64
}

func (s Set) Validate() error {
	if s.MatchNo <= 0 {
		return fmt.Errorf("set match no is required")
	}
	if s.SetNumber <= 0 {
		return fmt.Errorf("match %d: set number is required", s.MatchNo)
	}
	if s.PointsTeamA < 0 || s.PointsTeamB < 0 {
		return fmt.Errorf("match %d set %d: points must be >= 0", s.MatchNo, s.SetNumber)
	}
	return nil
}
