package sqlite

type tournamentInsertModel struct {
	No                   int64   `db:"no"`
	Name                 *string `db:"name"`
	StartDate            *string `db:"start_date"`
	EndDate              *string `db:"end_date"`
	Discipline           *string `db:"discipline"`
	DisciplineText       *string `db:"discipline_text"`
	City                 *string `db:"city"`
	Country              *string `db:"country"`
	CountryName          *string `db:"country_name"`
	Gender               *string `db:"gender"`
	GenderText           *string `db:"gender_text"`
	CompetitionShortName *string `db:"competition_short_name"`
	CompetitionFullName  *string `db:"competition_full_name"`
	CompetitionSlug      *string `db:"competition_slug"`
	Logo                 *string `db:"logo"`
	LogoSquare           *string `db:"logo_square"`
	LogoURL              *string `db:"logo_url"`
	TicketsURL           *string `db:"tickets_url"`
	VolleyBallTVLink     *string `db:"volley_ball_tv_link"`
	YouTubeLink          *string `db:"you_tube_link"`
	StoreLink            *string `db:"store_link"`
	URL                  *string `db:"url"`
	SubCompetitionType   *string `db:"sub_competition_type"`
}

type teamInsertModel struct {
	No             int64   `db:"no"`
	Code           *string `db:"code"`
	Name           *string `db:"name"`
	Country        *string `db:"country"`
	TranslatedName *string `db:"translated_name"`
	Img            *string `db:"img"`
	ImgSquared     *string `db:"img_squared"`
	AltText        *string `db:"alt_text"`
	Discipline     *string `db:"discipline"`
	IsClub         int     `db:"is_club"`
	TournamentCode *string `db:"tournament_code"`
}

// poolInsertModel is shared by pools and rounds, which have the same shape.
type poolInsertModel struct {
	No           int64   `db:"no"`
	Name         *string `db:"name"`
	Code         *string `db:"code"`
	TournamentNo *int64  `db:"tournament_no"`
}

type matchInsertModel struct {
	MatchNo              int64   `db:"match_no"`
	MatchNoInTournament  *int64  `db:"match_no_in_tournament"`
	TournamentNo         int64   `db:"tournament_no"`
	TeamANo              int64   `db:"team_a_no"`
	TeamBNo              int64   `db:"team_b_no"`
	WinnerTeamNo         *int64  `db:"winner_team_no"`
	TeamAScore           *int64  `db:"team_a_score"`
	TeamBScore           *int64  `db:"team_b_score"`
	MatchDateUTC         *string `db:"match_date_utc"`
	MatchDateTimeLocal   *string `db:"match_date_time_local"`
	MatchStatus          *int64  `db:"match_status"`
	CurrentSetNo         *int64  `db:"current_set_no"`
	CompetitionSlug      *string `db:"competition_slug"`
	CompetitionShortName *string `db:"competition_short_name"`
	CompetitionFullName  *string `db:"competition_full_name"`
	RoundNo              *int64  `db:"round_no"`
	PoolNo               *int64  `db:"pool_no"`
	City                 *string `db:"city"`
	CountryCode          *string `db:"country_code"`
	Country              *string `db:"country"`
	Gender               *string `db:"gender"`
	GenderText           *string `db:"gender_text"`
	Discipline           *string `db:"discipline"`
	DisciplineText       *string `db:"discipline_text"`
	PinnedCompetition    int     `db:"pinned_competition"`
	IsMatchTBD           int     `db:"is_match_tbd"`
	TournamentType       *int64  `db:"tournament_type"`
	Season               *int64  `db:"season"`
	TicketLink           *string `db:"ticket_link"`
	VolleyBallTVLink     *string `db:"volley_ball_tv_link"`
	YouTubeLink          *string `db:"you_tube_link"`
	MatchCenterURL       *string `db:"match_center_url"`
	WorldRankingURL      *string `db:"world_ranking_url"`
	TeamAReplacementTBD  *string `db:"team_a_replacement_tbd"`
	TeamBReplacementTBD  *string `db:"team_b_replacement_tbd"`
	Phase                *string `db:"phase"`
	Court                *string `db:"court"`
	CourtText            *string `db:"court_text"`
}

type setInsertModel struct {
	MatchNo     int64 `db:"match_no"`
	SetNumber   int64 `db:"set_number"`
	PointsTeamA int64 `db:"points_team_a"`
	PointsTeamB int64 `db:"points_team_b"`
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
