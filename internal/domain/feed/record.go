package feed

import (
	"strconv"
	"strings"
)

// Competition is one entry of the yearly competitions listing.
type Competition struct {
	MenTournaments      OptString `json:"menTournaments"`
	WomenTournaments    OptString `json:"womenTournaments"`
	StartDate           OptString `json:"startDate"`
	EndDate             OptString `json:"endDate"`
	CompetitionFullName OptString `json:"competitionFullName"`
}

// Covers reports whether the competition lists tournamentNo as its men's or
// women's tournament.
func (c Competition) Covers(tournamentNo int64) bool {
	want := strconv.FormatInt(tournamentNo, 10)
	return strings.TrimSpace(c.MenTournaments.OrEmpty()) == want ||
		strings.TrimSpace(c.WomenTournaments.OrEmpty()) == want
}

type CompetitionList struct {
	Competitions []Competition `json:"competitions"`
}

// Pool is the pool summary embedded in a match.
type Pool struct {
	No   OptInt    `json:"no"`
	Name OptString `json:"name"`
	Code OptString `json:"code"`
}

// Set is one embedded set score. Missing points mean 0.
type Set struct {
	No          OptInt `json:"no"`
	PointsTeamA OptInt `json:"pointsTeamA"`
	PointsTeamB OptInt `json:"pointsTeamB"`
}

// Played reports whether either side scored in the set.
func (s Set) Played() bool {
	return s.PointsTeamA.OrZero() > 0 || s.PointsTeamB.OrZero() > 0
}

// Match is one match record of a range response. Booleans default to false,
// every other field to null.
type Match struct {
	No                   OptInt    `json:"matchNo"`
	NoInTournament       OptInt    `json:"matchNoInTournament"`
	TournamentNo         OptInt    `json:"tournamentNo"`
	TeamANo              OptInt    `json:"teamANo"`
	TeamBNo              OptInt    `json:"teamBNo"`
	WinnerTeamNo         OptInt    `json:"winnerTeamNo"`
	TeamAScore           OptInt    `json:"teamAScore"`
	TeamBScore           OptInt    `json:"teamBScore"`
	MatchDateUTC         OptString `json:"matchDateUtc"`
	MatchDateTimeLocal   OptString `json:"matchDateTimeLocal"`
	MatchStatus          OptInt    `json:"matchStatus"`
	CurrentSetNo         OptInt    `json:"currentSetNo"`
	CompetitionSlug      OptString `json:"competitionSlug"`
	CompetitionShortName OptString `json:"competitionShortName"`
	CompetitionFullName  OptString `json:"competitionFullName"`
	RoundNo              OptInt    `json:"roundNo"`
	RoundName            OptString `json:"roundName"`
	RoundCode            OptString `json:"roundCode"`
	Pool                 *Pool     `json:"pool"`
	City                 OptString `json:"city"`
	CountryCode          OptString `json:"countryCode"`
	Country              OptString `json:"country"`
	Gender               OptString `json:"gender"`
	GenderText           OptString `json:"genderText"`
	Discipline           OptString `json:"discipline"`
	DisciplineText       OptString `json:"disciplineText"`
	PinnedCompetition    OptBool   `json:"pinnedCompetition"`
	IsMatchTBD           OptBool   `json:"isMatchTBD"`
	TournamentType       OptInt    `json:"tournamentType"`
	Season               OptInt    `json:"season"`
	TicketLink           OptString `json:"ticketLink"`
	VolleyBallTVLink     OptString `json:"volleyBallTvLink"`
	YouTubeLink          OptString `json:"youTubeLink"`
	MatchCenterURL       OptString `json:"matchCenterUrl"`
	WorldRankingURL      OptString `json:"worldRankingUrl"`
	TeamAReplacementTBD  OptString `json:"teamAReplacementTBD"`
	TeamBReplacementTBD  OptString `json:"teamBReplacementTBD"`
	Phase                OptString `json:"phase"`
	Court                OptString `json:"court"`
	CourtText            OptString `json:"courtText"`
	Sets                 []Set     `json:"sets"`
}

// Team is one entry of allTeams. IsClub defaults to false.
type Team struct {
	No             OptInt    `json:"no"`
	Code           OptString `json:"code"`
	Name           OptString `json:"name"`
	Country        OptString `json:"country"`
	TranslatedName OptString `json:"translatedName"`
	Img            OptString `json:"img"`
	ImgSquared     OptString `json:"imgSquared"`
	AltText        OptString `json:"altText"`
	Discipline     OptString `json:"discipline"`
	IsClub         OptBool   `json:"isClub"`
	TournamentCode OptString `json:"tournamentCode"`
}

// Tournament is one entry of allTournaments.
type Tournament struct {
	No                   OptInt    `json:"no"`
	Name                 OptString `json:"name"`
	StartDate            OptString `json:"startDate"`
	EndDate              OptString `json:"endDate"`
	Discipline           OptString `json:"discipline"`
	DisciplineText       OptString `json:"disciplineText"`
	City                 OptString `json:"city"`
	Country              OptString `json:"country"`
	CountryName          OptString `json:"countryName"`
	Gender               OptString `json:"gender"`
	GenderText           OptString `json:"genderText"`
	CompetitionShortName OptString `json:"competitionShortName"`
	CompetitionFullName  OptString `json:"competitionFullName"`
	CompetitionSlug      OptString `json:"competitionSlug"`
	Logo                 OptString `json:"logo"`
	LogoSquare           OptString `json:"logoSquare"`
	LogoURL              OptString `json:"logoUrl"`
	TicketsURL           OptString `json:"ticketsUrl"`
	VolleyBallTVLink     OptString `json:"volleyBallTvLink"`
	YouTubeLink          OptString `json:"youTubeLink"`
	StoreLink            OptString `json:"storeLink"`
	URL                  OptString `json:"url"`
	SubCompetitionType   OptString `json:"subCompetitionType"`
}

// Bundle is the merged result of one or more range responses and the shape of
// the intermediate JSON artifact.
type Bundle struct {
	Matches     []Match      `json:"matches"`
	Teams       []Team       `json:"allTeams"`
	Tournaments []Tournament `json:"allTournaments"`
}

func (b Bundle) Empty() bool {
	return len(b.Matches) == 0 && len(b.Teams) == 0 && len(b.Tournaments) == 0
}
