package tournament

import "fmt"

// Tournament is a single VolleyballWorld tournament keyed by its remote number.
type Tournament struct {
	No                   int64
	Name                 *string
	StartDate            *string
	EndDate              *string
	Discipline           *string
	DisciplineText       *string
	City                 *string
	Country              *string
	CountryName          *string
	Gender               *string
	GenderText           *string
	CompetitionShortName *string
	CompetitionFullName  *string
	CompetitionSlug      *string
	Logo                 *string
	LogoSquare           *string
	LogoURL              *string
	TicketsURL           *string
	VolleyBallTVLink     *string
	YouTubeLink          *string
	StoreLink            *string
	URL                  *string
	SubCompetitionType   *string
}

func (t Tournament) Validate() error {
	if t.No <= 0 {
		return fmt.Errorf("tournament no is required")
	}

	return nil
}
