package team

import "fmt"

// Team is a national team or club taking part in a tournament.
type Team struct {
	No             int64
	Code           *string
	Name           *string
	Country        *string
	TranslatedName *string
	Img            *string
	ImgSquared     *string
	AltText        *string
	Discipline     *string
	IsClub         bool
	TournamentCode *string
}

func (t Team) Validate() error {
	if t.No <= 0 {
		return fmt.Errorf("team no is required")
	}

	return nil
}
