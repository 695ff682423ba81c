package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	ErrMissingCompetitionDates = errors.New("competition has no usable start/end dates")
	ErrNoData                  = errors.New("no data recovered for tournament")
	ErrReadOnlyQuery           = fmt.Errorf("%w: only SELECT queries are permitted", ErrInvalidInput)
	ErrMultipleStatements      = fmt.Errorf("%w: only a single statement is permitted", ErrInvalidInput)
)
