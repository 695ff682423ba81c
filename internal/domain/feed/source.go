package feed

import (
	"context"

	crerr "github.com/cockroachdb/errors"
)

// ErrTransport marks a feed request that produced no usable payload. Sources
// wrap it around network, status and decode failures.
var ErrTransport = crerr.New("feed transport failure")

// IsTransportError reports whether err came from a failed feed request.
func IsTransportError(err error) bool {
	return crerr.Is(err, ErrTransport)
}

// Source is the remote tournament feed.
type Source interface {
	FetchCompetitions(ctx context.Context, year int) ([]Competition, error)
	FetchRange(ctx context.Context, window Window, tournamentNo int64) (Bundle, error)
}
