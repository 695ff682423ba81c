package tournament

import "context"

// Writer describes tournament persistence needs from the loader.
type Writer interface {
	UpsertTournaments(ctx context.Context, items []Tournament) error
}
