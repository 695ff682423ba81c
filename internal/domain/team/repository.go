package team

import "context"

// Writer describes team persistence needs from the loader.
type Writer interface {
	UpsertTeams(ctx context.Context, items []Team) error
}
