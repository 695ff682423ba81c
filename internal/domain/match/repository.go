package match

import "context"

// Writer describes match persistence needs from the loader. Pools and rounds
// must be written before the matches that reference them, and matches before
// their sets.
type Writer interface {
	UpsertPools(ctx context.Context, items []Pool) error
	UpsertRounds(ctx context.Context, items []Round) error
	UpsertMatches(ctx context.Context, items []Match) error
	UpsertSets(ctx context.Context, items []Set) error
}
