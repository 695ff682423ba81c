package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/volleyball-stats/internal/domain/feed"
	"github.com/riskibarqy/volleyball-stats/internal/domain/match"
	"github.com/riskibarqy/volleyball-stats/internal/domain/team"
	"github.com/riskibarqy/volleyball-stats/internal/domain/tournament"
	"github.com/riskibarqy/volleyball-stats/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type schemaManager interface {
	Reset(ctx context.Context) error
	EnsureSchema(ctx context.Context) error
	Count(ctx context.Context, table string) (int64, error)
}

// LoadService writes normalized batches into the relational store.
type LoadService struct {
	schema      schemaManager
	tournaments tournament.Writer
	teams       team.Writer
	matches     match.Writer
	logger      *logging.Logger
}

func NewLoadService(
	schema schemaManager,
	tournaments tournament.Writer,
	teams team.Writer,
	matches match.Writer,
	logger *logging.Logger,
) *LoadService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LoadService{
		schema:      schema,
		tournaments: tournaments,
		teams:       teams,
		matches:     matches,
		logger:      logger,
	}
}

type ConvertOptions struct {
	// Destructive deletes the store before loading. Otherwise rows are
	// upserted into the existing store.
	Destructive bool
}

// LoadSummary holds the number of records written per entity kind.
type LoadSummary struct {
	Counts map[EntityKind]int
	// Stored is the row count of each table once the load finished. It
	// includes rows kept from earlier loads when the store was not reset.
	Stored map[EntityKind]int64
}

func (s LoadSummary) Total() int {
	total := 0
	for _, count := range s.Counts {
		total += count
	}
	return total
}

// EnsureSchema creates the tables and indexes if they are missing.
func (s *LoadService) EnsureSchema(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LoadService.EnsureSchema")
	defer span.End()

	if err := s.schema.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Load upserts the records of one entity kind. Callers load kinds in
// LoadOrder; a missing referenced row fails the whole call.
func (s *LoadService) Load(ctx context.Context, kind EntityKind, batch Batch) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LoadService.Load")
	defer span.End()
	span.SetAttributes(attribute.String("entity.kind", string(kind)))

	count := batch.Count(kind)
	if count == 0 {
		if _, ok := ParseEntityKind(string(kind)); !ok {
			return 0, fmt.Errorf("%w: unknown entity kind %q", ErrInvalidInput, kind)
		}
		return 0, nil
	}

	var err error
	switch kind {
	case KindTournaments:
		err = s.tournaments.UpsertTournaments(ctx, batch.Tournaments)
	case KindTeams:
		err = s.teams.UpsertTeams(ctx, batch.Teams)
	case KindPools:
		err = s.matches.UpsertPools(ctx, batch.Pools)
	case KindRounds:
		err = s.matches.UpsertRounds(ctx, batch.Rounds)
	case KindMatches:
		err = s.matches.UpsertMatches(ctx, batch.Matches)
	case KindSets:
		err = s.matches.UpsertSets(ctx, batch.Sets)
	}
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", kind, err)
	}

	s.logger.InfoContext(ctx, "entities loaded", "kind", string(kind), "count", count)
	return count, nil
}

// LoadAll loads every kind of batch in LoadOrder and stops at the first error.
func (s *LoadService) LoadAll(ctx context.Context, batch Batch) (LoadSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LoadService.LoadAll")
	defer span.End()

	summary := LoadSummary{Counts: make(map[EntityKind]int, len(LoadOrder))}
	for _, kind := range LoadOrder {
		count, err := s.Load(ctx, kind, batch)
		if err != nil {
			return summary, err
		}
		summary.Counts[kind] = count
	}
	return summary, nil
}

// Convert normalizes bundle and loads it, recreating the store first when
// opts.Destructive is set.
func (s *LoadService) Convert(ctx context.Context, bundle feed.Bundle, opts ConvertOptions) (LoadSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LoadService.Convert")
	defer span.End()
	span.SetAttributes(attribute.Bool("convert.destructive", opts.Destructive))

	if opts.Destructive {
		if err := s.schema.Reset(ctx); err != nil {
			return LoadSummary{}, fmt.Errorf("reset store: %w", err)
		}
		s.logger.InfoContext(ctx, "store removed for destructive refresh")
	}
	if err := s.EnsureSchema(ctx); err != nil {
		return LoadSummary{}, err
	}

	batch := NormalizeBundle(bundle)
	summary, err := s.LoadAll(ctx, batch)
	if err != nil {
		return summary, err
	}
	summary.Stored = s.storedCounts(ctx)

	s.logger.InfoContext(ctx, "conversion completed",
		"destructive", opts.Destructive,
		"tournaments", summary.Counts[KindTournaments],
		"teams", summary.Counts[KindTeams],
		"pools", summary.Counts[KindPools],
		"rounds", summary.Counts[KindRounds],
		"matches", summary.Counts[KindMatches],
		"sets", summary.Counts[KindSets],
	)
	return summary, nil
}

// storedCounts counts the rows of every table. A table that cannot be counted
// is logged and left out; the load itself already succeeded.
func (s *LoadService) storedCounts(ctx context.Context) map[EntityKind]int64 {
	out := make(map[EntityKind]int64, len(LoadOrder))
	for _, kind := range LoadOrder {
		count, err := s.schema.Count(ctx, string(kind))
		if err != nil {
			s.logger.WarnContext(ctx, "count stored rows failed", "kind", string(kind), "error", err)
			continue
		}
		out[kind] = count
	}
	return out
}
