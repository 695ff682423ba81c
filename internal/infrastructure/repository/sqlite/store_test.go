package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/volleyball-stats/internal/domain/feed"
	"github.com/riskibarqy/volleyball-stats/internal/domain/match"
	"github.com/riskibarqy/volleyball-stats/internal/domain/rowset"
	"github.com/riskibarqy/volleyball-stats/internal/domain/team"
	"github.com/riskibarqy/volleyball-stats/internal/domain/tournament"
	"github.com/riskibarqy/volleyball-stats/internal/platform/logging"
	"github.com/riskibarqy/volleyball-stats/internal/usecase"
	"github.com/stretchr/testify/require"
)

const scenarioPayload = `{
	"matches": [{
		"matchNo": 500,
		"tournamentNo": 1520,
		"teamANo": 10,
		"teamBNo": 20,
		"winnerTeamNo": 10,
		"matchDateUtc": "2025-09-12T10:00:00Z",
		"roundNo": 3,
		"roundName": "Preliminary",
		"roundCode": "P",
		"pool": {"no": 7, "name": "Pool A", "code": "A"},
		"pinnedCompetition": true,
		"sets": [
			{"no": 1, "pointsTeamA": 25, "pointsTeamB": 20},
			{"no": 2, "pointsTeamA": 0, "pointsTeamB": 0}
		]
	}],
	"allTeams": [
		{"no": 10, "code": "BRA", "name": "Brazil", "isClub": false},
		{"no": 20, "code": "POL", "name": "Poland"}
	],
	"allTournaments": [{"no": 1520, "name": "World Championship", "startDate": "2025-09-12"}]
}`

type testEnv struct {
	store       *Store
	tournaments *TournamentRepository
	teams       *TeamRepository
	matches     *MatchRepository
	query       *QueryRepository
	loader      *usecase.LoadService
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	store := NewStore(filepath.Join(t.TempDir(), "volleyball_data.db"), logging.NewNop())
	env := testEnv{
		store:       store,
		tournaments: NewTournamentRepository(store),
		teams:       NewTeamRepository(store),
		matches:     NewMatchRepository(store),
		query:       NewQueryRepository(store),
	}
	env.loader = usecase.NewLoadService(store, env.tournaments, env.teams, env.matches, logging.NewNop())
	return env
}

func scenarioBundle(t *testing.T) feed.Bundle {
	t.Helper()

	var bundle feed.Bundle
	require.NoError(t, sonic.ConfigStd.UnmarshalFromString(scenarioPayload, &bundle))
	return bundle
}

func tableCounts(t *testing.T, store *Store) map[string]int64 {
	t.Helper()

	out := make(map[string]int64)
	for _, table := range []string{"tournaments", "teams", "pools", "rounds", "matches", "sets"} {
		count, err := store.Count(context.Background(), table)
		require.NoError(t, err)
		out[table] = count
	}
	return out
}

func strPtr(value string) *string {
	return &value
}

func TestStore_EnsureSchema_IsRepeatable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)

	require.NoError(t, env.store.EnsureSchema(ctx))
	require.NoError(t, env.store.EnsureSchema(ctx))
	require.True(t, env.store.Exists())

	tables, err := env.query.Select(ctx, `SELECT name FROM sqlite_master
		WHERE type = 'table' AND name IN ('tournaments', 'teams', 'pools', 'rounds', 'matches', 'sets')
		ORDER BY name`)
	require.NoError(t, err)
	require.Equal(t, 6, tables.Len())

	indexes, err := env.query.Select(ctx, "SELECT COUNT(1) FROM sqlite_master WHERE type = 'index' AND name LIKE 'idx_%'")
	require.NoError(t, err)
	require.Equal(t, int64(12), indexes.Rows[0][0])
}

func TestConvert_EndToEndScenario(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)

	summary, err := env.loader.Convert(ctx, scenarioBundle(t), usecase.ConvertOptions{Destructive: true})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Counts[usecase.KindSets])

	require.Equal(t, map[string]int64{
		"tournaments": 1,
		"teams":       2,
		"pools":       1,
		"rounds":      1,
		"matches":     1,
		"sets":        1,
	}, tableCounts(t, env.store))

	require.Equal(t, map[usecase.EntityKind]int64{
		usecase.KindTournaments: 1,
		usecase.KindTeams:       2,
		usecase.KindPools:       1,
		usecase.KindRounds:      1,
		usecase.KindMatches:     1,
		usecase.KindSets:        1,
	}, summary.Stored)

	result, err := env.query.Select(ctx, "SELECT pool_no, round_no, pinned_competition, is_match_tbd FROM matches WHERE match_no = 500")
	require.NoError(t, err)
	require.Equal(t, []string{"pool_no", "round_no", "pinned_competition", "is_match_tbd"}, result.Columns)
	require.Equal(t, []any{int64(7), int64(3), int64(1), int64(0)}, result.Rows[0])
}

func TestConvert_ReloadIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	bundle := scenarioBundle(t)

	_, err := env.loader.Convert(ctx, bundle, usecase.ConvertOptions{Destructive: true})
	require.NoError(t, err)
	first := tableCounts(t, env.store)
	firstSets, err := env.query.Select(ctx, "SELECT match_no, set_number, points_team_a, points_team_b FROM sets ORDER BY id")
	require.NoError(t, err)

	_, err = env.loader.Convert(ctx, bundle, usecase.ConvertOptions{})
	require.NoError(t, err)
	require.Equal(t, first, tableCounts(t, env.store))
	secondSets, err := env.query.Select(ctx, "SELECT match_no, set_number, points_team_a, points_team_b FROM sets ORDER BY id")
	require.NoError(t, err)
	require.Equal(t, firstSets.Rows, secondSets.Rows)

	_, err = env.loader.Convert(ctx, bundle, usecase.ConvertOptions{Destructive: true})
	require.NoError(t, err)
	require.Equal(t, first, tableCounts(t, env.store))
}

func TestMatchRepository_UpsertMatches_MissingTeamRollsBack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	require.NoError(t, env.store.EnsureSchema(ctx))

	require.NoError(t, env.tournaments.UpsertTournaments(ctx, []tournament.Tournament{{No: 1520, Name: strPtr("World Championship")}}))
	require.NoError(t, env.teams.UpsertTeams(ctx, []team.Team{
		{No: 10, Code: strPtr("BRA"), Name: strPtr("Brazil")},
		{No: 20, Code: strPtr("POL"), Name: strPtr("Poland")},
	}))

	err := env.matches.UpsertMatches(ctx, []match.Match{
		{MatchNo: 500, TournamentNo: 1520, TeamANo: 10, TeamBNo: 20, MatchDateUTC: strPtr("2025-09-12T10:00:00Z")},
		{MatchNo: 501, TournamentNo: 1520, TeamANo: 10, TeamBNo: 99, MatchDateUTC: strPtr("2025-09-13T10:00:00Z")},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "match no=501")
	require.Contains(t, err.Error(), "FOREIGN KEY constraint failed")

	count, err := env.store.Count(ctx, "matches")
	require.NoError(t, err)
	require.Zero(t, count, "the valid match must not be committed when another row fails")
}

func TestMatchRepository_UpsertSets_BeforeMatchFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	require.NoError(t, env.store.EnsureSchema(ctx))

	err := env.matches.UpsertSets(ctx, []match.Set{{MatchNo: 500, SetNumber: 1, PointsTeamA: 25, PointsTeamB: 20}})
	require.Error(t, err)

	count, err := env.store.Count(ctx, "sets")
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestMatchRepository_ReloadKeepsSets(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.loader.Convert(ctx, scenarioBundle(t), usecase.ConvertOptions{Destructive: true})
	require.NoError(t, err)

	winner := int64(20)
	score := int64(3)
	require.NoError(t, env.matches.UpsertMatches(ctx, []match.Match{{
		MatchNo:      500,
		TournamentNo: 1520,
		TeamANo:      10,
		TeamBNo:      20,
		WinnerTeamNo: &winner,
		TeamBScore:   &score,
		MatchDateUTC: strPtr("2025-09-12T10:00:00Z"),
	}}))

	sets, err := env.store.Count(ctx, "sets")
	require.NoError(t, err)
	require.Equal(t, int64(1), sets)

	result, err := env.query.Select(ctx, "SELECT winner_team_no, team_b_score, pool_no FROM matches WHERE match_no = 500")
	require.NoError(t, err)
	require.Equal(t, []any{int64(20), int64(3), nil}, result.Rows[0])
}

func TestQueryRepository_Select(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.loader.Convert(ctx, scenarioBundle(t), usecase.ConvertOptions{Destructive: true})
	require.NoError(t, err)

	result, err := env.query.Select(ctx, "SELECT * FROM teams ORDER BY no")
	require.NoError(t, err)
	require.Equal(t, 2, result.Len())
	require.Equal(t, "no", result.Columns[0])
	require.Equal(t, "Brazil", result.Rows[0][2])

	_, err = env.query.Select(ctx, "DELETE FROM teams")
	require.Error(t, err)

	teams, err := env.store.Count(ctx, "teams")
	require.NoError(t, err)
	require.Equal(t, int64(2), teams)
}

func TestQueryRepository_MissingStore(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, err := env.query.Select(context.Background(), "SELECT 1")
	require.True(t, errors.Is(err, rowset.ErrStoreMissing), "unexpected error: %v", err)

	_, statErr := os.Stat(env.store.Path())
	require.True(t, errors.Is(statErr, os.ErrNotExist), "query must not create the store file")
}

func TestQueryService_GuardEndToEnd(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.loader.Convert(ctx, scenarioBundle(t), usecase.ConvertOptions{Destructive: true})
	require.NoError(t, err)

	service := usecase.NewQueryService(env.query)
	_, err = service.Run(ctx, "DROP TABLE matches")
	require.ErrorIs(t, err, usecase.ErrReadOnlyQuery)

	result, err := service.Run(ctx, "SELECT * FROM matches")
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())
}

func TestQueryRepository_StackedStatementsCannotWrite(t *testing.T) {
	t.Parallel()

	const stacked = "SELECT 1; PRAGMA query_only = OFF; DELETE FROM sets"

	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.loader.Convert(ctx, scenarioBundle(t), usecase.ConvertOptions{Destructive: true})
	require.NoError(t, err)

	service := usecase.NewQueryService(env.query)
	_, err = service.Run(ctx, stacked)
	require.ErrorIs(t, err, usecase.ErrMultipleStatements)

	_, err = env.query.Select(ctx, stacked)
	require.Error(t, err)

	sets, err := env.store.Count(ctx, "sets")
	require.NoError(t, err)
	require.Equal(t, int64(1), sets)
}

func TestStore_ResetAndMigrateDown(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	require.NoError(t, env.store.EnsureSchema(ctx))

	m, err := env.store.NewMigrator(ctx)
	require.NoError(t, err)
	version, dirty, err := m.Version()
	require.NoError(t, err)
	require.Equal(t, uint(1), version)
	require.False(t, dirty)
	require.NoError(t, m.Down())
	closeMigrator(ctx, m, logging.NewNop())

	_, err = env.store.Count(ctx, "matches")
	require.Error(t, err)

	require.NoError(t, env.store.Reset(ctx))
	require.False(t, env.store.Exists())
	require.NoError(t, env.store.Reset(ctx))
}
