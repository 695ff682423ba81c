package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("COUNT(1)").From("sets").ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT COUNT(1) FROM sets" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := Select().From("sets").ToSQL(); err == nil {
		t.Fatalf("expected error without columns")
	}
	if _, _, err := Select("COUNT(1)").ToSQL(); err == nil {
		t.Fatalf("expected error without table")
	}
}

func TestInsertBuilder_OnConflict(t *testing.T) {
	query, args, err := InsertInto("sets").
		Columns("match_no", "set_number", "points_team_a").
		Values(int64(500), int64(1), int64(25)).
		OnConflictDoUpdate([]string{"match_no", "set_number"}, []string{"points_team_a"}).
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO sets (match_no, set_number, points_team_a) VALUES (?1, ?2, ?3) ON CONFLICT (match_no, set_number) DO UPDATE SET points_team_a = excluded.points_team_a"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != int64(25) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_DoNothingAndErrors(t *testing.T) {
	query, _, err := InsertInto("pools").
		Columns("no").
		Values(int64(7)).
		OnConflictDoUpdate([]string{"no"}, nil).
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}
	if query != "INSERT INTO pools (no) VALUES (?1) ON CONFLICT (no) DO NOTHING" {
		t.Fatalf("unexpected query: %s", query)
	}

	if _, _, err := InsertInto("pools").Columns("no", "name").Values(int64(7)).ToSQL(); err == nil {
		t.Fatalf("expected error for mismatched row length")
	}
	if _, _, err := InsertInto("pools").Columns("no").Values(int64(7)).OnConflictDoUpdate(nil, nil).ToSQL(); err == nil {
		t.Fatalf("expected error for empty conflict target")
	}
}

type upsertModel struct {
	No     int64   `db:"no"`
	Name   *string `db:"name"`
	Ignore string  `db:"-"`
	hidden string
}

func TestUpsertModel(t *testing.T) {
	name := "Pool A"
	query, args, err := UpsertModel("pools", upsertModel{No: 7, Name: &name, hidden: "x"}, "no")
	if err != nil {
		t.Fatalf("build upsert query: %v", err)
	}

	wantQuery := "INSERT INTO pools (no, name) VALUES (?1, ?2) ON CONFLICT (no) DO UPDATE SET name = excluded.name"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != int64(7) {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := UpsertModel("pools", upsertModel{No: 7}); err == nil {
		t.Fatalf("expected error without conflict columns")
	}
	if _, _, err := UpsertModel("pools", (*upsertModel)(nil), "no"); err == nil {
		t.Fatalf("expected error for nil model")
	}
}
