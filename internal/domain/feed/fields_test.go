package feed

import (
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestOptInt_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  OptInt
	}{
		{name: "number", input: `12`, want: IntOf(12)},
		{name: "numeric string", input: `"1520"`, want: IntOf(1520)},
		{name: "whole float", input: `3.0`, want: IntOf(3)},
		{name: "fractional float", input: `3.5`, want: OptInt{}},
		{name: "null", input: `null`, want: OptInt{}},
		{name: "empty string", input: `""`, want: OptInt{}},
		{name: "garbage string", input: `"abc"`, want: OptInt{}},
		{name: "object", input: `{"a":1}`, want: OptInt{}},
		{name: "bool true", input: `true`, want: IntOf(1)},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var got OptInt
			if err := got.UnmarshalJSON([]byte(tc.input)); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("unexpected value for %s: got=%+v want=%+v", tc.input, got, tc.want)
			}
		})
	}
}

func TestOptString_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var payload struct {
		A OptString `json:"a"`
		B OptString `json:"b"`
		C OptString `json:"c"`
		D OptString `json:"d"`
	}
	if err := sonic.Unmarshal([]byte(`{"a":"Rio","b":1520,"c":null}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.A != StringOf("Rio") {
		t.Fatalf("unexpected a: %+v", payload.A)
	}
	if payload.B != StringOf("1520") {
		t.Fatalf("expected number kept as literal text, got %+v", payload.B)
	}
	if payload.C.Valid || payload.D.Valid {
		t.Fatalf("expected null and missing fields to be absent: c=%+v d=%+v", payload.C, payload.D)
	}
	if payload.C.Ptr() != nil {
		t.Fatalf("expected nil pointer for absent field")
	}
}

func TestOptBool_Flag(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		`true`:    1,
		`false`:   0,
		`1`:       1,
		`0`:       0,
		`"true"`:  1,
		`"false"`: 0,
		`"yes"`:   1,
		`""`:      0,
		`null`:    0,
	}
	for input, want := range cases {
		var got OptBool
		if err := got.UnmarshalJSON([]byte(input)); err != nil {
			t.Fatalf("unmarshal %s: %v", input, err)
		}
		if got.Flag() != want {
			t.Fatalf("unexpected flag for %s: got=%d want=%d", input, got.Flag(), want)
		}
	}
}

func TestBundle_DecodeAndEncode(t *testing.T) {
	t.Parallel()

	raw := `{
		"matches": [{"matchNo": 500, "tournamentNo": "1520", "teamANo": 10, "teamBNo": 20,
			"pool": {"no": 7, "name": "Pool A", "code": "A"},
			"isMatchTBD": false,
			"sets": [{"no": 1, "pointsTeamA": 25, "pointsTeamB": 20}, {"no": 2}]}],
		"allTeams": [{"no": 10, "code": "BRA", "name": "Brazil", "isClub": 0}],
		"allTournaments": [{"no": 1520, "name": "World Championship"}]
	}`

	var bundle Bundle
	if err := sonic.Unmarshal([]byte(raw), &bundle); err != nil {
		t.Fatalf("decode bundle: %v", err)
	}
	if len(bundle.Matches) != 1 || len(bundle.Teams) != 1 || len(bundle.Tournaments) != 1 {
		t.Fatalf("unexpected bundle sizes: %+v", bundle)
	}
	match := bundle.Matches[0]
	if match.TournamentNo.OrZero() != 1520 || match.Pool == nil || match.Pool.No.OrZero() != 7 {
		t.Fatalf("unexpected match: %+v", match)
	}
	if !match.Sets[0].Played() || match.Sets[1].Played() {
		t.Fatalf("unexpected set played flags: %+v", match.Sets)
	}

	encoded, err := sonic.Marshal(bundle)
	if err != nil {
		t.Fatalf("encode bundle: %v", err)
	}
	var again Bundle
	if err := sonic.Unmarshal(encoded, &again); err != nil {
		t.Fatalf("decode encoded bundle: %v", err)
	}
	if again.Matches[0].No != IntOf(500) || again.Matches[0].WinnerTeamNo.Valid {
		t.Fatalf("unexpected re-decoded match: %+v", again.Matches[0])
	}
}

func TestCompetition_Covers(t *testing.T) {
	t.Parallel()

	competition := Competition{MenTournaments: StringOf("1520"), WomenTournaments: StringOf("1521")}
	if !competition.Covers(1520) || !competition.Covers(1521) {
		t.Fatalf("expected competition to cover both tournaments")
	}
	if competition.Covers(152) {
		t.Fatalf("expected exact id comparison")
	}
}
