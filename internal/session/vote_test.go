package session

import (
	"math/rand"
	"slices"
	"testing"
)

func testVote() *ActiveVote {
	return &ActiveVote{
		ID:   "v1",
		Kind: VotePitch,
		Options: []VoteOption{
			{ID: "a", Title: "A"},
			{ID: "b", Title: "B"},
			{ID: "c", Title: "C"},
		},
	}
}

func testSession() *Session {
	s := New("TEST01")
	s.Roster = []RosterEntry{
		{PlayerID: "p1", Name: "Mara", Role: RolePlayer, Connected: true},
		{PlayerID: "p2", Name: "Bram", Role: RolePlayer, Connected: true},
		{PlayerID: "scr", Name: "TV", Role: RoleScreen, Connected: true},
	}
	return s
}

func TestRetallyCountsAndFlags(t *testing.T) {
	s := testSession()
	s.Vote = testVote()
	ballots := map[string]string{"p1": "a", "p2": "a"}

	Retally(s, ballots)

	if got := s.Vote.Option("a").Count; got != 2 {
		t.Fatalf("option a: want count 2, got %d", got)
	}
	if got := s.Vote.Option("b").Count; got != 0 {
		t.Fatalf("option b: want count 0, got %d", got)
	}
	if !s.Entry("p1").HasVoted || !s.Entry("p2").HasVoted {
		t.Fatalf("voters should be flagged as voted")
	}
	if s.Entry("scr").HasVoted {
		t.Fatalf("screen never voted")
	}
}

func TestAllConnectedVoted(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Session)
		ballots map[string]string
		want    bool
	}{
		{
			name:    "all voted",
			mutate:  func(s *Session) {},
			ballots: map[string]string{"p1": "a", "p2": "b"},
			want:    true,
		},
		{
			name:    "one missing",
			mutate:  func(s *Session) {},
			ballots: map[string]string{"p1": "a"},
			want:    false,
		},
		{
			name:    "missing voter disconnected",
			mutate:  func(s *Session) { s.Entry("p2").Connected = false },
			ballots: map[string]string{"p1": "a"},
			want:    true,
		},
		{
			name:    "no connected players",
			mutate:  func(s *Session) { s.Entry("p1").Connected = false; s.Entry("p2").Connected = false },
			ballots: map[string]string{},
			want:    false,
		},
		{
			name:    "screen connection is irrelevant",
			mutate:  func(s *Session) { s.Entry("scr").Connected = false },
			ballots: map[string]string{"p1": "a", "p2": "b"},
			want:    true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := testSession()
			s.Vote = testVote()
			tc.mutate(s)
			if got := AllConnectedVoted(s, tc.ballots); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestResolveSingleWinner(t *testing.T) {
	v := testVote()
	v.Options[1].Count = 2
	v.Options[0].Count = 1

	rng := rand.New(rand.NewSource(1))
	res := Resolve(v, false, rng)

	if res.WinnerID != "b" {
		t.Fatalf("want winner b, got %s", res.WinnerID)
	}
	if res.TieBreakApplied || len(res.TiedOptionIDs) != 0 {
		t.Fatalf("no tie-break expected, got %+v", res)
	}
	if res.TimeoutTriggered {
		t.Fatalf("timeout flag should be false")
	}
}

func TestResolveTieBreak(t *testing.T) {
	// Run many times: the winner must always be one of the tied pair
	// and the tie must always be recorded.
	for i := 0; i < 100; i++ {
		v := testVote()
		v.Options[0].Count = 2
		v.Options[2].Count = 2

		rng := rand.New(rand.NewSource(int64(i)))
		res := Resolve(v, true, rng)

		if !res.TieBreakApplied {
			t.Fatalf("tie-break not recorded: %+v", res)
		}
		if !slices.Equal(res.TiedOptionIDs, []string{"a", "c"}) {
			t.Fatalf("tied ids: want [a c], got %v", res.TiedOptionIDs)
		}
		if res.WinnerID != "a" && res.WinnerID != "c" {
			t.Fatalf("winner %s not in tied set", res.WinnerID)
		}
		if !res.TimeoutTriggered {
			t.Fatalf("timeout flag lost")
		}
	}
}

func TestResolveZeroBallotsTiesEveryOption(t *testing.T) {
	v := testVote()
	rng := rand.New(rand.NewSource(7))
	res := Resolve(v, true, rng)

	if !res.TieBreakApplied || len(res.TiedOptionIDs) != 3 {
		t.Fatalf("all options should tie at zero: %+v", res)
	}
}
