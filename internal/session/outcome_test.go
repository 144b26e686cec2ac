package session

import (
	"testing"
	"time"
)

func testCheck() *OutcomeCheck {
	return &OutcomeCheck{
		ID:     "c1",
		Source: CheckSourceAction,
		Targets: []OutcomeTarget{
			{PlayerID: "p1", Name: "Mara"},
			{PlayerID: "p2", Name: "Bram"},
		},
	}
}

func TestCheckAllPlayed(t *testing.T) {
	c := testCheck()
	if c.AllPlayed() {
		t.Fatalf("no cards played yet")
	}
	now := time.Now()
	c.Targets[0].Card = "Triumph"
	c.Targets[0].PlayedAt = &now
	if c.AllPlayed() {
		t.Fatalf("one target still missing")
	}
	c.Targets[1].Card = "Setback"
	c.Targets[1].PlayedAt = &now
	if !c.AllPlayed() {
		t.Fatalf("every target played")
	}
}

func TestCheckRemoveTarget(t *testing.T) {
	c := testCheck()
	if remaining := c.RemoveTarget("p1"); !remaining {
		t.Fatalf("one target should remain")
	}
	if c.Target("p1") != nil {
		t.Fatalf("p1 should be gone")
	}
	if remaining := c.RemoveTarget("p2"); remaining {
		t.Fatalf("no targets should remain")
	}
}

func TestCheckEmptyNeverAllPlayed(t *testing.T) {
	c := testCheck()
	c.RemoveTarget("p1")
	c.RemoveTarget("p2")
	if c.AllPlayed() {
		t.Fatalf("an empty target set must not count as resolved")
	}
}

func TestCardSummary(t *testing.T) {
	c := testCheck()
	c.Targets[0].Card = "Triumph"
	c.Targets[1].Card = "Setback"
	want := "Mara played Triumph; Bram played Setback"
	if got := c.CardSummary(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestAllConnectedReady(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Session)
		want   bool
	}{
		{"nobody ready", func(s *Session) {}, false},
		{
			"all players ready",
			func(s *Session) { s.Entry("p1").Ready = true; s.Entry("p2").Ready = true },
			true,
		},
		{
			"one player not ready",
			func(s *Session) { s.Entry("p1").Ready = true },
			false,
		},
		{
			"unready player disconnected",
			func(s *Session) { s.Entry("p1").Ready = true; s.Entry("p2").Connected = false },
			true,
		},
		{
			"screens never block readiness",
			func(s *Session) { s.Entry("p1").Ready = true; s.Entry("p2").Ready = true; s.Entry("scr").Ready = false },
			true,
		},
		{
			"no connected players at all",
			func(s *Session) {
				s.Entry("p1").Connected = false
				s.Entry("p2").Connected = false
			},
			false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := testSession()
			tc.mutate(s)
			if got := s.AllConnectedReady(); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}
