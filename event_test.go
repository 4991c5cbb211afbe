package axelrod

import "testing"

func TestEventType_Values(t *testing.T) {
	cases := []struct {
		et   EventType
		want int
	}{
		{EventMatchStarted, 0},
		{EventRoundPlayed, 1},
		{EventMatchScored, 2},
		{EventMatchFailed, 3},
		{EventMatchClosed, 4},
	}
	for _, tc := range cases {
		if int(tc.et) != tc.want {
			t.Errorf("EventType %d: got %d, want %d", tc.want, int(tc.et), tc.want)
		}
	}
}

func TestEventType_String(t *testing.T) {
	cases := map[EventType]string{
		EventMatchStarted: "match_started",
		EventRoundPlayed:  "round_played",
		EventMatchScored:  "match_scored",
		EventMatchFailed:  "match_failed",
		EventMatchClosed:  "match_closed",
		EventType(99):     "unknown",
	}
	for et, want := range cases {
		if got := et.String(); got != want {
			t.Errorf("EventType(%d).String(): got %q, want %q", int(et), got, want)
		}
	}
}

func TestEvent_ZeroValue(t *testing.T) {
	var e Event
	if e.Type != EventMatchStarted {
		t.Errorf("zero Type: got %v, want EventMatchStarted", e.Type)
	}
	if e.Err != nil || e.Round != 0 || e.MatchID != "" {
		t.Errorf("zero Event not empty: %+v", e)
	}
}
