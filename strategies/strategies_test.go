package strategies

import (
	"context"
	"slices"
	"testing"

	"github.com/zoobzio/axelrod"
)

const (
	C = true
	D = false
)

func TestStrategies(t *testing.T) {
	tests := []struct {
		name     string
		f        axelrod.Func
		own, opp []bool
		want     bool
	}{
		{"always-cooperate first", AlwaysCooperate, nil, nil, C},
		{"always-cooperate after defection", AlwaysCooperate, []bool{C}, []bool{D}, C},
		{"always-defect first", AlwaysDefect, nil, nil, D},
		{"always-defect after cooperation", AlwaysDefect, []bool{D}, []bool{C}, D},
		{"tit-for-tat first", TitForTat, nil, nil, C},
		{"tit-for-tat copies defection", TitForTat, []bool{C, C}, []bool{C, D}, D},
		{"tit-for-tat forgives", TitForTat, []bool{C, D}, []bool{D, C}, C},
		{"suspicious first", SuspiciousTitForTat, nil, nil, D},
		{"suspicious copies cooperation", SuspiciousTitForTat, []bool{D}, []bool{C}, C},
		{"alternate first", Alternate, nil, nil, C},
		{"alternate second", Alternate, []bool{C}, []bool{C}, D},
		{"alternate third", Alternate, []bool{C, D}, []bool{D, D}, C},
		{"grudger first", Grudger, nil, nil, C},
		{"grudger holds grudge", Grudger, []bool{C, C, D}, []bool{C, D, C}, D},
		{"grudger keeps cooperating", Grudger, []bool{C, C}, []bool{C, C}, C},
		{"shubik first", Shubik, nil, nil, C},
		{"shubik mirrors cooperation", Shubik, []bool{C}, []bool{C}, C},
		{"shubik punishes once", Shubik, []bool{C, C}, []bool{C, D}, D},
		{"shubik forgives after one", Shubik, []bool{C, C, D}, []bool{C, D, C}, C},
		{"shubik punishes twice after second exploit", Shubik, []bool{C, C, D, C, C}, []bool{C, D, C, C, D}, D},
		{"shubik still punishing", Shubik, []bool{C, C, D, C, C, D}, []bool{C, D, C, C, D, C}, D},
		{"shubik forgives after two", Shubik, []bool{C, C, D, C, C, D, D}, []bool{C, D, C, C, D, C, C}, C},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f(tt.own, tt.opp); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		if _, ok := Lookup(name); !ok {
			t.Errorf("Lookup(%q) failed for a listed name", name)
		}
	}
	if _, ok := Lookup("tit-for-two-tats"); ok {
		t.Error("Lookup should fail for an unknown name")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 7 {
		t.Errorf("got %d names, want 7", len(names))
	}
	if !slices.IsSorted(names) {
		t.Errorf("names not sorted: %v", names)
	}
}

func TestTournament_ClassicThree(t *testing.T) {
	tour, err := axelrod.New(axelrod.WithRounds(10))
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"always-cooperate", "always-defect", "alternate"} {
		f, _ := Lookup(name)
		if _, err := tour.AddCompetitor("axelrod", name, f); err != nil {
			t.Fatal(err)
		}
	}
	if err := tour.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []struct {
		name  string
		score int
	}{
		{"always-defect", 80},
		{"alternate", 45},
		{"always-cooperate", 15},
	}
	ranking := tour.Ranking()
	if len(ranking) != len(want) {
		t.Fatalf("got %d standings", len(ranking))
	}
	for i, w := range want {
		if ranking[i].Name != w.name || ranking[i].Score != w.score || ranking[i].Rank != i+1 {
			t.Errorf("rank %d: got %+v, want %s %d", i+1, ranking[i], w.name, w.score)
		}
	}
}

func TestTournament_TitForTatVersusGrudger(t *testing.T) {
	tour, err := axelrod.New(axelrod.WithRounds(200))
	if err != nil {
		t.Fatal(err)
	}
	tft, _ := tour.AddCompetitor("axelrod", "tit-for-tat", TitForTat)
	g, _ := tour.AddCompetitor("axelrod", "grudger", Grudger)
	if err := tour.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if tft.Score() != 600 || g.Score() != 600 {
		t.Errorf("scores: got %d and %d, want 600 each", tft.Score(), g.Score())
	}
}
