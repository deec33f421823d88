package calc

import (
	"testing"

	"github.com/nao1215/golfcard/internal/config"
	"github.com/nao1215/golfcard/internal/model"
)

var leagueTeams = []config.Team{
	{Name: "Eagles", Players: []string{"Beachy", "FirstOrLast", "Cdubs21"}},
	{Name: "Birdies", Players: []string{"Pinky"}},
	{Name: "Bogeys", Players: []string{"Nobody"}},
	{Name: "Albatross", Players: []string{"Ace", "Deuce"}},
}

func net(name string, score float64) model.NetResult {
	return model.NetResult{Name: name, NetScore: score}
}

func TestWeeklyStandings(t *testing.T) {
	t.Parallel()

	results := []model.NetResult{
		net("beachy", 36.8),
		net("FirstOrLast", 34.85),
		net("Cdubs21", 34.9),
		net("Pinky", 30.0),
		net("Ace", 40.0),
		net("Deuce", 40.0),
		net("Stranger", 20.0),
	}
	standings := WeeklyStandings(leagueTeams, results)

	order := []string{"Eagles", "Albatross", "Birdies", "Bogeys"}
	if len(standings) != len(order) {
		t.Fatalf("expected %d standings, got %+v", len(order), standings)
	}
	for i, name := range order {
		if standings[i].TeamName != name {
			t.Errorf("position %d = %s, want %s", i, standings[i].TeamName, name)
		}
	}

	eagles := standings[0]
	if eagles.Score == nil || *eagles.Score != 69.75 {
		t.Errorf("expected Eagles 69.75, got %v", eagles.Score)
	}
	if eagles.PlayerCount != 3 || !eagles.Complete || len(eagles.TopScores) != 2 {
		t.Errorf("unexpected Eagles standing %+v", eagles)
	}
	if eagles.TopScores[0].Name != "FirstOrLast" || eagles.TopScores[1].Name != "Cdubs21" {
		t.Errorf("expected best two first, got %+v", eagles.TopScores)
	}

	birdies := standings[2]
	if birdies.Complete || birdies.Score == nil || *birdies.Score != 30.0 {
		t.Errorf("expected partial Birdies 30, got %+v", birdies)
	}

	if standings[3].Score != nil || standings[3].PlayerCount != 0 {
		t.Errorf("expected Bogeys without score, got %+v", standings[3])
	}
}

func TestWeeklyStandingsNoTeams(t *testing.T) {
	t.Parallel()

	if got := WeeklyStandings(nil, []model.NetResult{net("A", 1)}); len(got) != 0 {
		t.Errorf("expected no standings, got %+v", got)
	}
}

func TestCumulativeStandings(t *testing.T) {
	t.Parallel()

	byWeek := map[int][]model.NetResult{
		2: {net("Beachy", 36.0), net("FirstOrLast", 35.0), net("Pinky", 33.0)},
		1: {net("Beachy", 36.8), net("Cdubs21", 34.9), net("Pinky", 31.0)},
	}
	standings := CumulativeStandings(leagueTeams, byWeek)

	order := []string{"Birdies", "Eagles", "Bogeys", "Albatross"}
	for i, name := range order {
		if standings[i].TeamName != name {
			t.Errorf("position %d = %s, want %s", i, standings[i].TeamName, name)
		}
	}

	birdies := standings[0]
	if birdies.TotalScore != 64 || birdies.WeeksPlayed != 2 || *birdies.AverageScore != 32 {
		t.Errorf("unexpected Birdies %+v", birdies)
	}
	if len(birdies.WeeklyScores) != 2 || birdies.WeeklyScores[0].Week != 1 || birdies.WeeklyScores[0].Complete {
		t.Errorf("expected partial week 1 first, got %+v", birdies.WeeklyScores)
	}

	eagles := standings[1]
	if eagles.TotalScore != 142.7 || eagles.WeeksPlayed != 2 {
		t.Errorf("unexpected Eagles %+v", eagles)
	}

	if standings[2].AverageScore != nil || standings[2].WeeksPlayed != 0 {
		t.Errorf("expected Bogeys without weeks, got %+v", standings[2])
	}
}
