package calc

import (
	"sort"

	"github.com/nao1215/golfcard/internal/config"
	"github.com/nao1215/golfcard/internal/model"
)

// countingScores is the number of best net scores that make a team score.
const countingScores = 2

// WeeklyStandings ranks teams for one week.
// Complete teams come first, then teams with a single score, then teams
// without scores; within each group lower scores rank higher.
// Players are matched to rosters by name, ignoring case. Results of players
// on no roster are ignored.
func WeeklyStandings(teams []config.Team, results []model.NetResult) []model.TeamStanding {
	standings := make([]model.TeamStanding, 0, len(teams))
	for _, team := range teams {
		var scores []model.NetResult
		for _, r := range results {
			if team.HasPlayer(r.Name) {
				scores = append(scores, r)
			}
		}
		sort.SliceStable(scores, func(i, j int) bool {
			return scores[i].NetScore < scores[j].NetScore
		})

		top := scores
		if len(top) > countingScores {
			top = top[:countingScores]
		}

		standing := model.TeamStanding{
			TeamName:    team.Name,
			TopScores:   top,
			PlayerCount: len(scores),
			Complete:    len(scores) >= countingScores,
		}
		if len(top) > 0 {
			sum := 0.0
			for _, s := range top {
				sum += s.NetScore
			}
			standing.Score = model.FloatPtr(CeilHundredths(sum))
		}
		standings = append(standings, standing)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if (a.Score == nil) != (b.Score == nil) {
			return a.Score != nil
		}
		if a.Complete != b.Complete {
			return a.Complete
		}
		if a.Score == nil {
			return false
		}
		return *a.Score < *b.Score
	})
	return standings
}

// CumulativeStandings totals weekly team scores across weeks.
// Partial weekly scores count toward the total. Teams are ordered by total,
// lowest first, with teams that never scored last.
func CumulativeStandings(teams []config.Team, resultsByWeek map[int][]model.NetResult) []model.CumulativeStanding {
	weeks := make([]int, 0, len(resultsByWeek))
	for w := range resultsByWeek {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	totals := make(map[string]*model.CumulativeStanding, len(teams))
	order := make([]string, 0, len(teams))
	for _, team := range teams {
		if _, dup := totals[team.Name]; dup {
			continue
		}
		totals[team.Name] = &model.CumulativeStanding{TeamName: team.Name}
		order = append(order, team.Name)
	}

	for _, week := range weeks {
		for _, s := range WeeklyStandings(teams, resultsByWeek[week]) {
			if s.Score == nil {
				continue
			}
			c := totals[s.TeamName]
			c.TotalScore += *s.Score
			c.WeeksPlayed++
			c.WeeklyScores = append(c.WeeklyScores, model.WeeklyTeamScore{
				Week:     week,
				Score:    *s.Score,
				Complete: s.Complete,
			})
		}
	}

	standings := make([]model.CumulativeStanding, 0, len(order))
	for _, name := range order {
		c := totals[name]
		c.TotalScore = CeilHundredths(c.TotalScore)
		if c.WeeksPlayed > 0 {
			c.AverageScore = model.FloatPtr(CeilHundredths(c.TotalScore / float64(c.WeeksPlayed)))
		}
		standings = append(standings, *c)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if (a.WeeksPlayed == 0) != (b.WeeksPlayed == 0) {
			return a.WeeksPlayed > 0
		}
		return a.TotalScore < b.TotalScore
	})
	return standings
}
