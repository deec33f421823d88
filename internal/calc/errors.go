package calc

import "errors"

var (
	// ErrNoPlayers is returned when there are no records to score.
	ErrNoPlayers = errors.New("no players to score")

	// ErrInvalidHoleCount is returned when the hole count is not 9 or 18.
	ErrInvalidHoleCount = errors.New("invalid number of holes: must be 9 or 18")

	// ErrNoScorablePlayers is returned when no record has both a gross score and a handicap.
	ErrNoScorablePlayers = errors.New("no player has both a gross score and a handicap")
)
