package session

import (
	"fmt"
	"strings"

	"gobalance/domain/core"
)

// ConfigKey identifies one self-play configuration: a board layout plus
// both agents' strength labels. The key is order-sensitive by seat
// (player 1's strength first) because seat assignment matters for the
// downstream bias analysis.
type ConfigKey string

// NewConfigKey composes a normalized configuration key from a board
// layout identifier and the two agents' strength labels.
func NewConfigKey(board, p1Strength, p2Strength string) ConfigKey {
	board = strings.TrimSpace(board)
	p1Strength = strings.TrimSpace(p1Strength)
	p2Strength = strings.TrimSpace(p2Strength)
	return ConfigKey(fmt.Sprintf("%s(%s vs %s)", board, p1Strength, p2Strength))
}

// String returns the string representation
func (k ConfigKey) String() string {
	return string(k)
}

// IsEmpty checks if the key is empty
func (k ConfigKey) IsEmpty() bool {
	return strings.TrimSpace(string(k)) == ""
}

// Record is one self-play run's summary. Records are created through
// NewRecord at the loader boundary; a Record that exists is valid, the
// engine never re-validates field presence internally.
type Record struct {
	ConfigKey  ConfigKey     `json:"config_key"`
	Source     core.SourceID `json:"source,omitempty"`
	TotalGames int           `json:"total_games"`
	P1Wins     int           `json:"p1_wins"`
	P2Wins     int           `json:"p2_wins"`
	Draws      int           `json:"draws"`
	AvgMoves   float64       `json:"avg_moves"`
	AvgTimeMs  float64       `json:"avg_time_ms"`
}

// NewRecord validates and constructs a session record. Malformed input
// (negative counts, counts not summing to the game total, negative
// averages, empty key) is rejected with a data integrity error.
func NewRecord(key ConfigKey, source core.SourceID, totalGames, p1Wins, p2Wins, draws int, avgMoves, avgTimeMs float64) (Record, error) {
	if key.IsEmpty() {
		return Record{}, core.ErrEmptyConfigKey
	}
	if totalGames < 0 || p1Wins < 0 || p2Wins < 0 || draws < 0 {
		return Record{}, fmt.Errorf("%w (%s)", core.ErrNegativeCount, key)
	}
	if p1Wins+p2Wins+draws != totalGames {
		return Record{}, core.NewCountMismatchError(key.String(), totalGames, p1Wins, p2Wins, draws)
	}
	if avgMoves < 0 || avgTimeMs < 0 {
		return Record{}, fmt.Errorf("%w (%s)", core.ErrNegativeAverage, key)
	}

	return Record{
		ConfigKey:  key,
		Source:     source,
		TotalGames: totalGames,
		P1Wins:     p1Wins,
		P2Wins:     p2Wins,
		Draws:      draws,
		AvgMoves:   avgMoves,
		AvgTimeMs:  avgTimeMs,
	}, nil
}

// DecisiveGames returns the number of games with a winner.
func (r Record) DecisiveGames() int {
	return r.P1Wins + r.P2Wins
}

// GameResult is one game's outcome within a session, used for
// per-game distribution analysis when the loader supplies it.
type GameResult struct {
	Winner string  `json:"winner,omitempty"` // "Player1", "Player2", or empty for a draw
	Moves  int     `json:"moves"`
	TimeMs float64 `json:"time_ms"`
}
