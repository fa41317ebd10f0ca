package session

import (
	"testing"

	"gobalance/domain/core"
)

func TestNewConfigKey_Composition(t *testing.T) {
	key := NewConfigKey("BoardA", "strong", "strong")
	if key.String() != "BoardA(strong vs strong)" {
		t.Errorf("unexpected key: %s", key)
	}

	// Whitespace normalizes away.
	trimmed := NewConfigKey(" BoardA ", " strong ", "strong")
	if trimmed != key {
		t.Errorf("expected normalized key %q, got %q", key, trimmed)
	}
}

func TestNewConfigKey_SeatOrderSensitive(t *testing.T) {
	a := NewConfigKey("BoardA", "strong", "light")
	b := NewConfigKey("BoardA", "light", "strong")
	if a == b {
		t.Error("swapping seat strengths must produce a different key")
	}
}

func TestNewRecord_Valid(t *testing.T) {
	key := NewConfigKey("BoardA", "light", "light")
	r, err := NewRecord(key, "run1", 20, 12, 8, 0, 45.5, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.DecisiveGames() != 20 {
		t.Errorf("expected 20 decisive games, got %d", r.DecisiveGames())
	}
}

func TestNewRecord_ZeroGames(t *testing.T) {
	key := NewConfigKey("BoardA", "light", "light")
	if _, err := NewRecord(key, "empty", 0, 0, 0, 0, 0, 0); err != nil {
		t.Errorf("zero-game record is valid, got %v", err)
	}
}

func TestNewRecord_Rejections(t *testing.T) {
	key := NewConfigKey("BoardA", "light", "light")

	cases := []struct {
		name                 string
		total, p1, p2, draws int
		avgMoves, avgTimeMs  float64
	}{
		{"counts do not sum", 10, 3, 3, 3, 10, 10},
		{"negative total", -1, 0, 0, 0, 0, 0},
		{"negative wins", 2, -1, 3, 0, 0, 0},
		{"negative moves", 2, 1, 1, 0, -5, 0},
		{"negative time", 2, 1, 1, 0, 5, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRecord(key, "bad", tc.total, tc.p1, tc.p2, tc.draws, tc.avgMoves, tc.avgTimeMs)
			if err == nil {
				t.Fatal("expected rejection")
			}
			if !core.IsDataIntegrityError(err) {
				t.Errorf("expected data integrity error, got %v", err)
			}
		})
	}

	if _, err := NewRecord("", "bad", 0, 0, 0, 0, 0, 0); !core.IsDataIntegrityError(err) {
		t.Errorf("expected data integrity error for empty key, got %v", err)
	}
}
