package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gobalance/domain/core"
	"gobalance/domain/session"
)

// resultsPattern matches the files the self-play runner writes.
const resultsPattern = "selfplay_results_*.json"

// ResultsFile is the persisted shape of one self-play run's summary.
type ResultsFile struct {
	BoardSetup  string               `json:"board_setup"`
	AI1Strength string               `json:"ai1_strength"`
	AI2Strength string               `json:"ai2_strength"`
	TotalGames  int                  `json:"total_games"`
	P1Wins      int                  `json:"p1_wins"`
	P2Wins      int                  `json:"p2_wins"`
	Draws       int                  `json:"draws"`
	AvgMoves    float64              `json:"avg_moves"`
	AvgTimeMs   float64              `json:"avg_time_ms"`
	Games       []session.GameResult `json:"games,omitempty"`
}

// SkippedFile reports one results file that could not be loaded.
type SkippedFile struct {
	Path   string
	Reason string
}

// Loader reads self-play result files from a results directory and
// turns them into validated session records. Validation happens here,
// at the boundary: a file that decodes but fails the record integrity
// rules is skipped and reported, it never reaches the engine.
type Loader struct {
	dir string
}

// NewLoader creates a loader for the given results directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load reads every results file in the directory, newest first. A
// malformed file or record is reported as skipped; the rest of the
// batch loads normally.
func (l *Loader) Load() ([]session.Record, []SkippedFile, error) {
	paths, err := l.discover()
	if err != nil {
		return nil, nil, err
	}

	var records []session.Record
	var skipped []SkippedFile

	for _, path := range paths {
		record, _, err := l.loadFile(path)
		if err != nil {
			skipped = append(skipped, SkippedFile{Path: path, Reason: err.Error()})
			continue
		}
		records = append(records, record)
	}

	return records, skipped, nil
}

// LoadLatest reads only the most recent results file.
func (l *Loader) LoadLatest() (session.Record, []session.GameResult, error) {
	paths, err := l.discover()
	if err != nil {
		return session.Record{}, nil, err
	}
	if len(paths) == 0 {
		return session.Record{}, nil, fmt.Errorf("%w: no results files in %s", core.ErrNotFound, l.dir)
	}
	return l.loadFile(paths[0])
}

// LoadGames returns the per-game results for each loadable file, keyed
// by source, for distribution analysis.
func (l *Loader) LoadGames() (map[core.SourceID][]session.GameResult, error) {
	paths, err := l.discover()
	if err != nil {
		return nil, err
	}

	games := make(map[core.SourceID][]session.GameResult)
	for _, path := range paths {
		record, perGame, err := l.loadFile(path)
		if err != nil || len(perGame) == 0 {
			continue
		}
		games[record.Source] = perGame
	}
	return games, nil
}

// discover lists matching result files, newest first by modification
// time.
func (l *Loader) discover() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(l.dir, resultsPattern))
	if err != nil {
		return nil, err
	}

	type entry struct {
		path    string
		modTime int64
	}
	entries := make([]entry, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		entries = append(entries, entry{path: path, modTime: info.ModTime().UnixNano()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].modTime > entries[j].modTime })

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.path
	}
	return out, nil
}

func (l *Loader) loadFile(path string) (session.Record, []session.GameResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return session.Record{}, nil, err
	}

	var file ResultsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return session.Record{}, nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	key := session.NewConfigKey(file.BoardSetup, file.AI1Strength, file.AI2Strength)
	source := core.SourceID(filepath.Base(path))

	record, err := session.NewRecord(key, source,
		file.TotalGames, file.P1Wins, file.P2Wins, file.Draws,
		file.AvgMoves, file.AvgTimeMs)
	if err != nil {
		return session.Record{}, nil, err
	}

	return record, file.Games, nil
}
