package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported journal format")

// Load reads a snapshot, choosing the reader from the file extension:
// .json (app data export), .jsonl (one list per line) or .db/.sqlite.
func Load(path string) (*Snapshot, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path)
	case ".jsonl":
		return LoadJSONL(path)
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadJSON reads an app data export: {"prayerLists": [...], "archivedCards": [...]}.
// A missing file yields an empty snapshot.
func LoadJSON(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Snapshot{}, nil
		}
		return nil, fmt.Errorf("reading journal: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing journal: %w", err)
	}
	snap.fillMissingIDs()
	return &snap, nil
}

// LoadJSONL reads one list per line. Empty lines are skipped.
// A missing file yields an empty snapshot.
func LoadJSONL(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Snapshot{}, nil
		}
		return nil, fmt.Errorf("opening journal file: %w", err)
	}
	defer f.Close()

	var snap Snapshot
	scanner := bufio.NewScanner(f)

	// Increase buffer size for long lines
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var l List
		if err := json.Unmarshal(line, &l); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		snap.Lists = append(snap.Lists, l)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading journal file: %w", err)
	}

	snap.fillMissingIDs()
	return &snap, nil
}
