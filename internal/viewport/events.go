package viewport

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// maxEventLine bounds one recorded event line.
const maxEventLine = 64 * 1024

// ReadEvents decodes a recorded event stream, one JSON event per line.
// Blank lines are skipped.
func ReadEvents(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, maxEventLine), maxEventLine)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		events = append(events, ev)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}
	return events, nil
}

// ReadEventsFile reads an event stream from path.
func ReadEventsFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening events: %w", err)
	}
	defer f.Close()
	return ReadEvents(f)
}
