package journal

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteSchema is the layout LoadSQLite expects. Lists and cards are read
// in position order; created_at holds RFC 3339 text.
const SQLiteSchema = `
	CREATE TABLE IF NOT EXISTS lists (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		is_completed INTEGER NOT NULL DEFAULT 0,
		created_at TEXT
	);

	CREATE TABLE IF NOT EXISTS cards (
		id TEXT PRIMARY KEY,
		list_id TEXT NOT NULL REFERENCES lists(id),
		title TEXT NOT NULL,
		description TEXT,
		person TEXT,
		is_answered INTEGER NOT NULL DEFAULT 0,
		position INTEGER NOT NULL DEFAULT 0,
		created_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_cards_list ON cards(list_id, position);
`

// sqliteDSN builds a file: URI for path. The path is percent-escaped so
// '?', '#' and '%' in file names are not read as URI syntax.
func sqliteDSN(path, mode string) string {
	dsn := "file:" + (&url.URL{Path: path}).EscapedPath()
	if mode != "" {
		dsn += "?mode=" + mode
	}
	return dsn
}

// LoadSQLite reads lists and cards from a SQLite database opened read-only.
// A missing file yields an empty snapshot.
func LoadSQLite(path string) (*Snapshot, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &Snapshot{}, nil
		}
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db, err := sql.Open("sqlite", sqliteDSN(path, "ro"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	lists, err := queryLists(db)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(lists))
	for i, l := range lists {
		index[l.ID] = i
	}

	if err := queryCards(db, lists, index); err != nil {
		return nil, err
	}

	snap := &Snapshot{Lists: lists}
	snap.fillMissingIDs()
	return snap, nil
}

func queryLists(db *sql.DB) ([]List, error) {
	rows, err := db.Query(`SELECT id, title, is_completed, created_at FROM lists ORDER BY position, rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying lists: %w", err)
	}
	defer rows.Close()

	var lists []List
	for rows.Next() {
		var (
			l         List
			completed int
			created   sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.Title, &completed, &created); err != nil {
			return nil, fmt.Errorf("scanning list: %w", err)
		}
		l.IsCompleted = completed != 0
		l.CreatedAt = parseTime(created)
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lists: %w", err)
	}
	return lists, nil
}

func queryCards(db *sql.DB, lists []List, index map[string]int) error {
	rows, err := db.Query(`SELECT id, list_id, title, description, person, is_answered, created_at
		FROM cards ORDER BY list_id, position, rowid`)
	if err != nil {
		return fmt.Errorf("querying cards: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c                   Card
			listID              string
			description, person sql.NullString
			answered            int
			created             sql.NullString
		)
		if err := rows.Scan(&c.ID, &listID, &c.Title, &description, &person, &answered, &created); err != nil {
			return fmt.Errorf("scanning card: %w", err)
		}
		i, ok := index[listID]
		if !ok {
			// Orphaned card; nothing on the map can own it.
			continue
		}
		c.Description = description.String
		c.Person = person.String
		c.IsAnswered = answered != 0
		c.CreatedAt = parseTime(created)
		lists[i].Cards = append(lists[i].Cards, c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating cards: %w", err)
	}
	return nil
}

func parseTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}
