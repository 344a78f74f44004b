package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/calebnewtonusc/webcalhacks25/internal/model"
)

// Snapshot is the durable SQLite copy of a session's connections,
// interactions and memories. The core never touches it; callers load a
// snapshot into a ConnectionStore at startup and save after mutations.
type Snapshot struct {
	db *sql.DB
}

// OpenSnapshot opens or creates the snapshot database at the given path.
func OpenSnapshot(dbPath string) (*Snapshot, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Snapshot{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Snapshot) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS connections (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		relationship      TEXT NOT NULL,
		priority          TEXT NOT NULL,
		strength          INTEGER NOT NULL,
		last_contact      TEXT NOT NULL,
		contact_frequency INTEGER NOT NULL,
		phone             TEXT,
		email             TEXT,
		notes             TEXT,
		tags              TEXT,
		created_at        TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS interactions (
		id            TEXT PRIMARY KEY,
		connection_id TEXT NOT NULL REFERENCES connections(id),
		type          TEXT NOT NULL,
		date          TEXT NOT NULL,
		notes         TEXT,
		quality       INTEGER,
		mood          TEXT,
		topics        TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_interactions_connection ON interactions(connection_id);
	CREATE INDEX IF NOT EXISTS idx_interactions_date ON interactions(date DESC);

	CREATE TABLE IF NOT EXISTS memories (
		id            TEXT PRIMARY KEY,
		connection_id TEXT NOT NULL REFERENCES connections(id),
		type          TEXT NOT NULL,
		content       TEXT NOT NULL,
		importance    INTEGER NOT NULL DEFAULT 0,
		tags          TEXT,
		created_at    TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_memories_connection ON memories(connection_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save rewrites the snapshot from the store's current state in one
// transaction.
func (s *Snapshot) Save(ctx context.Context, cs *ConnectionStore) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"memories", "interactions", "connections"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, c := range cs.All() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO connections (id, name, relationship, priority, strength, last_contact,
			                          contact_frequency, phone, email, notes, tags, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, string(c.Relationship), string(c.Priority), c.Strength,
			c.LastContact.UTC().Format(time.RFC3339), c.ContactFrequency,
			c.Phone, c.Email, c.Notes, marshalTags(c.Tags),
			c.CreatedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("insert connection: %w", err)
		}
		for _, in := range c.Interactions {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO interactions (id, connection_id, type, date, notes, quality, mood, topics)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				in.ID, c.ID, string(in.Type), in.Date.UTC().Format(time.RFC3339),
				in.Notes, in.Quality, in.Mood, marshalTags(in.Topics))
			if err != nil {
				return fmt.Errorf("insert interaction: %w", err)
			}
		}
	}

	for _, m := range cs.Memories() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO memories (id, connection_id, type, content, importance, tags, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			m.ID, m.ConnectionID, string(m.Type), m.Content, m.Importance,
			marshalTags(m.Tags), m.CreatedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("insert memory: %w", err)
		}
	}

	return tx.Commit()
}

// Load reads the snapshot back. An empty database yields empty slices,
// which callers treat as a fresh session.
func (s *Snapshot) Load(ctx context.Context) ([]model.Connection, []model.Memory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, relationship, priority, strength, last_contact,
		        contact_frequency, phone, email, notes, tags, created_at
		 FROM connections ORDER BY created_at, id`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var conns []model.Connection
	index := map[string]int{}
	for rows.Next() {
		var c model.Connection
		var rel, prio, lastContact, createdAt string
		var phone, email, notes, tags sql.NullString
		err := rows.Scan(&c.ID, &c.Name, &rel, &prio, &c.Strength, &lastContact,
			&c.ContactFrequency, &phone, &email, &notes, &tags, &createdAt)
		if err != nil {
			return nil, nil, err
		}
		c.Relationship = model.Relationship(rel)
		c.Priority = model.Priority(prio)
		c.LastContact, _ = time.Parse(time.RFC3339, lastContact)
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		c.Phone = phone.String
		c.Email = email.String
		c.Notes = notes.String
		c.Tags = unmarshalTags(tags)
		index[c.ID] = len(conns)
		conns = append(conns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	irows, err := s.db.QueryContext(ctx,
		`SELECT id, connection_id, type, date, notes, quality, mood, topics
		 FROM interactions ORDER BY date DESC`)
	if err != nil {
		return nil, nil, err
	}
	defer irows.Close()

	for irows.Next() {
		var in model.Interaction
		var connID, typ, date string
		var notes, mood, topics sql.NullString
		var quality sql.NullInt64
		if err := irows.Scan(&in.ID, &connID, &typ, &date, &notes, &quality, &mood, &topics); err != nil {
			return nil, nil, err
		}
		in.Type = model.InteractionType(typ)
		in.Date, _ = time.Parse(time.RFC3339, date)
		in.Notes = notes.String
		in.Quality = int(quality.Int64)
		in.Mood = mood.String
		in.Topics = unmarshalTags(topics)
		if i, ok := index[connID]; ok {
			conns[i].Interactions = append(conns[i].Interactions, in)
		}
	}
	if err := irows.Err(); err != nil {
		return nil, nil, err
	}

	mrows, err := s.db.QueryContext(ctx,
		`SELECT id, connection_id, type, content, importance, tags, created_at
		 FROM memories ORDER BY created_at`)
	if err != nil {
		return nil, nil, err
	}
	defer mrows.Close()

	var memories []model.Memory
	for mrows.Next() {
		var m model.Memory
		var typ, createdAt string
		var tags sql.NullString
		if err := mrows.Scan(&m.ID, &m.ConnectionID, &typ, &m.Content, &m.Importance, &tags, &createdAt); err != nil {
			return nil, nil, err
		}
		m.Type = model.MemoryType(typ)
		m.Tags = unmarshalTags(tags)
		m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		memories = append(memories, m)
	}
	if err := mrows.Err(); err != nil {
		return nil, nil, err
	}

	return conns, memories, nil
}

// Close closes the snapshot database.
func (s *Snapshot) Close() error {
	return s.db.Close()
}

func marshalTags(tags []string) *string {
	if len(tags) == 0 {
		return nil
	}
	b, _ := json.Marshal(tags)
	out := string(b)
	return &out
}

func unmarshalTags(v sql.NullString) []string {
	if !v.Valid || v.String == "" {
		return nil
	}
	var tags []string
	json.Unmarshal([]byte(v.String), &tags)
	return tags
}
