// Package persistence provides SQLite-based network snapshot storage for
// the host harness. The engine itself never touches it.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hydronet/internal/network"
)

// DB wraps a SQLite connection for snapshot persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL,
		network_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SnapshotInfo describes a stored snapshot.
type SnapshotInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveSnapshot stores a named copy of the network and returns its id.
func (db *DB) SaveSnapshot(name string, net *network.Network) (string, error) {
	data, err := json.Marshal(net)
	if err != nil {
		return "", fmt.Errorf("encode network: %w", err)
	}

	id := uuid.NewString()
	_, err = db.conn.Exec(
		`INSERT INTO snapshots (id, name, created_at, network_json) VALUES (?, ?, ?, ?)`,
		id, name, time.Now().UTC().Format(time.RFC3339Nano), string(data),
	)
	if err != nil {
		return "", fmt.Errorf("insert snapshot: %w", err)
	}
	return id, nil
}

// LoadSnapshot restores a network by snapshot id.
func (db *DB) LoadSnapshot(id string) (*network.Network, error) {
	var blob string
	err := db.conn.Get(&blob, `SELECT network_json FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", id, err)
	}
	return decodeNetwork(blob)
}

// LatestSnapshot restores the most recent snapshot, or (nil, nil) when the
// store is empty.
func (db *DB) LatestSnapshot() (*network.Network, error) {
	var blob string
	err := db.conn.Get(&blob,
		`SELECT network_json FROM snapshots ORDER BY created_at DESC, id DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load latest snapshot: %w", err)
	}
	return decodeNetwork(blob)
}

// ListSnapshots returns stored snapshots, newest first.
func (db *DB) ListSnapshots() ([]SnapshotInfo, error) {
	rows, err := db.conn.Query(
		`SELECT id, name, created_at FROM snapshots ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		var created string
		if err := rows.Scan(&info.ID, &info.Name, &created); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			info.CreatedAt = ts
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// DeleteSnapshot removes a snapshot by id.
func (db *DB) DeleteSnapshot(id string) error {
	_, err := db.conn.Exec(`DELETE FROM snapshots WHERE id = ?`, id)
	return err
}

// SetMeta stores a key/value pair.
func (db *DB) SetMeta(key, value string) error {
	_, err := db.conn.Exec(
		`INSERT INTO meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// GetMeta retrieves a value by key.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, `SELECT value FROM meta WHERE key = ?`, key)
	return value, err
}

func decodeNetwork(blob string) (*network.Network, error) {
	var net network.Network
	if err := json.Unmarshal([]byte(blob), &net); err != nil {
		return nil, fmt.Errorf("decode network: %w", err)
	}
	if net.Nodes == nil {
		net.Nodes = map[network.NodeID]*network.Node{}
	}
	if net.Pipes == nil {
		net.Pipes = map[network.PipeID]*network.Pipe{}
	}
	net.Reindex()
	return &net, nil
}
