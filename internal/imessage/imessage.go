// Package imessage provides read-only access to the Apple Messages store
// (chat.db) and shapes its rows into conversation records.
package imessage

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"chatmetrics/internal/config"
)

// appleEpoch is the Core Data reference date: 2001-01-01 00:00:00 UTC.
// message.date values count from here.
var appleEpoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// Message is one row from the message table, shaped for aggregation.
type Message struct {
	Text          *string   // nil when the row's text column is NULL
	FromMe        bool      // is_from_me = 1
	Date          time.Time // converted from the store-native integer
	HasAttachment bool      // cache_has_attachments = 1
}

// DB provides read-only access to a chat.db store. One connection is
// opened at construction and shared by all operations.
type DB struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens the Messages store configured in cfg read-only and verifies
// it looks like a chat.db. A nil logger falls back to slog.Default.
func Open(cfg *config.Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	path := cfg.MessagesDBPath()

	// Open read-only. Use a file: URI so paths containing '?' or other
	// special characters survive DSN parsing.
	dsn := (&url.URL{
		Scheme:   "file",
		OmitHost: true,
		Path:     path,
		RawQuery: "mode=ro&_busy_timeout=5000",
	}).String()
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, accessErr("open messages store", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, accessErr("open messages store", err)
	}

	if err := verifyChatDB(db); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("opened messages store", "path", path)
	return &DB{db: db, path: path, logger: logger}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the store path this accessor reads from.
func (d *DB) Path() string {
	return d.path
}

// verifyChatDB checks that the expected Messages tables exist, so a wrong
// path fails up front with a clear error instead of "no such table" on
// the first query.
func verifyChatDB(db *sql.DB) error {
	for _, table := range []string{"chat", "chat_handle_join", "message"} {
		var count int
		err := db.QueryRow(
			`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table,
		).Scan(&count)
		if err != nil {
			return accessErr("inspect messages store", err)
		}
		if count == 0 {
			return accessErr("inspect messages store",
				fmt.Errorf("table %q not found (not a Messages chat.db?)", table))
		}
	}
	return nil
}

// fromAppleTime converts a message.date value to UTC. Modern stores
// record nanoseconds since the Apple epoch; pre-High Sierra stores
// recorded whole seconds, which show up as implausibly small values.
func fromAppleTime(v int64) time.Time {
	if v != 0 && v < int64(1)<<40 {
		return appleEpoch.Add(time.Duration(v) * time.Second)
	}
	return appleEpoch.Add(time.Duration(v) * time.Nanosecond)
}
