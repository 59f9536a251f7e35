package imessage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"chatmetrics/internal/config"
)

// chatDBSchema is the subset of Apple's chat.db schema the accessor
// touches.
const chatDBSchema = `
CREATE TABLE chat (
	ROWID INTEGER PRIMARY KEY,
	guid TEXT,
	chat_identifier TEXT
);
CREATE TABLE chat_handle_join (
	chat_id INTEGER,
	handle_id INTEGER
);
CREATE TABLE message (
	ROWID INTEGER PRIMARY KEY,
	text TEXT,
	is_from_me INTEGER,
	date INTEGER,
	cache_has_attachments INTEGER,
	handle_id INTEGER
);
`

// newTestStore creates a file-backed fixture chat.db, runs seed against a
// writable connection, then opens it through the accessor read-only.
func newTestStore(t *testing.T, seed func(t *testing.T, db *sql.DB)) *DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "chat.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	if _, err := db.Exec(chatDBSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	if seed != nil {
		seed(t, db)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close fixture db: %v", err)
	}

	cfg := &config.Config{Debug: true, DBPath: path}
	store, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// seedConversation inserts a chat with the composite iMessage guid and
// its handle join.
func seedConversation(t *testing.T, db *sql.DB, rowID int64, identifier string, handleID int64) {
	t.Helper()
	if _, err := db.Exec(
		`INSERT INTO chat (ROWID, guid, chat_identifier) VALUES (?, ?, ?)`,
		rowID, "iMessage;-;"+identifier, identifier,
	); err != nil {
		t.Fatalf("seed chat: %v", err)
	}
	if _, err := db.Exec(
		`INSERT INTO chat_handle_join (chat_id, handle_id) VALUES (?, ?)`,
		rowID, handleID,
	); err != nil {
		t.Fatalf("seed chat_handle_join: %v", err)
	}
}

func seedMessage(t *testing.T, db *sql.DB, text any, fromMe, hasAtt int, date, handleID int64) {
	t.Helper()
	if _, err := db.Exec(
		`INSERT INTO message (text, is_from_me, date, cache_has_attachments, handle_id)
		 VALUES (?, ?, ?, ?, ?)`,
		text, fromMe, date, hasAtt, handleID,
	); err != nil {
		t.Fatalf("seed message: %v", err)
	}
}

func TestOpenRejectsNonChatDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE unrelated (id INTEGER)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	db.Close()

	cfg := &config.Config{Debug: true, DBPath: path}
	_, err = Open(cfg, nil)
	if err == nil {
		t.Fatal("Open() on a non-chat.db succeeded, want error")
	}
	var dae *DataAccessError
	if !errors.As(err, &dae) {
		t.Errorf("Open() error = %T, want *DataAccessError", err)
	}
}

func TestListConversationIdentifiersStoreOrder(t *testing.T) {
	store := newTestStore(t, func(t *testing.T, db *sql.DB) {
		// Insert out of lexicographic order to prove ROWID ordering.
		seedConversation(t, db, 1, "zed@example.com", 10)
		seedConversation(t, db, 2, "amy@example.com", 20)
		seedConversation(t, db, 3, "+15550001111", 30)
	})

	ids, err := store.ListConversationIdentifiers(context.Background())
	if err != nil {
		t.Fatalf("ListConversationIdentifiers() error = %v", err)
	}

	want := []string{"zed@example.com", "amy@example.com", "+15550001111"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("identifiers mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchMessages(t *testing.T) {
	store := newTestStore(t, func(t *testing.T, db *sql.DB) {
		seedConversation(t, db, 1, "friend@example.com", 7)
		seedMessage(t, db, "Hello world", 0, 0, 0, 7)
		seedMessage(t, db, nil, 1, 1, 0, 7)
		// Different handle: must not appear.
		seedConversation(t, db, 2, "other@example.com", 8)
		seedMessage(t, db, "unrelated", 0, 0, 0, 8)
	})

	msgs, err := store.FetchMessages(context.Background(), "friend@example.com")
	if err != nil {
		t.Fatalf("FetchMessages() error = %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("len(msgs) = %d, want 2", len(msgs))
	}

	if msgs[0].Text == nil || *msgs[0].Text != "Hello world" {
		t.Errorf("msgs[0].Text = %v, want Hello world", msgs[0].Text)
	}
	if msgs[0].FromMe {
		t.Error("msgs[0].FromMe = true, want false")
	}
	if msgs[0].HasAttachment {
		t.Error("msgs[0].HasAttachment = true, want false")
	}
	if msgs[1].Text != nil {
		t.Errorf("msgs[1].Text = %q, want nil", *msgs[1].Text)
	}
	if !msgs[1].FromMe {
		t.Error("msgs[1].FromMe = false, want true")
	}
	if !msgs[1].HasAttachment {
		t.Error("msgs[1].HasAttachment = false, want true")
	}
}

func TestFetchMessagesUnknownIdentifierIsEmpty(t *testing.T) {
	store := newTestStore(t, func(t *testing.T, db *sql.DB) {
		seedConversation(t, db, 1, "friend@example.com", 7)
		seedMessage(t, db, "hi", 0, 0, 0, 7)
	})

	msgs, err := store.FetchMessages(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("FetchMessages() error = %v, want nil for unknown identifier", err)
	}
	if len(msgs) != 0 {
		t.Errorf("len(msgs) = %d, want 0", len(msgs))
	}
}

func TestFetchMessagesBooleanCoercion(t *testing.T) {
	// Only the exact value 1 means true; anything else is false.
	store := newTestStore(t, func(t *testing.T, db *sql.DB) {
		seedConversation(t, db, 1, "friend@example.com", 7)
		seedMessage(t, db, "a", 1, 1, 0, 7)
		seedMessage(t, db, "b", 2, 2, 0, 7)
		seedMessage(t, db, "c", 0, 0, 0, 7)
	})

	msgs, err := store.FetchMessages(context.Background(), "friend@example.com")
	if err != nil {
		t.Fatalf("FetchMessages() error = %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("len(msgs) = %d, want 3", len(msgs))
	}

	wantFromMe := []bool{true, false, false}
	wantHasAtt := []bool{true, false, false}
	for i, m := range msgs {
		if m.FromMe != wantFromMe[i] {
			t.Errorf("msgs[%d].FromMe = %v, want %v", i, m.FromMe, wantFromMe[i])
		}
		if m.HasAttachment != wantHasAtt[i] {
			t.Errorf("msgs[%d].HasAttachment = %v, want %v", i, m.HasAttachment, wantHasAtt[i])
		}
	}
}

func TestFromAppleTime(t *testing.T) {
	tests := []struct {
		name string
		v    int64
		want time.Time
	}{
		{"zero is the apple epoch", 0, time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"nanoseconds since epoch", 631152000_000_000_000, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"legacy seconds since epoch", 631152000, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fromAppleTime(tt.v); !got.Equal(tt.want) {
				t.Errorf("fromAppleTime(%d) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestDataAccessErrorUnwrap(t *testing.T) {
	inner := errors.New("disk I/O error")
	err := accessErr("fetch messages", inner)

	if !errors.Is(err, inner) {
		t.Error("errors.Is(err, inner) = false, want true")
	}
	if got := err.Error(); got != "fetch messages: disk I/O error" {
		t.Errorf("Error() = %q", got)
	}
}
