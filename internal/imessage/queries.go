package imessage

import (
	"context"
	"database/sql"
)

// chatGUIDPrefix is how Messages composes the chat.guid column for an
// iMessage conversation: the service name joined to the recipient
// identifier.
const chatGUIDPrefix = "iMessage;-;"

// ListConversationIdentifiers returns every chat_identifier in store
// order (chat.ROWID ascending). No filtering.
func (d *DB) ListConversationIdentifiers(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT c.chat_identifier
		FROM chat c
		ORDER BY c.ROWID
	`)
	if err != nil {
		return nil, accessErr("list conversations", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, accessErr("scan conversation", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, accessErr("list conversations", err)
	}

	d.logger.Debug("listed conversations", "count", len(ids))
	return ids, nil
}

// FetchMessages returns all messages for the conversation with the given
// recipient identifier. Resolution matches the store's composite guid
// ("iMessage;-;" + identifier) exactly, then follows chat_handle_join to
// the handle's messages. An identifier with no matching chat yields an
// empty slice, not an error.
func (d *DB) FetchMessages(ctx context.Context, identifier string) ([]Message, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT
			m.text,
			COALESCE(m.is_from_me, 0),
			COALESCE(m.date, 0),
			COALESCE(m.cache_has_attachments, 0)
		FROM message m
		WHERE m.handle_id IN (
			SELECT chj.handle_id
			FROM chat_handle_join chj
			JOIN chat c ON c.ROWID = chj.chat_id
			WHERE c.guid = ?
		)
		ORDER BY m.ROWID
	`, chatGUIDPrefix+identifier)
	if err != nil {
		return nil, accessErr("fetch messages", err)
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var (
			text   sql.NullString
			fromMe int
			date   int64
			hasAtt int
		)
		if err := rows.Scan(&text, &fromMe, &date, &hasAtt); err != nil {
			return nil, accessErr("scan message", err)
		}
		m := Message{
			FromMe:        fromMe == 1,
			Date:          fromAppleTime(date),
			HasAttachment: hasAtt == 1,
		}
		if text.Valid {
			t := text.String
			m.Text = &t
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, accessErr("fetch messages", err)
	}

	d.logger.Debug("fetched messages", "identifier", identifier, "count", len(msgs))
	return msgs, nil
}
