package repository

import (
	"context"
	"database/sql"

	"github.com/movierental/backend/internal/model"
)

// ChatRepo provides data access to the `chats` and `chat_messages`
// tables. A chat's message log lives in chat_messages; the auto
// increment id of that table fixes the append order, so reads always
// ORDER BY id. All timestamps are stored in UTC.
type ChatRepo struct {
	db *sql.DB
}

func NewChatRepo(db *sql.DB) *ChatRepo { return &ChatRepo{db: db} }

// Create inserts a new pending chat together with its first message in
// one transaction and returns the chat id. The chat never exists
// without at least one message.
func (r *ChatRepo) Create(ctx context.Context, userID uint64, message string) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO chats (user_id, status) VALUES (?, 'pending')", userID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	chatID := uint64(id)

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO chat_messages (chat_id, sender, message) VALUES (?, 'user', ?)",
		chatID, message); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return chatID, nil
}

// Accept assigns an admin to a pending chat. The update is matched on
// (id, status='pending'), so under concurrent attempts at most one
// succeeds; MySQL's row-level atomicity is the only locking involved.
// A zero matched count maps to ErrChatConflict, which covers both an
// unknown id and an already accepted chat.
func (r *ChatRepo) Accept(ctx context.Context, chatID, adminID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE chats SET status='accepted', admin_id=? WHERE id=? AND status='pending'",
		adminID, chatID)
	if err != nil {
		return err
	}
	return notFoundIfZero(res, ErrChatConflict)
}

// AddMessage appends to the chat's message log regardless of status.
// An unknown chat id maps to ErrChatNotFound.
func (r *ChatRepo) AddMessage(ctx context.Context, chatID uint64, sender, message string) error {
	var exists uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM chats WHERE id=? LIMIT 1", chatID).Scan(&exists)
	if err == sql.ErrNoRows {
		return ErrChatNotFound
	}
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO chat_messages (chat_id, sender, message) VALUES (?,?,?)",
		chatID, sender, message)
	return err
}

func scanChat(row interface{ Scan(...any) error }) (model.Chat, error) {
	var ch model.Chat
	var admin sql.NullInt64
	if err := row.Scan(&ch.ID, &ch.UserID, &admin, &ch.Status, &ch.CreatedAt); err != nil {
		return model.Chat{}, err
	}
	if admin.Valid {
		a := uint64(admin.Int64)
		ch.AdminID = &a
	}
	ch.Messages = []model.ChatMessage{}
	return ch, nil
}

// GetByID fetches a chat and its full message log in append order.
func (r *ChatRepo) GetByID(ctx context.Context, chatID uint64) (model.Chat, error) {
	ch, err := scanChat(r.db.QueryRowContext(ctx,
		"SELECT id, user_id, admin_id, status, created_at FROM chats WHERE id=? LIMIT 1",
		chatID))
	if err == sql.ErrNoRows {
		return model.Chat{}, ErrChatNotFound
	}
	if err != nil {
		return model.Chat{}, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT sender, message, created_at FROM chat_messages WHERE chat_id=? ORDER BY id",
		chatID)
	if err != nil {
		return model.Chat{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.Sender, &m.Message, &m.Timestamp); err != nil {
			return model.Chat{}, err
		}
		ch.Messages = append(ch.Messages, m)
	}
	return ch, rows.Err()
}

func (r *ChatRepo) listChats(ctx context.Context, query string, args ...any) ([]model.Chat, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chats := []model.Chat{}
	for rows.Next() {
		ch, err := scanChat(rows)
		if err != nil {
			return nil, err
		}
		chats = append(chats, ch)
	}
	return chats, rows.Err()
}

// ListPending returns all chats still waiting for an admin. Message
// logs are left empty; list views only need the chat headers.
func (r *ChatRepo) ListPending(ctx context.Context) ([]model.Chat, error) {
	return r.listChats(ctx,
		"SELECT id, user_id, admin_id, status, created_at FROM chats WHERE status='pending' ORDER BY id")
}

// ListAcceptedByAdmin returns the chats a given admin has accepted.
func (r *ChatRepo) ListAcceptedByAdmin(ctx context.Context, adminID uint64) ([]model.Chat, error) {
	return r.listChats(ctx,
		"SELECT id, user_id, admin_id, status, created_at FROM chats WHERE admin_id=? AND status='accepted' ORDER BY id",
		adminID)
}
