package model

import "time"

// Chat status values stored in chats.status. A chat is created "pending"
// with no admin assigned; the first employee whose conditional accept
// lands flips it to "accepted" and becomes its admin. There is no closed
// state.
const (
	ChatPending  = "pending"
	ChatAccepted = "accepted"
)

// ChatMessage is one entry in a chat's message log. Messages are only
// ever appended; the auto-increment id of the chat_messages row fixes
// the append order.
type ChatMessage struct {
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Chat mirrors the `chats` table plus its ordered message log. AdminID
// is nil until the chat has been accepted.
type Chat struct {
	ID        uint64        `json:"id"`
	UserID    uint64        `json:"userId"`
	AdminID   *uint64       `json:"adminId"`
	Status    string        `json:"status"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"createdAt"`
}
