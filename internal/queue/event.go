// Package queue defines the message payloads exchanged over the broker
// and the background consumer that records them.
package queue

// ChatMessageEvent is published whenever a message lands in a chat,
// including the opening message of a new chat. Delivery is best-effort:
// the request that produced the message succeeds whether or not the
// event reaches the broker.
type ChatMessageEvent struct {
	ChatID  uint64 `json:"chat_id"`
	Sender  string `json:"sender"`
	Message string `json:"message"`
	SentAt  string `json:"sent_at"`
}

// ChatAcceptedEvent is published when an employee wins the accept on a
// pending chat.
type ChatAcceptedEvent struct {
	ChatID     uint64 `json:"chat_id"`
	AdminID    uint64 `json:"admin_id"`
	AcceptedAt string `json:"accepted_at"`
}
