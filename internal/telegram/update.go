// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package telegram

// Update is one inbound webhook delivery. Exactly one of Message and
// EditedMessage is set for the update kinds this bot subscribes to.
type Update struct {
	UpdateID      int64    `json:"update_id"`
	Message       *Message `json:"message,omitempty"`
	EditedMessage *Message `json:"edited_message,omitempty"`
}

// Message is the subset of the Bot API message object the bot reads.
type Message struct {
	MessageID  int64  `json:"message_id"`
	From       *User  `json:"from,omitempty"`
	Date       int64  `json:"date"`
	Chat       Chat   `json:"chat"`
	SenderChat *Chat  `json:"sender_chat,omitempty"`
	Text       string `json:"text"`
}

// Chat identifies a Telegram chat, group, or channel.
type Chat struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`
}

// User identifies a Telegram account.
type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	Username  string `json:"username,omitempty"`
}
