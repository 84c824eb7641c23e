package types

// Event is one inbound message delivery, reduced to the fields the
// prediction pipeline needs. Every field is required; the server builds
// Events from Telegram updates and never forwards partial ones.
type Event struct {
	// ChatID is the chat the message was posted in.
	ChatID int64

	// ChannelID identifies the originating channel. For channel posts this
	// equals ChatID; for forwarded/linked posts it is the sender chat.
	ChannelID int64

	// MessageID is the Telegram message identifier within the chat.
	MessageID int64

	// Text is the full message text.
	Text string

	// Edited reports whether this delivery is an edit of an earlier message.
	Edited bool
}
