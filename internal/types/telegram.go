package types

// Telegram getUpdates wire format, trimmed to the fields the bot reads.
// A fill notice or command can arrive as a plain message, an edit, or a
// channel post, so all four variants are checked in order.

type Update struct {
	UpdateID          int64    `json:"update_id"`
	Message           *Message `json:"message,omitempty"`
	EditedMessage     *Message `json:"edited_message,omitempty"`
	ChannelPost       *Message `json:"channel_post,omitempty"`
	EditedChannelPost *Message `json:"edited_channel_post,omitempty"`
}

type Message struct {
	Text string `json:"text"`
	Chat Chat   `json:"chat"`
}

type Chat struct {
	ID int64 `json:"id"`
}

// Text returns the first non-empty text among the update's message variants.
func (u Update) Text() string {
	for _, m := range u.variants() {
		if m != nil && m.Text != "" {
			return m.Text
		}
	}
	return ""
}

// ChatID returns the first chat id among the update's message variants,
// or 0 when none carries one.
func (u Update) ChatID() int64 {
	for _, m := range u.variants() {
		if m != nil && m.Chat.ID != 0 {
			return m.Chat.ID
		}
	}
	return 0
}

func (u Update) variants() [4]*Message {
	return [4]*Message{u.Message, u.EditedMessage, u.ChannelPost, u.EditedChannelPost}
}
