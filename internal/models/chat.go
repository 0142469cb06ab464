package models

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
	ChatRoleSystem    ChatRole = "system"
)

// ChatMessage is a single conversation turn. It is relayed to the provider
// and never stored.
type ChatMessage struct {
	Role    ChatRole `json:"role" binding:"required,oneof=user assistant system"`
	Content string   `json:"content"`
}
