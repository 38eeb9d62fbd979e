package conversation

import (
	"fmt"
	"time"
)

// Role identifies who produced a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is one turn of a user's conversation history.
type Message struct {
	id        uint
	userID    int64
	role      Role
	content   string
	modelUsed string
	tokens    int
	createdAt time.Time
}

// NewMessage creates a conversation message.
func NewMessage(userID int64, role Role, content string) (*Message, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if content == "" {
		return nil, fmt.Errorf("content is required")
	}

	return &Message{
		userID:    userID,
		role:      role,
		content:   content,
		createdAt: time.Now(),
	}, nil
}

// NewAssistantMessage creates an assistant turn with model attribution and
// a token estimate.
func NewAssistantMessage(userID int64, content, modelUsed string, tokens int) (*Message, error) {
	m, err := NewMessage(userID, RoleAssistant, content)
	if err != nil {
		return nil, err
	}
	m.modelUsed = modelUsed
	m.tokens = tokens
	return m, nil
}

// ReconstructMessage reconstructs a message from persistence.
func ReconstructMessage(id uint, userID int64, role Role, content, modelUsed string, tokens int, createdAt time.Time) (*Message, error) {
	if id == 0 {
		return nil, fmt.Errorf("message ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	return &Message{
		id:        id,
		userID:    userID,
		role:      role,
		content:   content,
		modelUsed: modelUsed,
		tokens:    tokens,
		createdAt: createdAt,
	}, nil
}

func (m *Message) ID() uint             { return m.id }
func (m *Message) UserID() int64        { return m.userID }
func (m *Message) Role() Role           { return m.role }
func (m *Message) Content() string      { return m.content }
func (m *Message) ModelUsed() string    { return m.modelUsed }
func (m *Message) Tokens() int          { return m.tokens }
func (m *Message) CreatedAt() time.Time { return m.createdAt }

// SetID sets the message ID after insertion.
func (m *Message) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("message ID is already set")
	}
	m.id = id
	return nil
}
