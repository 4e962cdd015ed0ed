package store

import "errors"

// Conversation is a topic-scoped, owned sequence of messages.
type Conversation struct {
	ID        int32
	UID       string
	CreatorID int32
	TopicID   int32
	Title     string
	CreatedTs int64
	UpdatedTs int64
}

type FindConversation struct {
	ID        *int32
	UID       *string
	CreatorID *int32
}

type UpdateConversation struct {
	ID        int32
	Title     *string
	UpdatedTs *int64
}

type DeleteConversation struct {
	ID int32
}

// ErrConversationNotFound is returned by driver operations whose target
// conversation no longer exists, e.g. when a concurrent delete won the race.
var ErrConversationNotFound = errors.New("conversation not found")

type MessageRole string

const (
	MessageRoleUser MessageRole = "user"
	MessageRoleAI   MessageRole = "ai"
)

// Message is one entry of a conversation. Feedback is only meaningful on the
// ai role; an empty string means "no correction needed", nil means absent.
type Message struct {
	ID             int32
	UID            string
	ConversationID int32
	Role           MessageRole
	Content        string
	Feedback       *string
	CreatedTs      int64
}

type FindMessage struct {
	ID             *int32
	UID            *string
	ConversationID *int32
}

// AppendTurn persists one user message and the ai message generated in
// response, together with the conversation's activity timestamp, as a single
// transaction. Either all three writes commit or none do.
type AppendTurn struct {
	ConversationID int32
	UserMessage    *Message
	AIMessage      *Message
	UpdatedTs      int64
}
