package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Conversation model related methods.
	CreateConversation(ctx context.Context, create *Conversation) (*Conversation, error)
	// CreateConversationWithGreeting inserts the conversation and its seeded
	// greeting message in one transaction. A conversation is never observable
	// without its greeting.
	CreateConversationWithGreeting(ctx context.Context, create *Conversation, greeting *Message) (*Conversation, error)
	ListConversations(ctx context.Context, find *FindConversation) ([]*Conversation, error)
	UpdateConversation(ctx context.Context, update *UpdateConversation) (*Conversation, error)
	// DeleteConversation removes a conversation and all of its messages in one
	// transaction. Partial deletion is never observable.
	DeleteConversation(ctx context.Context, delete *DeleteConversation) error

	// Message model related methods.
	CreateMessage(ctx context.Context, create *Message) (*Message, error)
	ListMessages(ctx context.Context, find *FindMessage) ([]*Message, error)
	// CreateTurn appends a (user, ai) message pair and touches the conversation
	// timestamp atomically.
	CreateTurn(ctx context.Context, appendTurn *AppendTurn) error
}
