package store

import (
	"context"
	"fmt"
	"time"

	"github.com/knxxxn/UpMe/internal/profile"
	"github.com/knxxxn/UpMe/store/cache"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// cache for conversations keyed by id
	conversationCache *cache.Cache
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	cacheConfig := cache.Config{
		DefaultTTL:      10 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		MaxItems:        1000,
	}

	return &Store{
		driver:            driver,
		profile:           profile,
		conversationCache: cache.New(cacheConfig),
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	s.conversationCache.Close()
	return s.driver.Close()
}

func (s *Store) CreateConversation(ctx context.Context, create *Conversation) (*Conversation, error) {
	conversation, err := s.driver.CreateConversation(ctx, create)
	if err != nil {
		return nil, err
	}
	s.conversationCache.Set(conversationCacheKey(conversation.ID), conversation)
	return conversation, nil
}

// CreateConversationWithGreeting persists the conversation and its seeded
// greeting message atomically. A conversation with zero messages is never
// visible to readers.
func (s *Store) CreateConversationWithGreeting(ctx context.Context, create *Conversation, greeting *Message) (*Conversation, error) {
	conversation, err := s.driver.CreateConversationWithGreeting(ctx, create, greeting)
	if err != nil {
		return nil, err
	}
	s.conversationCache.Set(conversationCacheKey(conversation.ID), conversation)
	return conversation, nil
}

func (s *Store) ListConversations(ctx context.Context, find *FindConversation) ([]*Conversation, error) {
	return s.driver.ListConversations(ctx, find)
}

// GetConversation returns the single conversation matching find, or nil when
// none matches. Lookups by bare id are served from cache when possible.
func (s *Store) GetConversation(ctx context.Context, find *FindConversation) (*Conversation, error) {
	if find.ID != nil && find.UID == nil && find.CreatorID == nil {
		if cached, ok := s.conversationCache.Get(conversationCacheKey(*find.ID)); ok {
			if conversation, ok := cached.(*Conversation); ok {
				return conversation, nil
			}
		}
	}

	list, err := s.driver.ListConversations(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	conversation := list[0]
	s.conversationCache.Set(conversationCacheKey(conversation.ID), conversation)
	return conversation, nil
}

func (s *Store) UpdateConversation(ctx context.Context, update *UpdateConversation) (*Conversation, error) {
	conversation, err := s.driver.UpdateConversation(ctx, update)
	if err != nil {
		return nil, err
	}
	s.conversationCache.Set(conversationCacheKey(conversation.ID), conversation)
	return conversation, nil
}

func (s *Store) DeleteConversation(ctx context.Context, delete *DeleteConversation) error {
	if err := s.driver.DeleteConversation(ctx, delete); err != nil {
		return err
	}
	s.conversationCache.Delete(conversationCacheKey(delete.ID))
	return nil
}

func (s *Store) CreateMessage(ctx context.Context, create *Message) (*Message, error) {
	return s.driver.CreateMessage(ctx, create)
}

func (s *Store) ListMessages(ctx context.Context, find *FindMessage) ([]*Message, error) {
	return s.driver.ListMessages(ctx, find)
}

func (s *Store) CreateTurn(ctx context.Context, appendTurn *AppendTurn) error {
	if err := s.driver.CreateTurn(ctx, appendTurn); err != nil {
		return err
	}
	// The turn moved the activity timestamp; drop the stale cached record.
	s.conversationCache.Delete(conversationCacheKey(appendTurn.ConversationID))
	return nil
}

func conversationCacheKey(id int32) string {
	return fmt.Sprintf("conversation:%d", id)
}
