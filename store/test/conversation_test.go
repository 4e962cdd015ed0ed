package teststore

import (
	"context"
	"testing"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knxxxn/UpMe/store"
)

func createTestConversation(ctx context.Context, t *testing.T, st *store.Store, creatorID int32) *store.Conversation {
	t.Helper()
	now := time.Now().Unix()
	conversation, err := st.CreateConversation(ctx, &store.Conversation{
		UID:       shortuuid.New(),
		CreatorID: creatorID,
		TopicID:   2,
		Title:     "여행",
		CreatedTs: now,
		UpdatedTs: now,
	})
	require.NoError(t, err)
	require.NotZero(t, conversation.ID)
	return conversation
}

func TestConversationCRUD(t *testing.T) {
	ctx := context.Background()
	st := NewTestingStore(ctx, t)

	conversation := createTestConversation(ctx, t, st, 101)

	found, err := st.GetConversation(ctx, &store.FindConversation{ID: &conversation.ID})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "여행", found.Title)
	assert.Equal(t, int32(2), found.TopicID)
	assert.Equal(t, int32(101), found.CreatorID)

	// Ownership-scoped listing only sees the owner's conversations.
	otherID := int32(999)
	list, err := st.ListConversations(ctx, &store.FindConversation{CreatorID: &otherID})
	require.NoError(t, err)
	assert.Empty(t, list)

	missingID := int32(424242)
	missing, err := st.GetConversation(ctx, &store.FindConversation{ID: &missingID})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateConversationWithGreeting(t *testing.T) {
	ctx := context.Background()
	st := NewTestingStore(ctx, t)

	now := time.Now().Unix()
	conversation, err := st.CreateConversationWithGreeting(ctx,
		&store.Conversation{
			UID:       shortuuid.New(),
			CreatorID: 55,
			TopicID:   1,
			Title:     "일상 대화",
			CreatedTs: now,
			UpdatedTs: now,
		},
		&store.Message{
			UID:       shortuuid.New(),
			Role:      store.MessageRoleAI,
			Content:   "Hello! Let's practice English together!",
			CreatedTs: now,
		})
	require.NoError(t, err)
	require.NotZero(t, conversation.ID)

	messages, err := st.ListMessages(ctx, &store.FindMessage{ConversationID: &conversation.ID})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, store.MessageRoleAI, messages[0].Role)
	assert.Equal(t, conversation.ID, messages[0].ConversationID)
}

func TestCreateConversationWithGreetingRollsBack(t *testing.T) {
	ctx := context.Background()
	st := NewTestingStore(ctx, t)

	// The role check constraint rejects the greeting, which must take the
	// conversation row down with it.
	now := time.Now().Unix()
	_, err := st.CreateConversationWithGreeting(ctx,
		&store.Conversation{
			UID:       shortuuid.New(),
			CreatorID: 56,
			TopicID:   1,
			Title:     "일상 대화",
			CreatedTs: now,
			UpdatedTs: now,
		},
		&store.Message{
			UID:       shortuuid.New(),
			Role:      store.MessageRole("greeting"),
			Content:   "Hello!",
			CreatedTs: now,
		})
	require.Error(t, err)

	creatorID := int32(56)
	list, err := st.ListConversations(ctx, &store.FindConversation{CreatorID: &creatorID})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListConversationsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	st := NewTestingStore(ctx, t)

	first := createTestConversation(ctx, t, st, 7)
	second := createTestConversation(ctx, t, st, 7)

	// Touch the first conversation so it becomes the most recently active.
	later := time.Now().Unix() + 100
	_, err := st.UpdateConversation(ctx, &store.UpdateConversation{ID: first.ID, UpdatedTs: &later})
	require.NoError(t, err)

	creatorID := int32(7)
	list, err := st.ListConversations(ctx, &store.FindConversation{CreatorID: &creatorID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestCreateTurnAtomicAppend(t *testing.T) {
	ctx := context.Background()
	st := NewTestingStore(ctx, t)

	conversation := createTestConversation(ctx, t, st, 11)
	now := time.Now().Unix()
	feedback := "관사 사용에 주의하세요."

	err := st.CreateTurn(ctx, &store.AppendTurn{
		ConversationID: conversation.ID,
		UserMessage: &store.Message{
			UID:            shortuuid.New(),
			ConversationID: conversation.ID,
			Role:           store.MessageRoleUser,
			Content:        "I go to travel last week",
			CreatedTs:      now,
		},
		AIMessage: &store.Message{
			UID:            shortuuid.New(),
			ConversationID: conversation.ID,
			Role:           store.MessageRoleAI,
			Content:        "That sounds fun! Where did you go?",
			Feedback:       &feedback,
			CreatedTs:      now,
		},
		UpdatedTs: now + 1,
	})
	require.NoError(t, err)

	messages, err := st.ListMessages(ctx, &store.FindMessage{ConversationID: &conversation.ID})
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, store.MessageRoleUser, messages[0].Role)
	assert.Equal(t, store.MessageRoleAI, messages[1].Role)
	require.NotNil(t, messages[1].Feedback)
	assert.Equal(t, feedback, *messages[1].Feedback)
	assert.Nil(t, messages[0].Feedback)

	updated, err := st.GetConversation(ctx, &store.FindConversation{ID: &conversation.ID})
	require.NoError(t, err)
	assert.Equal(t, now+1, updated.UpdatedTs)
}

func TestCreateTurnMissingConversationRollsBack(t *testing.T) {
	ctx := context.Background()
	st := NewTestingStore(ctx, t)

	now := time.Now().Unix()
	err := st.CreateTurn(ctx, &store.AppendTurn{
		ConversationID: 31337,
		UserMessage: &store.Message{
			UID:            shortuuid.New(),
			ConversationID: 31337,
			Role:           store.MessageRoleUser,
			Content:        "hello?",
			CreatedTs:      now,
		},
		AIMessage: &store.Message{
			UID:            shortuuid.New(),
			ConversationID: 31337,
			Role:           store.MessageRoleAI,
			Content:        "hi",
			CreatedTs:      now,
		},
		UpdatedTs: now,
	})
	require.Error(t, err)

	// The rolled-back turn must leave no orphan messages behind.
	orphanID := int32(31337)
	messages, err := st.ListMessages(ctx, &store.FindMessage{ConversationID: &orphanID})
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestDeleteConversationCascades(t *testing.T) {
	ctx := context.Background()
	st := NewTestingStore(ctx, t)

	conversation := createTestConversation(ctx, t, st, 21)
	now := time.Now().Unix()
	for i := 0; i < 3; i++ {
		_, err := st.CreateMessage(ctx, &store.Message{
			UID:            shortuuid.New(),
			ConversationID: conversation.ID,
			Role:           store.MessageRoleAI,
			Content:        "Hello!",
			CreatedTs:      now + int64(i),
		})
		require.NoError(t, err)
	}

	require.NoError(t, st.DeleteConversation(ctx, &store.DeleteConversation{ID: conversation.ID}))

	messages, err := st.ListMessages(ctx, &store.FindMessage{ConversationID: &conversation.ID})
	require.NoError(t, err)
	assert.Empty(t, messages)

	found, err := st.GetConversation(ctx, &store.FindConversation{ID: &conversation.ID})
	require.NoError(t, err)
	assert.Nil(t, found)

	// Second delete reports the missing conversation.
	err = st.DeleteConversation(ctx, &store.DeleteConversation{ID: conversation.ID})
	assert.Error(t, err)
}
