package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/knxxxn/UpMe/plugin/gemini"
	svcerrors "github.com/knxxxn/UpMe/server/internal/errors"
	"github.com/knxxxn/UpMe/server/internal/observability"
	"github.com/knxxxn/UpMe/store"
)

const greetingFormat = `Hello! I'm your AI conversation partner. Let's practice English together! Today's topic is "%s". What would you like to talk about?`

// Degraded turn persisted whenever the AI side fails. The user keeps the
// conversation; only this turn carries the apology.
const (
	degradedReply    = "I'm sorry, I'm having trouble responding right now. Please try again!"
	degradedFeedback = "⚠️ AI 서비스에 일시적인 문제가 발생했습니다. 잠시 후 다시 시도해주세요."
)

// maxHistoryMessages bounds how much prior context is replayed to the model.
const maxHistoryMessages = 20

// Gateway generates a model response for one turn. It returns the raw upstream
// body so the caller owns the parsing policy.
type Gateway interface {
	GenerateContent(ctx context.Context, systemInstruction string, history []gemini.Message, message string) ([]byte, error)
}

// OwnerVerifier reports whether a user id refers to a real account. Identity
// itself lives outside this service.
type OwnerVerifier interface {
	VerifyOwner(ctx context.Context, ownerID int32) (bool, error)
}

// Service orchestrates conversations: ownership checks, prompt assembly, the
// gateway round trip, and transactional persistence of each turn.
type Service struct {
	store    *store.Store
	gateway  Gateway
	verifier OwnerVerifier
	logger   *slog.Logger
}

func NewService(st *store.Store, gateway Gateway, verifier OwnerVerifier, logger *slog.Logger) *Service {
	return &Service{
		store:    st,
		gateway:  gateway,
		verifier: verifier,
		logger:   logger,
	}
}

// StartConversation creates a conversation for the given topic and seeds it
// with the AI greeting. Unknown topic ids fall back to the free topic title.
func (s *Service) StartConversation(ctx context.Context, userID int32, topicID int32) (*store.Conversation, error) {
	rc := observability.NewRequestContext(s.logger, userID, 0)
	rc.Info("starting conversation", slog.Int64(observability.LogFieldTopicID, int64(topicID)))

	ok, err := s.verifier.VerifyOwner(ctx, userID)
	if err != nil {
		return nil, svcerrors.Internal("failed to verify owner", err)
	}
	if !ok {
		rc.Warn("owner not found")
		return nil, svcerrors.OwnerNotFound(userID)
	}

	now := time.Now().Unix()
	title := gemini.TopicTitle(topicID)
	conversation, err := s.store.CreateConversationWithGreeting(ctx,
		&store.Conversation{
			UID:       shortuuid.New(),
			CreatorID: userID,
			TopicID:   topicID,
			Title:     title,
			CreatedTs: now,
			UpdatedTs: now,
		},
		&store.Message{
			UID:       shortuuid.New(),
			Role:      store.MessageRoleAI,
			Content:   fmt.Sprintf(greetingFormat, title),
			CreatedTs: now,
		})
	if err != nil {
		return nil, svcerrors.Internal("failed to create conversation", err)
	}

	rc.Info("conversation started",
		slog.Int64(observability.LogFieldConversationID, int64(conversation.ID)),
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()))
	return conversation, nil
}

// ListConversations returns the caller's conversations, most recently active
// first.
func (s *Service) ListConversations(ctx context.Context, userID int32) ([]*store.Conversation, error) {
	list, err := s.store.ListConversations(ctx, &store.FindConversation{CreatorID: &userID})
	if err != nil {
		return nil, svcerrors.Internal("failed to list conversations", err)
	}
	return list, nil
}

// GetMessages returns the full message history of one of the caller's
// conversations in chronological order.
func (s *Service) GetMessages(ctx context.Context, userID int32, conversationID int32) ([]*store.Message, error) {
	if _, err := s.ownedConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	messages, err := s.store.ListMessages(ctx, &store.FindMessage{ConversationID: &conversationID})
	if err != nil {
		return nil, svcerrors.Internal("failed to list messages", err)
	}
	return messages, nil
}

// SendTurn runs one exchange: the user message goes to the model with the
// conversation's topic prompt and recent history, and both sides of the
// exchange are persisted atomically. AI-side failures never fail the turn;
// they degrade to an apology reply instead.
func (s *Service) SendTurn(ctx context.Context, userID int32, conversationID int32, message string) (*store.Message, error) {
	rc := observability.NewRequestContext(s.logger, userID, conversationID)
	rc.Info("processing turn", slog.Int(observability.LogFieldMessageLen, len(message)))

	if message == "" {
		return nil, svcerrors.InvalidArgument("message must not be empty")
	}

	conversation, err := s.ownedConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	history, err := s.store.ListMessages(ctx, &store.FindMessage{ConversationID: &conversationID})
	if err != nil {
		return nil, svcerrors.Internal("failed to load history", err)
	}

	reply := s.generateReply(ctx, rc, conversation.TopicID, history, message)

	now := time.Now().Unix()
	aiMessage := &store.Message{
		UID:            shortuuid.New(),
		ConversationID: conversationID,
		Role:           store.MessageRoleAI,
		Content:        reply.Reply,
		Feedback:       &reply.Feedback,
		CreatedTs:      now,
	}
	if err := s.store.CreateTurn(ctx, &store.AppendTurn{
		ConversationID: conversationID,
		UserMessage: &store.Message{
			UID:            shortuuid.New(),
			ConversationID: conversationID,
			Role:           store.MessageRoleUser,
			Content:        message,
			CreatedTs:      now,
		},
		AIMessage: aiMessage,
		UpdatedTs: now,
	}); err != nil {
		// A concurrent delete may have removed the conversation after the
		// ownership check.
		if errors.Is(err, store.ErrConversationNotFound) {
			return nil, svcerrors.ConversationNotFound(conversationID)
		}
		return nil, svcerrors.Internal("failed to persist turn", err)
	}

	rc.Info("turn completed", slog.Int64(observability.LogFieldDuration, rc.DurationMs()))
	return aiMessage, nil
}

// DeleteConversation removes one of the caller's conversations together with
// all of its messages.
func (s *Service) DeleteConversation(ctx context.Context, userID int32, conversationID int32) error {
	if _, err := s.ownedConversation(ctx, userID, conversationID); err != nil {
		return err
	}

	if err := s.store.DeleteConversation(ctx, &store.DeleteConversation{ID: conversationID}); err != nil {
		if errors.Is(err, store.ErrConversationNotFound) {
			return svcerrors.ConversationNotFound(conversationID)
		}
		return svcerrors.Internal("failed to delete conversation", err)
	}
	return nil
}

// generateReply calls the gateway and parses its response. Any failure on the
// model side collapses into the degraded reply pair.
func (s *Service) generateReply(ctx context.Context, rc *observability.RequestContext, topicID int32, history []*store.Message, message string) *gemini.ChatReply {
	gwHistory := make([]gemini.Message, 0, len(history))
	for _, m := range history {
		gwHistory = append(gwHistory, gemini.Message{Role: string(m.Role), Content: m.Content})
	}
	if len(gwHistory) > maxHistoryMessages {
		gwHistory = gwHistory[len(gwHistory)-maxHistoryMessages:]
	}

	raw, err := s.gateway.GenerateContent(ctx, gemini.BuildSystemInstruction(topicID), gwHistory, message)
	if err != nil {
		rc.Error("gateway call failed", err)
		return &gemini.ChatReply{Reply: degradedReply, Feedback: degradedFeedback}
	}

	reply, err := gemini.ParseChatReply(raw)
	if err != nil {
		rc.Error("response parsing failed", err)
		return &gemini.ChatReply{Reply: degradedReply, Feedback: degradedFeedback}
	}
	return reply
}

// ownedConversation loads the conversation and enforces that userID owns it.
func (s *Service) ownedConversation(ctx context.Context, userID int32, conversationID int32) (*store.Conversation, error) {
	conversation, err := s.store.GetConversation(ctx, &store.FindConversation{ID: &conversationID})
	if err != nil {
		return nil, svcerrors.Internal("failed to get conversation", err)
	}
	if conversation == nil {
		return nil, svcerrors.ConversationNotFound(conversationID)
	}
	if conversation.CreatorID != userID {
		return nil, svcerrors.PermissionDenied("conversation belongs to another user")
	}
	return conversation, nil
}
