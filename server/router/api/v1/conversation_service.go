package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	svcerrors "github.com/knxxxn/UpMe/server/internal/errors"
	"github.com/knxxxn/UpMe/store"
)

type conversationResponse struct {
	ID        int32  `json:"id"`
	TopicID   int32  `json:"topicId"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type messageResponse struct {
	ID        int32   `json:"id"`
	Role      string  `json:"role"`
	Content   string  `json:"content"`
	Feedback  *string `json:"feedback"`
	CreatedAt string  `json:"createdAt"`
}

type createConversationRequest struct {
	TopicID int32 `json:"topicId"`
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply    string `json:"reply"`
	Feedback string `json:"feedback"`
}

func (s *APIV1Service) listConversations(c echo.Context) error {
	userID := currentUserID(c)

	conversations, err := s.ConversationService.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}

	result := make([]*conversationResponse, 0, len(conversations))
	for _, conversation := range conversations {
		result = append(result, convertConversation(conversation))
	}
	return c.JSON(http.StatusOK, result)
}

func (s *APIV1Service) createConversation(c echo.Context) error {
	userID := currentUserID(c)

	request := &createConversationRequest{TopicID: 6}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	conversation, err := s.ConversationService.StartConversation(c.Request().Context(), userID, request.TopicID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, convertConversation(conversation))
}

func (s *APIV1Service) getMessages(c echo.Context) error {
	userID := currentUserID(c)
	conversationID, err := pathConversationID(c)
	if err != nil {
		return err
	}

	messages, err := s.ConversationService.GetMessages(c.Request().Context(), userID, conversationID)
	if err != nil {
		return toHTTPError(err)
	}

	result := make([]*messageResponse, 0, len(messages))
	for _, message := range messages {
		result = append(result, &messageResponse{
			ID:        message.ID,
			Role:      string(message.Role),
			Content:   message.Content,
			Feedback:  message.Feedback,
			CreatedAt: formatTs(message.CreatedTs),
		})
	}
	return c.JSON(http.StatusOK, result)
}

func (s *APIV1Service) sendMessage(c echo.Context) error {
	userID := currentUserID(c)
	conversationID, err := pathConversationID(c)
	if err != nil {
		return err
	}

	request := &sendMessageRequest{}
	if err := c.Bind(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	if !s.chatLimiter.Allow(userID) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many turns, slow down")
	}

	ctx := c.Request().Context()
	if err := s.chatSemaphore.Acquire(ctx, 1); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "server is busy")
	}
	defer s.chatSemaphore.Release(1)

	aiMessage, err := s.ConversationService.SendTurn(ctx, userID, conversationID, request.Message)
	if err != nil {
		return toHTTPError(err)
	}

	response := &chatResponse{Reply: aiMessage.Content}
	if aiMessage.Feedback != nil {
		response.Feedback = *aiMessage.Feedback
	}
	return c.JSON(http.StatusOK, response)
}

func (s *APIV1Service) deleteConversation(c echo.Context) error {
	userID := currentUserID(c)
	conversationID, err := pathConversationID(c)
	if err != nil {
		return err
	}

	if err := s.ConversationService.DeleteConversation(c.Request().Context(), userID, conversationID); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "대화가 삭제되었습니다."})
}

func (s *APIV1Service) chatHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "gemini-chat",
	})
}

func convertConversation(conversation *store.Conversation) *conversationResponse {
	return &conversationResponse{
		ID:        conversation.ID,
		TopicID:   conversation.TopicID,
		Title:     conversation.Title,
		CreatedAt: formatTs(conversation.CreatedTs),
		UpdatedAt: formatTs(conversation.UpdatedTs),
	}
}

func formatTs(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}

func pathConversationID(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid conversation id")
	}
	return int32(id), nil
}

// toHTTPError maps a service error code onto an HTTP status.
func toHTTPError(err error) error {
	switch svcerrors.GetCodeFromError(err, svcerrors.ErrCodeInternal) {
	case svcerrors.ErrCodeOwnerNotFound, svcerrors.ErrCodeConversationNotFound:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case svcerrors.ErrCodePermissionDenied:
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case svcerrors.ErrCodeInvalidArgument:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
