package v1

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/semaphore"

	"github.com/knxxxn/UpMe/internal/profile"
	"github.com/knxxxn/UpMe/plugin/gemini"
	upmemiddleware "github.com/knxxxn/UpMe/server/middleware"
	"github.com/knxxxn/UpMe/server/service/conversation"
	"github.com/knxxxn/UpMe/store"
)

// maxConcurrentChats bounds in-flight model calls so a burst of slow upstream
// requests cannot pile up goroutines.
const maxConcurrentChats = 8

// Per-user turn budget. Each turn is a paid model call.
const (
	turnInterval = 2 * time.Second
	turnBurst    = 5
)

type APIV1Service struct {
	Secret              string
	Profile             *profile.Profile
	Store               *store.Store
	ConversationService *conversation.Service

	chatSemaphore *semaphore.Weighted
	chatLimiter   *upmemiddleware.PerUserRateLimiter
}

func NewAPIV1Service(secret string, profile *profile.Profile, store *store.Store, logger *slog.Logger) (*APIV1Service, error) {
	cfg := gemini.NewConfigFromProfile(profile)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := gemini.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &APIV1Service{
		Secret:  secret,
		Profile: profile,
		Store:   store,
		ConversationService: conversation.NewService(
			store, client, tokenOwnerVerifier{}, logger,
		),
		chatSemaphore: semaphore.NewWeighted(maxConcurrentChats),
		chatLimiter:   upmemiddleware.NewPerUserRateLimiter(turnInterval, turnBurst),
	}, nil
}

// RegisterRoutes mounts the conversation API on the given Echo instance.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo) {
	apiGroup := echoServer.Group("/api/v1")
	apiGroup.Use(middleware.CORS())

	apiGroup.GET("/chat/health", s.chatHealth)

	authGroup := apiGroup.Group("", JWTMiddleware(s.Secret))
	authGroup.GET("/conversations", s.listConversations)
	authGroup.POST("/conversations", s.createConversation)
	authGroup.GET("/conversations/:id/messages", s.getMessages)
	authGroup.POST("/conversations/:id/messages", s.sendMessage)
	authGroup.DELETE("/conversations/:id", s.deleteConversation)
}
