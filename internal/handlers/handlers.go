package handlers

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"cleverai/api/internal/config"
	"cleverai/api/internal/llm"
	"cleverai/api/internal/middleware"
	"cleverai/api/internal/repository"
	"cleverai/api/internal/service"
	"cleverai/api/internal/session"
)

// Pinger reports backend reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the backends the handlers run on. Archiver, SessionPinger
// and RepositoryPinger may be nil.
type Dependencies struct {
	Users            repository.UserRepository
	Contacts         repository.ContactRepository
	Sessions         *session.Manager
	Hasher           service.PasswordHasher
	LLM              llm.Client
	Archiver         service.ContactArchiver
	SessionPinger    Pinger
	RepositoryPinger Pinger
}

type HandlerSet struct {
	log              zerolog.Logger
	cfg              *config.AppConfig
	authService      *service.AuthService
	chatService      *service.ChatService
	contactService   *service.ContactService
	sessions         *session.Manager
	sessionPinger    Pinger
	repositoryPinger Pinger
}

func NewHandlerSet(log zerolog.Logger, cfg *config.AppConfig, deps Dependencies) (HandlerSet, error) {
	registerValidation()

	auth, err := service.NewAuthService(deps.Users, deps.Sessions, deps.Hasher, log)
	if err != nil {
		return HandlerSet{}, fmt.Errorf("auth service: %w", err)
	}
	chat := service.NewChatService(deps.LLM, cfg.OpenAI.Timeout, log)
	contact := service.NewContactService(deps.Contacts, deps.Archiver, log)

	return HandlerSet{
		log:              log,
		cfg:              cfg,
		authService:      auth,
		chatService:      chat,
		contactService:   contact,
		sessions:         deps.Sessions,
		sessionPinger:    deps.SessionPinger,
		repositoryPinger: deps.RepositoryPinger,
	}, nil
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)
	router.GET("/config", h.SiteConfig)
	router.POST("/contact", h.SubmitContact)

	auth := router.Group("/auth")
	auth.POST("/register", h.RegisterUser)
	auth.POST("/login", h.Login)

	protected := router.Group("")
	protected.Use(middleware.Auth(h.sessions, h.log))
	protected.POST("/auth/logout", h.Logout)
	protected.GET("/auth/me", h.Me)
	protected.POST("/chat", h.Chat)
}
