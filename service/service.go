package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/drbusiness/platform/internal/auth"
	"github.com/drbusiness/platform/internal/brand"
	"github.com/drbusiness/platform/internal/handlers"
	"github.com/drbusiness/platform/internal/imagegen"
	"github.com/drbusiness/platform/internal/imagehost"
	"github.com/drbusiness/platform/internal/jobs"
	"github.com/drbusiness/platform/internal/llm"
	"github.com/drbusiness/platform/internal/prescription"
	"github.com/drbusiness/platform/internal/stripe"
	"github.com/drbusiness/platform/storage"
)

type Service struct {
	storage *storage.Storage
	config  *Config
	tokens  *auth.Service

	authHandler    *handlers.AuthHandler
	clientHandler  *handlers.ClientHandler
	aiHandler      *handlers.AIHandler
	studioHandler  *handlers.StudioHandler
	paymentHandler *handlers.PaymentHandler

	llmClient *llm.GeminiClient
	trending  *jobs.TrendingTopicsRefresher
}

// New wires the full service. A missing Gemini key leaves the AI surface in
// a degraded mode where its endpoints answer 503; everything else still works.
func New(ctx context.Context, store *storage.Storage, config *Config) *Service {
	tokens := auth.NewService(config.JWT.Secret, config.JWT.TTL)

	var (
		llmClient *llm.GeminiClient
		generator *prescription.Generator
		assembler *prescription.Assembler
		trending  *jobs.TrendingTopicsRefresher
		editor    brand.Editor
	)
	if config.Gemini.APIKey != "" {
		client, err := llm.NewGeminiClient(ctx, config.Gemini.APIKey, config.Gemini.TextModel)
		if err != nil {
			slog.Error("failed to initialize Gemini client, AI endpoints disabled", "error", err)
		} else {
			llmClient = client
			imageClient := imagegen.NewClient(config.Gemini.APIKey, config.Gemini.ImageModel, config.Gemini.EditModel)
			editor = imageClient
			brander := brand.New(imageClient, brand.DefaultOptions())
			uploader := imagehost.NewClient(config.ImageHost.APIKey, config.ImageHost.Endpoint)

			generator = prescription.NewGenerator(llmClient)
			assembler = prescription.NewAssembler(generator, imageClient, brander, uploader, config.Pipeline.ImageDelay)

			trending = jobs.NewTrendingTopicsRefresher(generator)
			trending.Start(ctx)
		}
	} else {
		slog.Warn("GEMINI_API_KEY not set, AI endpoints disabled")
	}

	var topics handlers.TopicsProvider
	if trending != nil {
		topics = trending
	}

	checkout := stripe.NewCheckoutService(config.Stripe.SecretKey, config.BaseURL)
	if checkout == nil {
		slog.Warn("STRIPE_SECRET_KEY not set, card checkout disabled")
	}

	return &Service{
		storage:        store,
		config:         config,
		tokens:         tokens,
		authHandler:    handlers.NewAuthHandler(store.Queries, tokens, config.Admin.Email, config.Admin.Password),
		clientHandler:  handlers.NewClientHandler(store.Queries),
		aiHandler:      handlers.NewAIHandler(assembler, generator, store.Queries, topics),
		studioHandler:  handlers.NewStudioHandler(editor),
		paymentHandler: handlers.NewPaymentHandler(store.Queries, checkout, config.Upload.Dir, config.Upload.MaxSize),
		llmClient:      llmClient,
		trending:       trending,
	}
}

// Shutdown stops background jobs and releases the model client.
func (s *Service) Shutdown() {
	if s.trending != nil {
		s.trending.Stop()
	}
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			slog.Warn("failed to close Gemini client", "error", err)
		}
	}
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	// Health check - no auth
	e.GET("/health", s.handleHealth)

	api := e.Group("/api")
	api.Use(auth.Middleware(s.tokens))

	// Public: login, registration, pricing, checkout
	api.POST("/auth/login", s.authHandler.HandleLogin)
	api.GET("/packages", handlers.HandleListPackages)
	api.POST("/clients", s.clientHandler.HandleCreate)
	api.POST("/checkout/session", s.paymentHandler.HandleCreateCheckoutSession)
	api.GET("/checkout/success", s.paymentHandler.HandleCheckoutSuccess)

	// Payment proof upload happens during registration, before the client can
	// log in, so it stays public.
	api.POST("/clients/:id/payment-proof", s.paymentHandler.HandleUploadPaymentProof)

	// Client records: the owning client or an admin
	api.GET("/clients/:id", s.clientHandler.HandleGet, auth.RequireClient())
	api.PUT("/clients/:id", s.clientHandler.HandleUpdate, auth.RequireClient())
	api.GET("/clients/:id/prescription.pdf", s.handlePrescriptionPDF, auth.RequireClient())

	// Admin review queue
	api.GET("/clients", s.clientHandler.HandleList, auth.RequireAdmin())
	api.POST("/clients/:id/activate", s.clientHandler.HandleActivate, auth.RequireAdmin())
	api.GET("/clients/:id/payment-proofs", s.paymentHandler.HandleListPaymentProofs, auth.RequireAdmin())

	// Generation pipeline. The consultation flow runs before registration, so
	// these are public like the rest of the intake funnel.
	ai := api.Group("/ai")
	ai.POST("/prescription", s.aiHandler.HandleGeneratePrescription)
	ai.POST("/week-plan", s.aiHandler.HandleGenerateWeekPlan)
	ai.POST("/caption-variations", s.aiHandler.HandleCaptionVariations)
	ai.POST("/elaborate-step", s.aiHandler.HandleElaborateStep)
	ai.POST("/analytics", s.aiHandler.HandleAnalytics)
	ai.POST("/enhance-prompt", s.aiHandler.HandleEnhancePrompt)
	ai.GET("/trending-topics", s.aiHandler.HandleTrendingTopics)
	ai.POST("/post-image", s.aiHandler.HandleRegeneratePostImage)

	// Image workbench
	studio := api.Group("/studio")
	studio.POST("/edit", s.studioHandler.HandleEditImage)
	studio.POST("/brand", s.studioHandler.HandleBrandImage)
	studio.POST("/design-card", s.studioHandler.HandleDesignCard)
	studio.POST("/share-links", s.studioHandler.HandleShareLinks)
}

func (s *Service) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":      "ok",
		"environment": s.config.Environment,
	})
}
