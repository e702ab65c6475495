package wire

import (
	"net/http"

	"shop-mkononi/internal/adaptor"
	"shop-mkononi/internal/data/repository"
	"shop-mkononi/internal/usecase"
	"shop-mkononi/pkg/media"
	"shop-mkononi/pkg/middleware"
	"shop-mkononi/pkg/sms"
	"shop-mkononi/pkg/token"
	"shop-mkononi/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) (*App, error) {
	tokens := token.NewManager(
		config.Session.Secret,
		config.Session.ExpiryDays,
		config.Session.CookieName,
	)

	uploader, err := media.NewCloudinaryUploader(config.Cloudinary, logger)
	if err != nil {
		return nil, err
	}

	sender := sms.NewSender(config.Twilio, logger)

	service := usecase.NewService(repo, tokens, uploader, sender, config, logger)
	handler := adaptor.NewHandler(service, tokens, logger)

	router := setupRouter(handler, repo, tokens, logger)

	return &App{
		Router: router,
	}, nil
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	tokens *token.Manager,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, tokens, logger)
	wireVerification(r, handler.Verification, tokens, logger)
	wireAdmin(r, handler.Admin, tokens, logger)
	wireShop(r, handler.Shop, tokens, logger)
	wireProduct(r, handler.Product, tokens, logger)
	wirePages(r, repo, tokens, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
