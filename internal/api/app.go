package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/shelterrights/shelterrights-api/internal/affordability"
	"github.com/shelterrights/shelterrights-api/internal/config"
	"github.com/shelterrights/shelterrights-api/internal/database"
	"github.com/shelterrights/shelterrights-api/internal/genai"
	"github.com/shelterrights/shelterrights-api/internal/logging"
	"github.com/shelterrights/shelterrights-api/internal/ratelimit"
	"github.com/shelterrights/shelterrights-api/internal/server"
	"github.com/shelterrights/shelterrights-api/internal/stats"
	"github.com/teris-io/shortid"
	"go.uber.org/zap"
)

const calculationHistoryLimit = 10

type App struct {
	log             *zap.Logger
	db              database.Repository
	srv             *http.Server
	hub             *server.Hub
	stats           stats.StatsProvider
	advisor         *genai.Advisor
	limiter         ratelimit.Limiter
	chat            *TenantChat
	profiles        *ProfileService
	signingKey      []byte
	allowedOrigins  []string
	generateShortId func() (string, error)
	now             func() time.Time
}

func NewApp(mux *http.ServeMux, logger *zap.Logger, hub *server.Hub, db database.Repository, su stats.StatsProvider,
	advisor *genai.Advisor, limiter ratelimit.Limiter, cfg *config.Config) *App {
	if su == nil {
		su = stats.Nop{}
	}
	if limiter == nil {
		limiter = ratelimit.Noop{}
	}
	su.RegisterMetric(stats.RateLimited)
	su.RegisterMetric(stats.CampaignsCreated)
	su.RegisterMetric(stats.SignaturesCreated)

	s := &App{
		log:             logger,
		db:              db,
		hub:             hub,
		stats:           su,
		advisor:         advisor,
		limiter:         limiter,
		chat:            NewTenantChat(db, advisor, logger),
		profiles:        NewProfileService(db, logger),
		signingKey:      cfg.SigningKey,
		allowedOrigins:  cfg.AllowedOrigins,
		generateShortId: shortid.Generate,
		now:             time.Now,
	}

	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("GET /healthz", s.healthCheck)

	mux.HandleFunc("POST /api/property/search", s.requireAuth(s.rateLimit(s.searchProperties)))

	mux.HandleFunc("POST /api/renter/calculate-rent", s.optionalAuth(s.rateLimit(s.calculateRent)))
	mux.HandleFunc("GET /api/renter/calculations", s.requireAuth(s.listCalculations))
	mux.HandleFunc("GET /api/renter/calculations/export", s.requireAuth(s.exportCalculations))
	mux.HandleFunc("POST /api/renter/chat", s.optionalAuth(s.rateLimit(s.chatTenantRights)))
	mux.HandleFunc("GET /api/renter/chat-history", s.requireAuth(s.chatHistory))
	mux.HandleFunc("GET /api/renter/campaigns", s.listCampaigns)
	mux.HandleFunc("POST /api/renter/campaigns", s.requireAuth(s.rateLimit(s.createCampaign)))
	mux.HandleFunc("POST /api/renter/campaigns/{id}/sign", s.requireAuth(s.signCampaign))

	mux.HandleFunc("GET /api/users/profile", s.requireAuth(s.getProfile))
	mux.HandleFunc("PUT /api/users/profile", s.requireAuth(s.updateProfile))
	mux.HandleFunc("POST /api/users/setup", s.requireAuth(s.setupProfile))
	mux.HandleFunc("POST /api/users/switch-mode", s.requireAuth(s.switchMode))

	mux.HandleFunc("POST /api/buyer/mortgage", calculate[mortgageRequest](s, affordability.PurchaseCost))
	mux.HandleFunc("POST /api/buyer/rent-vs-buy", calculate[rentVsBuyRequest](s, affordability.RentVsBuy))
	mux.HandleFunc("POST /api/buyer/buying-power", calculate[buyingPowerRequest](s, affordability.BuyingPower))
	mux.HandleFunc("POST /api/buyer/assistance", calculate[assistanceRequest](s, affordability.EligiblePrograms))

	mux.HandleFunc("POST /api/owner/property-tax", calculate[propertyTaxRequest](s, affordability.PropertyTaxProjection))
	mux.HandleFunc("POST /api/owner/refinance", calculate[refinanceRequest](s, affordability.RefinanceSavings))
	mux.HandleFunc("POST /api/owner/hoa", calculate[hoaRequest](s, affordability.HOAIncrease))
	mux.HandleFunc("POST /api/owner/foreclosure", calculate[foreclosureRequest](s, affordability.ForeclosureTimeline))

	mux.HandleFunc("GET /ws/assistant", s.requireAuth(s.serveWs))

	mux.HandleFunc("/", s.notFound)

	var h http.Handler = handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept", "Authorization"}),
		handlers.AllowCredentials(),
	)(mux)

	h = handlers.CombinedLoggingHandler(logging.NewWriter(logger, "http access"), h)
	h = s.errorHandler(h)

	s.srv = &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler exposes the fully wrapped handler chain.
func (s *App) Handler() http.Handler {
	return s.srv.Handler
}

func (s *App) Start() error {
	s.log.Info("starting server", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *App) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
