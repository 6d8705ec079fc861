package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/habitquest/habitquest-go/internal/economy"
	"github.com/habitquest/habitquest-go/internal/eventlog"
	"github.com/habitquest/habitquest-go/internal/handler"
	"github.com/habitquest/habitquest-go/internal/logger"
	"github.com/habitquest/habitquest-go/internal/metrics"
	"github.com/habitquest/habitquest-go/internal/quest"
	"github.com/habitquest/habitquest-go/internal/ratelimit"
	"github.com/habitquest/habitquest-go/internal/skill"
	"github.com/habitquest/habitquest-go/internal/sse"
	"github.com/habitquest/habitquest-go/internal/streak"
	"github.com/habitquest/habitquest-go/internal/subscription"
	"github.com/habitquest/habitquest-go/internal/user"
)

// Config holds the HTTP-facing settings
type Config struct {
	Port               int
	APIKey             string
	TrustedProxies     []string
	CORSAllowedOrigins []string
}

// Services groups the domain services the routes dispatch to
type Services struct {
	Users         user.Service
	Quests        quest.Service
	Streaks       streak.Service
	Economy       economy.Service
	Subscriptions subscription.Service
	Activity      eventlog.Service
	Catalog       *skill.Catalog
	// Live is optional; the stream route is only mounted when set
	Live *sse.Hub
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
	detector   *SuspiciousActivityDetector
}

// NewServer creates a new Server instance. A nil limiter disables rate limiting.
func NewServer(cfg Config, ready handler.ReadinessChecker, svcs Services, limiter *ratelimit.Limiter) *Server {
	r := chi.NewRouter()
	detector := NewSuspiciousActivityDetector()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", HeaderAPIKey},
			MaxAge:         CORSMaxAge,
		}))
	}
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBytes))

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(ready))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	profiles := handler.NewProfileHandler(svcs.Users, svcs.Catalog)
	quests := handler.NewQuestHandler(svcs.Quests)
	streaks := handler.NewStreakHandler(svcs.Streaks)
	gold := handler.NewGoldHandler(svcs.Economy)
	founders := handler.NewSubscriptionHandler(svcs.Subscriptions)
	activity := handler.NewActivityHandler(svcs.Activity)

	r.Route("/api/v1", func(r chi.Router) {
		// Streams outlive the request timeout
		if svcs.Live != nil {
			r.Get("/stream", sse.Handler(svcs.Live))
		}

		// Stripe retries on its own schedule; keep it out of the client budget
		r.With(middleware.Timeout(RequestTimeout)).Post("/webhooks/stripe", founders.HandleStripeWebhook)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(RequestTimeout))
			if limiter != nil {
				r.Use(limiter.Middleware)
			}

			r.Route("/profiles", func(r chi.Router) {
				r.Post("/", profiles.HandleCreateProfile)
				r.Get("/{userID}", profiles.HandleGetProfile)
				r.Get("/{userID}/skills", profiles.HandleGetProfileSkills)
				r.Get("/{userID}/activity", activity.HandleGetActivity)
			})
			r.Get("/skills", profiles.HandleListSkills)

			r.Route("/quests", func(r chi.Router) {
				r.Post("/", quests.HandleCreateQuest)
				r.Get("/{questID}", quests.HandleGetQuest)
				r.Post("/{questID}/complete", quests.HandleCompleteQuest)
			})

			r.Route("/streaks/{userID}", func(r chi.Router) {
				r.Get("/", streaks.HandleGetStatus)
				r.Post("/claim", streaks.HandleClaimDaily)
				r.Post("/freezes", streaks.HandlePurchaseFreeze)
				r.Get("/freezes/affordable", streaks.HandleAffordability)
			})

			r.Route("/gold", func(r chi.Router) {
				r.Post("/spend", gold.HandleSpend)
				r.Get("/{userID}/history", gold.HandleHistory)
			})

			r.Route("/founders", func(r chi.Router) {
				r.Post("/reserve", founders.HandleReserve)
				r.Get("/availability", founders.HandleAvailability)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Post("/skills/grant", profiles.HandleGrantSkill)
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		router:   r,
		detector: detector,
	}
}

// Handler exposes the router for in-process testing
func (s *Server) Handler() http.Handler {
	return s.router
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health checks and scrapes are too chatty to log
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) ||
				strings.EqualFold(k, handler.HeaderStripeSignature) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
