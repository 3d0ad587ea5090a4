package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shramsaathi/marketplace/internal/auth"
	"github.com/shramsaathi/marketplace/internal/config"
	"github.com/shramsaathi/marketplace/internal/db"
	"github.com/shramsaathi/marketplace/internal/matching"
	"github.com/shramsaathi/marketplace/internal/server/middleware"
	"github.com/shramsaathi/marketplace/internal/server/ratelimit"
)

const otpPurgeInterval = time.Minute

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	store       Store
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	authHandler *AuthHandler

	matchPolicy     matching.PolicyName
	matchLimit      int
	hardTradeFilter bool
	weights         matching.WeightTable

	purgeStop chan struct{}
}

// Config holds server configuration
type Config struct {
	Port            int
	DatabaseURL     string
	MatchPolicy     string
	MatchLimit      int
	HardTradeFilter bool
	Weights         matching.WeightTable
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	matchLimit := cfg.MatchLimit
	if matchLimit <= 0 {
		matchLimit = matching.DefaultLimit
	}
	policyName := matching.PolicyName(cfg.MatchPolicy)
	if policyName == "" {
		policyName = matching.DefaultPolicy
	}
	if _, err := matching.PolicyFor(policyName); err != nil {
		return nil, err
	}
	weights := cfg.Weights
	if weights == (matching.WeightTable{}) {
		weights = matching.DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		db:              database,
		store:           database,
		matchPolicy:     policyName,
		matchLimit:      matchLimit,
		hardTradeFilter: cfg.HardTradeFilter,
		weights:         weights,
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Initialize auth services
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)

	otpConfig, err := config.NewOTPConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create OTP config: %w", err)
	}
	s.authHandler = NewAuthHandler(auth.NewOTPService(otpConfig), s.jwtService)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request router.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	authed := middleware.Auth(s.jwtService.AsTokenValidator())
	employerOnly := middleware.RequireRole("employer")
	workerOnly := middleware.RequireRole("worker")

	mux.HandleFunc("GET /health", s.handleHealth)

	// OTP auth
	mux.HandleFunc("POST /auth/otp/request", s.authHandler.RequestOTP)
	mux.HandleFunc("POST /auth/otp/verify", s.authHandler.VerifyOTP)

	// Workers
	mux.Handle("POST /workers", authed(workerOnly(http.HandlerFunc(s.handleCreateWorker))))
	mux.HandleFunc("GET /workers/{id}", s.handleGetWorker)
	mux.Handle("POST /workers/{id}/verify", authed(employerOnly(http.HandlerFunc(s.handleVerifyWorker))))
	mux.HandleFunc("GET /workers/{id}/matches", s.handleWorkerMatches)

	// Jobs
	mux.Handle("POST /jobs", authed(employerOnly(http.HandlerFunc(s.handleCreateJob))))
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/search", s.handleSearchJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.Handle("PATCH /jobs/{id}/status", authed(employerOnly(http.HandlerFunc(s.handleUpdateJobStatus))))
	mux.HandleFunc("GET /jobs/{id}/matches", s.handleJobMatches)

	// Applications
	mux.Handle("POST /jobs/{id}/applications", authed(workerOnly(http.HandlerFunc(s.handleCreateApplication))))
	mux.Handle("GET /jobs/{id}/applications", authed(employerOnly(http.HandlerFunc(s.handleListApplications))))

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Drop expired pending codes in the background
	s.purgeStop = make(chan struct{})
	go s.purgeLoop()

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	close(s.purgeStop)
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

func (s *Server) purgeLoop() {
	ticker := time.NewTicker(otpPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.authHandler.otpService.Purge()
		case <-s.purgeStop:
			return
		}
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is deliberately
// ignored unless a trusted proxy list is introduced.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// policyFor resolves the scoring policy for a request-level override. An
// empty name selects the configured default; the weighted policy always
// carries the configured weight table.
func (s *Server) policyFor(name string) (matching.Policy, error) {
	policyName := matching.PolicyName(name)
	if policyName == "" {
		policyName = s.matchPolicy
	}
	if policyName == matching.PolicyWeighted {
		return matching.NewWeightedPolicy(s.weights)
	}
	return matching.PolicyFor(policyName)
}

// newMatcher builds a matcher with the given policy and the configured
// eligibility options.
func (s *Server) newMatcher(policy matching.Policy) *matching.Matcher {
	opts := []matching.Option{}
	if s.hardTradeFilter {
		opts = append(opts, matching.WithHardTradeFilter())
	}
	return matching.NewMatcher(policy, opts...)
}
