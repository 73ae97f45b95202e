// internal/httpserver/server.go
//
// HTTP adapter between remote presentation clients and game sessions.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/catalog".
//   - Session endpoints: POST /session creates a session and returns a signed token;
//     GET /session, POST /session/drop, POST /session/restart, DELETE /session
//     require that token.
//   - GET /session/ws streams listener updates and accepts drop/restart messages.
//
// Notes:
//   - The adapter holds no game rules; it forwards typed events to play.Table.
//   - Tokens are accepted from the Authorization header, the session cookie,
//     or a ?token= query parameter (browsers cannot set headers on WebSockets).
//   - The WebSocket route sits outside the request timeout.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vocabdrop/internal/game"
	"github.com/robalobadob/vocabdrop/internal/play"
	"github.com/robalobadob/vocabdrop/internal/store"
	"github.com/robalobadob/vocabdrop/internal/vocab"
)

const sessionCookieName = "vocab_session"

// Config carries the adapter settings that are not game rules.
type Config struct {
	ClientOrigin  string
	SessionSecret string
	SessionTTL    time.Duration
	TickInterval  time.Duration
	DailySalt     string
	Secure        bool // production cookies
}

// Server bundles router, session registry and catalog.
type Server struct {
	r        *chi.Mux
	store    store.Store
	catalog  *vocab.Catalog
	settings game.Settings
	cfg      Config
	tokens   *tokenIssuer
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, cat *vocab.Catalog, settings game.Settings, cfg Config) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		store:    st,
		catalog:  cat,
		settings: settings,
		cfg:      cfg,
		tokens:   newTokenIssuer(cfg.SessionSecret, cfg.SessionTTL),
		now:      time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)        // add X-Request-ID
	s.r.Use(chimw.RealIP)           // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)        // recover from panics
	s.r.Use(jsonContentType)        // default JSON responses
	s.r.Use(cors(s.clientOrigin())) // credentials-friendly CORS

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"vocabdrop","endpoints":["/health","POST /session","POST /session/drop","POST /session/restart","GET /session/ws"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/catalog", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]int{
				"entries":       s.catalog.Len(),
				"itemsPerRound": s.settings.ItemsPerRound,
				"liveSessions":  s.store.Len(),
			})
		})

		r.Post("/session", s.handleNewSession)
		r.With(s.requireSession).Get("/session", s.handleGetSession)
		r.With(s.requireSession).Post("/session/drop", s.handleDrop)
		r.With(s.requireSession).Post("/session/restart", s.handleRestart)
		r.With(s.requireSession).Delete("/session", s.handleEndSession)
	})

	s.r.With(s.requireSession).Get("/session/ws", s.handleWS)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

const defaultClientOrigin = "http://localhost:5173"

// clientOrigin is the single browser origin allowed to call the adapter.
func (s *Server) clientOrigin() string {
	if s.cfg.ClientOrigin == "" {
		return defaultClientOrigin
	}
	return s.cfg.ClientOrigin
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ctxTableKey is the context key type for the caller's *play.Table.
type ctxTableKey struct{}

// requireSession resolves the session token to a live table and injects it into the request context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := s.tokens.Parse(sessionToken(r))
		if err != nil {
			http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		t, err := s.store.Get(r.Context(), id)
		if err != nil {
			http.Error(w, `{"error":"session_not_found"}`, http.StatusNotFound)
			return
		}
		ctx := context.WithValue(r.Context(), ctxTableKey{}, t)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func tableFrom(r *http.Request) *play.Table {
	t, _ := r.Context().Value(ctxTableKey{}).(*play.Table)
	return t
}

// sessionToken extracts a token from the Authorization header, cookie, or query string.
func sessionToken(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return r.URL.Query().Get("token")
}

// setSessionCookie writes the session token cookie with appropriate security attributes.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.cfg.Secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// clearSessionCookie deletes the session token cookie.
func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Secure,
		MaxAge:   -1,
	})
}
