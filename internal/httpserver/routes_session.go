// internal/httpserver/routes_session.go
//
// Session endpoints.
//   - POST   /session          → create and start a session, returns token + snapshot
//   - GET    /session          → current snapshot
//   - POST   /session/drop     → resolve a drop {itemId, zoneId}
//   - POST   /session/restart  → reinitialise the session
//   - DELETE /session          → close the session
//
// Modes:
//   - "normal": random seed (or an explicit one for reproducible play).
//   - "daily":  seed derived from today's UTC date and DAILY_SALT, so every
//     daily session of the day sees the same target sequence.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vocabdrop/internal/daily"
	"github.com/robalobadob/vocabdrop/internal/game"
	"github.com/robalobadob/vocabdrop/internal/play"
	"github.com/robalobadob/vocabdrop/internal/store"
)

// newSessionReq/Res payloads for POST /session.
type newSessionReq struct {
	Mode string  `json:"mode"` // "normal" | "daily"
	Seed *uint64 `json:"seed"` // optional fixed seed (normal mode only)
}
type newSessionRes struct {
	SessionID string        `json:"sessionId"`
	Token     string        `json:"token"`
	ExpiresAt int64         `json:"expiresAt"` // unix seconds
	Mode      string        `json:"mode"`
	Seed      uint64        `json:"seed"`
	Date      string        `json:"date,omitempty"` // daily mode only
	Snapshot  game.Snapshot `json:"snapshot"`
}

// handleNewSession creates a table, starts its first round and issues a session token.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.Mode == "" {
		req.Mode = "normal"
	}

	opts := play.Options{TickInterval: s.cfg.TickInterval, Logger: &log.Logger}
	var date string
	switch req.Mode {
	case "normal":
		opts.Seed = req.Seed
	case "daily":
		now := s.now()
		seed := daily.Seed(now, s.cfg.DailySalt)
		opts.Seed = &seed
		date = daily.DateKey(now)
	default:
		http.Error(w, `{"error":"unknown_mode"}`, http.StatusBadRequest)
		return
	}

	id := uuid.NewString()
	t, err := play.NewTable(id, s.catalog, s.settings, opts)
	if err != nil {
		log.Error().Err(err).Msg("create session")
		code := http.StatusInternalServerError
		if errors.Is(err, game.ErrConfiguration) {
			code = http.StatusServiceUnavailable
		}
		http.Error(w, `{"error":"session_unavailable"}`, code)
		return
	}
	if err := s.store.Save(r.Context(), t); err != nil {
		t.Close()
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	tok, exp, err := s.tokens.Sign(id)
	if err != nil {
		_ = s.store.Delete(r.Context(), id)
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	s.setSessionCookie(w, tok, exp)

	snap := t.Start()
	log.Info().Str("session", id).Str("mode", req.Mode).Msg("session created")
	_ = json.NewEncoder(w).Encode(newSessionRes{
		SessionID: id,
		Token:     tok,
		ExpiresAt: exp.Unix(),
		Mode:      req.Mode,
		Seed:      t.Seed(),
		Date:      date,
		Snapshot:  snap,
	})
}

// handleGetSession returns the caller's snapshot.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	t := tableFrom(r)
	_ = json.NewEncoder(w).Encode(newSnapshotRes(t, t.Snapshot()))
}

type snapshotRes struct {
	SessionID string        `json:"sessionId"`
	CreatedAt int64         `json:"createdAt"` // unix seconds
	Snapshot  game.Snapshot `json:"snapshot"`
}

func newSnapshotRes(t *play.Table, snap game.Snapshot) snapshotRes {
	return snapshotRes{SessionID: t.ID(), CreatedAt: t.CreatedAt().Unix(), Snapshot: snap}
}

// dropReq/Res payloads for POST /session/drop.
type dropReq struct {
	ItemID game.ItemID `json:"itemId"`
	ZoneID game.ZoneID `json:"zoneId"` // defaults to the answer zone
}
type dropRes struct {
	Outcome  game.Outcome  `json:"outcome"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// handleDrop forwards a drop to the table. Stale drops answer 200 with outcome "ignored".
func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	var req dropReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.ItemID == "" {
		http.Error(w, `{"error":"item_required"}`, http.StatusBadRequest)
		return
	}
	if req.ZoneID == "" {
		req.ZoneID = game.DefaultZone
	}
	out, snap := tableFrom(r).Drop(req.ItemID, req.ZoneID)
	_ = json.NewEncoder(w).Encode(dropRes{Outcome: out, Snapshot: snap})
}

// handleRestart reinitialises the caller's session.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	t := tableFrom(r)
	_ = json.NewEncoder(w).Encode(newSnapshotRes(t, t.Restart()))
}

// handleEndSession closes the caller's session and clears the cookie.
func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	t := tableFrom(r)
	if err := s.store.Delete(r.Context(), t.ID()); err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Warn().Err(err).Str("session", t.ID()).Msg("delete session")
	}
	s.clearSessionCookie(w)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
