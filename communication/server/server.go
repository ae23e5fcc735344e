package server

import (
	"context"
	"encoding/json"
	"errors"
	"homeworlds/communication"
	"homeworlds/game"
	"homeworlds/gamemaster"
	"homeworlds/store"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"golang.org/x/time/rate"
)

type Option func(s *Server)

// WithStore saves a snapshot after every accepted move
func WithStore(st *store.Store) Option {
	return func(s *Server) {
		s.store = st
	}
}

// WithRateLimit allows each client IP limit requests per second with bursts of burst
func WithRateLimit(limit float64, burst int) Option {
	return func(s *Server) {
		if limit > 0 && burst > 0 {
			s.limit = rate.Limit(limit)
			s.burst = burst
		}
	}
}

// Server exposes one game master over HTTP
type Server struct {
	master *gamemaster.GameMaster
	store  *store.Store
	limit  rate.Limit
	burst  int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	mux      *http.ServeMux
}

func NewServer(master *gamemaster.GameMaster, options ...Option) *Server {
	s := &Server{ // Default values
		master:   master,
		limit:    10,
		burst:    20,
		limiters: make(map[string]*rate.Limiter),
		mux:      http.NewServeMux(),
	}
	for _, option := range options {
		option(s)
	}

	s.mux.HandleFunc("GET /state", s.handleState)
	s.mux.HandleFunc("GET /moves", s.handleMoves)
	s.mux.HandleFunc("POST /probe", s.handleProbe)
	s.mux.HandleFunc("POST /play", s.handlePlay)
	if s.store != nil {
		s.mux.HandleFunc("GET /games", s.handleGames)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.limitRate(s.mux)
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info().Msgf("serving game %s on %s", s.master.ID(), addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(s.limit, s.burst)
		s.limiters[ip] = limiter
	}
	return limiter
}

func (s *Server) limitRate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !s.getLimiter(ip).Allow() {
			log.Warn().Msgf("rate limit exceeded for %s", ip)
			writeJSON(w, http.StatusTooManyRequests, communication.ErrorResponse{Message: "rate limit exceeded"})
			return
		}
		log.Debug().Msgf("%s %s from %s", r.Method, r.URL.Path, ip)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.master.Snapshot())
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, communication.Moves(s.master))
}

func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMove(w, r)
	if !ok {
		return
	}
	if err := s.master.Probe(req.Move); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMove(w, r)
	if !ok {
		return
	}
	seat := game.Seat(strings.ToUpper(string(req.Seat)))
	if !slices.Contains(s.master.State().Seats, seat) {
		writeJSON(w, http.StatusBadRequest, communication.ErrorResponse{Message: "unknown seat " + string(req.Seat)})
		return
	}

	next, err := s.master.Play(seat, req.Move)
	if err != nil {
		log.Info().Msgf("rejected %q from %s: %v", req.Move, seat, err)
		writeError(w, err)
		return
	}
	if s.store != nil {
		if err := s.store.Save(r.Context(), s.master.Snapshot()); err != nil {
			log.Error().Err(err).Msgf("failed to persist game %s", s.master.ID())
		}
	}
	writeJSON(w, http.StatusOK, next.Entry())
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.store.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list games")
		writeJSON(w, http.StatusInternalServerError, communication.ErrorResponse{Message: "failed to list games"})
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func decodeMove(w http.ResponseWriter, r *http.Request) (communication.MoveRequest, bool) {
	var req communication.MoveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, communication.ErrorResponse{Message: "invalid request body"})
		return req, false
	}
	return req, true
}

func writeError(w http.ResponseWriter, err error) {
	var re *game.RuleError
	switch {
	case errors.As(err, &re):
		writeJSON(w, http.StatusUnprocessableEntity, communication.ErrorResponse{Code: re.Code, Context: re.Context})
	case errors.Is(err, gamemaster.ErrNotYourTurn):
		writeJSON(w, http.StatusConflict, communication.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, communication.ErrorResponse{Message: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}
