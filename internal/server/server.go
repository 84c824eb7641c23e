// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server runs the webhook HTTP endpoint and routes inbound
// Telegram updates into the prediction engine, the bookkeeping store, and
// back out through the Bot API client.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dkouassi/jokerbot/internal/predictor"
	"github.com/dkouassi/jokerbot/internal/ratelimit"
	"github.com/dkouassi/jokerbot/internal/store"
	"github.com/dkouassi/jokerbot/internal/telegram"
	"github.com/dkouassi/jokerbot/pkg/types"
)

// secretHeader carries the webhook secret Telegram echoes back on each
// delivery.
const secretHeader = "X-Telegram-Bot-Api-Secret-Token"

// Server owns the bot's runtime state: one engine, one store, one client.
type Server struct {
	cfg     types.AppConfig
	bot     *telegram.Client
	engine  *predictor.Engine
	store   *store.Store
	limiter *ratelimit.Limiter
	log     *slog.Logger
}

// New wires the server together. The engine is constructed here so no
// other component can reach it except through update processing.
func New(cfg types.AppConfig, bot *telegram.Client, st *store.Store, logger *slog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		bot:     bot,
		engine:  predictor.NewEngine(),
		store:   st,
		limiter: ratelimit.New(0, 0),
		log:     logger,
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /webhook", s.handleWebhook)
	mux.HandleFunc("POST /reset", s.handleReset)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("GET /{$}", s.handleHome)
	return mux
}

// Run registers the webhook when configured and serves until ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	if url := s.cfg.Server.WebhookURL; url != "" {
		full := url + "/webhook"
		if err := s.bot.SetWebhook(ctx, full, s.cfg.Server.WebhookSecret); err != nil {
			return fmt.Errorf("registering webhook %s: %w", full, err)
		}
		s.log.Info("webhook registered", "url", full)
	} else {
		s.log.Warn("no webhook URL configured; updates will not be delivered")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("server listening", "port", s.cfg.Server.Port)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if secret := s.cfg.Server.WebhookSecret; secret != "" && r.Header.Get(secretHeader) != secret {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.log.Error("malformed update", "err", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	// Processing failures are logged but still acknowledged; Telegram
	// would otherwise redeliver the same update indefinitely.
	s.processUpdate(r.Context(), update)
	fmt.Fprint(w, "OK")
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if secret := s.cfg.Server.WebhookSecret; secret != "" && r.Header.Get(secretHeader) != secret {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	s.engine.Reset()
	s.log.Info("prediction engine reset")
	writeJSON(w, map[string]string{"status": "reset"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "healthy", "service": "jokerbot"})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.engine.Snapshot())
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"message": "jokerbot is running", "status": "active"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
