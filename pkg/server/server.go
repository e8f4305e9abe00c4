package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/eightball-ai/eightball/pkg/config"
	"github.com/eightball-ai/eightball/pkg/history"
	"github.com/eightball-ai/eightball/pkg/models"
	"github.com/eightball-ai/eightball/pkg/oracle"
)

// Server answers questions over HTTP.
type Server struct {
	cfg     *config.Config
	oracle  *oracle.Oracle
	history *history.Logger
	mux     *http.ServeMux
}

type askResponse struct {
	Answer string `json:"answer"`
}

// New creates a Server wired with its dependencies. The history logger may be
// nil when the ask log is disabled.
func New(cfg *config.Config, o *oracle.Oracle, h *history.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		oracle:  o,
		history: h,
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc("/", s.handleAsk)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server with graceful shutdown support.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("eightball listening on %s", s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	r.Body.Close()

	// An empty body is not an error: answer with the fixed text and touch
	// neither the store nor the generator.
	if len(body) == 0 {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, "No question provided")
		return
	}

	if !utf8.Valid(body) {
		writeJSONError(w, http.StatusBadRequest, "request body is not valid text")
		return
	}
	question := string(body)

	start := time.Now()
	res, err := s.oracle.Answer(r.Context(), question)
	if err != nil {
		log.Printf("resolve %q: %v", question, err)
		if errors.Is(err, oracle.ErrGenerationFailed) {
			writeJSONError(w, http.StatusBadGateway, "answer generation failed")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "answer store unavailable")
		return
	}

	if s.history != nil {
		entry := models.AskEntry{
			Question:  question,
			Answer:    res.Answer,
			CacheHit:  res.CacheHit,
			LatencyMs: time.Since(start).Milliseconds(),
			CreatedAt: time.Now().UTC(),
		}
		go func() {
			if err := s.history.Log(context.Background(), entry); err != nil {
				log.Printf("history log error: %v", err)
			}
		}()
	}

	w.Header().Set("Content-Type", "application/json")
	if res.CacheHit {
		w.Header().Set("X-Oracle-Cache", "hit")
	} else {
		w.Header().Set("X-Oracle-Cache", "miss")
	}
	if err := json.NewEncoder(w).Encode(askResponse{Answer: res.Answer}); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"error":{"message":%q,"code":%d}}`, message, code)
}
