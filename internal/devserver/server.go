// Package devserver is a stub chat backend for local smoke testing.
// It speaks the same {"message"} -> {"reply"} contract as the real service.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang/glog"
)

// Responder produces the reply for one message
type Responder func(ctx context.Context, message string) (string, error)

// Echo answers "You said: <message>"
func Echo(_ context.Context, message string) (string, error) {
	return "You said: " + message, nil
}

type chatRequest struct {
	Message *string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter wires POST /chat to respond
func NewRouter(respond Responder) http.Handler {
	if respond == nil {
		respond = Echo
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/chat", func(w http.ResponseWriter, req *http.Request) {
		var payload chatRequest
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
		if payload.Message == nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
			return
		}

		reply, err := respond(req.Context(), *payload.Message)
		if err != nil {
			glog.Warningf("devserver: responder failed: %v", err)
			respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "responder failed"})
			return
		}

		glog.V(1).Infof("devserver: [%s] %q -> %q", middleware.GetReqID(req.Context()), *payload.Message, reply)
		respondJSON(w, http.StatusOK, chatResponse{Reply: reply})
	})

	return r
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Run serves the stub backend on addr until ctx is cancelled
func Run(ctx context.Context, addr string, respond Responder) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(respond),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		glog.Infof("devserver: listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("dev backend stopped: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down dev backend: %w", err)
		}
		return nil
	}
}
