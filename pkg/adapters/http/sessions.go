package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/unabs/pkg/domain"
	"github.com/aretw0/unabs/pkg/runner"
	"github.com/google/uuid"
)

func sessionOf(sess *domain.Session) Session {
	view := Session{
		Id:        sess.ID,
		Program:   sess.Program,
		Status:    SessionStatus(sess.Status),
		Steps:     int64(sess.Steps),
		Output:    sess.Output,
		Result:    sess.Result,
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
	}
	if sess.Error != "" {
		view.Error = &sess.Error
	}
	return view
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		s.logger.Error("ListSessions failed", "err", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

// CreateSession handles the POST /sessions request.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body CreateSessionJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		s.logger.Warn("CreateSession: Invalid request body", "err", err)
		return
	}
	src, err := runner.SanitizeProgram(body.Program)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id := uuid.NewString()
	if body.Id != nil && *body.Id != "" {
		id = *body.Id
	}

	sess, created, err := s.Sessions.LoadOrStart(r.Context(), id, func(ctx context.Context) (*domain.Session, error) {
		return s.Engine.Start(ctx, id, src)
	})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if !created {
		writeError(w, http.StatusConflict, fmt.Sprintf("session %s already exists", id))
		return
	}
	s.logger.Info("session created", "session_id", id)
	writeJSON(w, http.StatusCreated, sessionOf(sess))
}

// GetSession handles the GET /sessions/{id} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request, id SessionID) {
	sess, ok := s.loadSession(w, r, id)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionOf(sess))
}

// DeleteSession handles the DELETE /sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request, id SessionID) {
	if !validSessionID(w, id) {
		return
	}
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdvanceSession handles the POST /sessions/{id}/advance request.
func (s *Server) AdvanceSession(w http.ResponseWriter, r *http.Request, id SessionID, params AdvanceSessionParams) {
	if !validSessionID(w, id) {
		return
	}
	budget, err := s.budget(params.Budget)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var delta string
	sess, err := s.Sessions.Update(r.Context(), id, func(ctx context.Context, current *domain.Session) (*domain.Session, error) {
		next, out, err := s.Engine.Advance(ctx, current, budget)
		delta = out
		return next, err
	})
	if sess != nil {
		s.Streams.Broadcast(id, AdvanceEvent{Status: sess.Status, Steps: sess.Steps, Output: delta, Result: sess.Result})
	}
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError && !errors.Is(err, context.Canceled) {
			s.logger.Error("AdvanceSession failed", "session_id", id, "err", err)
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, AdvanceResponse{Session: sessionOf(sess), Output: delta})
}

// GetSessionState handles the GET /sessions/{id}/state request.
func (s *Server) GetSessionState(w http.ResponseWriter, r *http.Request, id SessionID) {
	sess, ok := s.loadSession(w, r, id)
	if !ok {
		return
	}
	view, err := s.Engine.Inspect(sess)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"state": view})
}

// GetSessionHistory returns the recent lifecycle events of the session.
func (s *Server) GetSessionHistory(w http.ResponseWriter, r *http.Request, id SessionID) {
	if s.recorder == nil {
		writeError(w, http.StatusNotFound, "event history is disabled")
		return
	}
	if _, ok := s.loadSession(w, r, id); !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.recorder.Events(id))
}

// loadSession writes the error response itself when it returns false.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request, id SessionID) (*domain.Session, bool) {
	if !validSessionID(w, id) {
		return nil, false
	}
	sess, err := s.Sessions.Load(r.Context(), id)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return nil, false
	}
	return sess, true
}

func validSessionID(w http.ResponseWriter, id SessionID) bool {
	if !domain.ValidSessionID(id) {
		writeError(w, http.StatusBadRequest, domain.ErrInvalidSessionID.Error())
		return false
	}
	return true
}
