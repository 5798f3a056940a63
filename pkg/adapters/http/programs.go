package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/unabs/pkg/domain"
	"github.com/aretw0/unabs/pkg/runner"
	"github.com/aretw0/unabs/pkg/term"
)

// RunProgram handles the POST /run request.
func (s *Server) RunProgram(w http.ResponseWriter, r *http.Request) {
	var body RunProgramJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		s.logger.Warn("RunProgram: Invalid request body", "err", err)
		return
	}
	src, err := runner.SanitizeProgram(body.Program)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	budget, err := s.budget(body.MaxSteps)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.run(r.Context(), src, budget)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// run executes src as a throwaway session so the budget applies per request.
func (s *Server) run(ctx context.Context, src string, budget uint64) (*RunResponse, error) {
	sess, err := s.Engine.Start(ctx, "run", src)
	if err != nil {
		return nil, err
	}
	sess, _, err = s.Engine.Advance(ctx, sess, budget)
	if err != nil {
		return nil, err
	}
	return &RunResponse{
		Status: RunResponseStatus(sess.Status),
		Output: sess.Output,
		Result: sess.Result,
		Steps:  int64(sess.Steps),
	}, nil
}

// ParseProgram handles the POST /parse request.
func (s *Server) ParseProgram(w http.ResponseWriter, r *http.Request) {
	var body ParseProgramJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	src, err := runner.SanitizeProgram(body.Program)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := term.Parse(src)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ParseResponse{Term: t.String(), Size: term.Size(t)})
}

// ListLibrary handles the GET /library request.
func (s *Server) ListLibrary(w http.ResponseWriter, r *http.Request) {
	if s.Library == nil {
		writeError(w, http.StatusNotFound, "no program library configured")
		return
	}
	ids, err := s.Library.ListPrograms(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		s.logger.Error("ListLibrary failed", "err", err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

// GetLibraryProgram handles the GET /library/{id} request.
func (s *Server) GetLibraryProgram(w http.ResponseWriter, r *http.Request, id ProgramID) {
	p, ok := s.libraryProgram(w, r, id)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, programOf(p))
}

// RunLibraryProgram handles the POST /library/{id}/run request.
func (s *Server) RunLibraryProgram(w http.ResponseWriter, r *http.Request, id ProgramID) {
	p, ok := s.libraryProgram(w, r, id)
	if !ok {
		return
	}
	budget := s.maxBudget
	if p.MaxSteps > 0 {
		budget = min(p.MaxSteps, s.maxBudget)
	}
	resp, err := s.run(r.Context(), p.Source, budget)
	if err != nil {
		writeError(w, statusFor(err), fmt.Sprintf("program %s: %v", p.ID, err))
		return
	}
	if p.Expect != nil {
		matched := resp.Status == RunResponseStatusHalted && resp.Output == *p.Expect
		resp.Expected = &matched
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) libraryProgram(w http.ResponseWriter, r *http.Request, id ProgramID) (*domain.Program, bool) {
	if s.Library == nil {
		writeError(w, http.StatusNotFound, "no program library configured")
		return nil, false
	}
	p, err := s.Library.GetProgram(r.Context(), id)
	if err != nil {
		if !errors.Is(err, domain.ErrProgramNotFound) {
			s.logger.Error("GetProgram failed", "program_id", id, "err", err)
		}
		writeError(w, statusFor(err), err.Error())
		return nil, false
	}
	return p, true
}

func programOf(p *domain.Program) Program {
	view := Program{
		Id:     p.ID,
		Source: p.Source,
		Expect: p.Expect,
	}
	if p.Title != "" {
		view.Title = &p.Title
	}
	if p.Description != "" {
		view.Description = &p.Description
	}
	if p.MaxSteps > 0 {
		n := int64(p.MaxSteps)
		view.MaxSteps = &n
	}
	return view
}
