package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/five82/cohort/internal/catalog"
	"github.com/five82/cohort/internal/cohortapi"
)

const maxBodyBytes = 64 << 10

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := s.store.List(r.Context(), q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in cohortapi.NewList
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	created, err := s.store.Create(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("list created", "id", created.ID, "kind", string(created.Kind))
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleStar(starred bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := s.store.SetStarred(r.Context(), id, starred); err != nil {
			s.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// fail maps store errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrInvalid):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, r.Context().Err()):
		// Client went away; nothing useful to write.
	default:
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func parseListQuery(r *http.Request) (cohortapi.ListQuery, error) {
	values := r.URL.Query()
	q := cohortapi.ListQuery{Page: 1, PageSize: 10}

	if v := values.Get("starred"); v != "" {
		starred, err := strconv.ParseBool(v)
		if err != nil {
			return q, fmt.Errorf("starred must be a boolean")
		}
		q.Filter.Starred = starred
	}
	if v := values.Get("kind"); v != "" {
		kind := cohortapi.ParseListKind(v)
		if kind == "" {
			return q, fmt.Errorf("kind must be system or user")
		}
		q.Filter.Kind = kind
	}
	q.Filter.NameContains = values.Get("name")

	var err error
	if q.Page, err = positiveInt(values.Get("page"), 1); err != nil {
		return q, fmt.Errorf("page %w", err)
	}
	if q.PageSize, err = positiveInt(values.Get("pageSize"), 10); err != nil {
		return q, fmt.Errorf("pageSize %w", err)
	}
	return q, nil
}

func positiveInt(v string, fallback int) (int, error) {
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("must be a positive integer")
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, cohortapi.ErrorResponse{Error: msg})
}
