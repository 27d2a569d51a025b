package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"escapenote-server/db"
	"go.uber.org/zap"
)

const (
	defaultListTake   = 20
	defaultReviewTake = 10
	maxTake           = 100
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(value)
	if err != nil {
		h.logger.Error("Error encoding JSON", zap.Error(err))
	}
}

// httpError logs msg and err, then writes msg as a json error
func (h *Handler) httpError(w http.ResponseWriter, status int, msg string, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, zap.Int("status", status), zap.Error(err))
	} else {
		h.logger.Info(msg, zap.Int("status", status), zap.Error(err))
	}
	h.writeJSON(w, status, errorResponse{Detail: msg})
}

// daoError maps the db sentinel errors to http statuses
func (h *Handler) daoError(w http.ResponseWriter, msg string, err error) {
	// a recompute on a missing parent wraps both ErrAggregateUpdate and ErrNotFound
	switch {
	case errors.Is(err, db.ErrNotFound):
		h.httpError(w, http.StatusNotFound, msg+": not found", err)
	case errors.Is(err, db.ErrAggregateUpdate):
		h.httpError(w, http.StatusInternalServerError, "Error updating reviews statistics", err)
	case errors.Is(err, db.ErrForbidden):
		h.httpError(w, http.StatusForbidden, msg+": forbidden", err)
	case errors.Is(err, db.ErrConflict):
		h.httpError(w, http.StatusConflict, msg+": already exists", err)
	case errors.Is(err, db.ErrInvalidCursor), errors.Is(err, db.ErrInvalidSort):
		h.httpError(w, http.StatusBadRequest, msg+": "+err.Error(), err)
	default:
		h.httpError(w, http.StatusInternalServerError, "Internal server error", err)
	}
}

// decodeBody decodes the json body into dst and validates it
func (h *Handler) decodeBody(r *http.Request, dst any) error {
	defer func() {
		_ = r.Body.Close()
	}()

	decoder := json.NewDecoder(r.Body)
	err := decoder.Decode(dst)
	if err != nil {
		return fmt.Errorf("invalid data format: %w", err)
	}
	return h.validate.Struct(dst)
}

// parsePage reads take, cursor, sort and order from the query string
func parsePage(r *http.Request, defaultTake int, defaultSort string, defaultDesc bool) (db.Page, error) {
	query := r.URL.Query()
	page := db.Page{
		Take:   defaultTake,
		Cursor: query.Get("cursor"),
		Sort:   query.Get("sort"),
		Desc:   defaultDesc,
	}
	if page.Sort == "" {
		page.Sort = defaultSort
	}

	if takeStr := query.Get("take"); takeStr != "" {
		take, err := strconv.Atoi(takeStr)
		if err != nil || take < 0 || take > maxTake {
			return db.Page{}, fmt.Errorf("take must be between 0 and %d", maxTake)
		}
		page.Take = take
	}

	switch strings.ToLower(query.Get("order")) {
	case "":
	case "asc":
		page.Desc = false
	case "desc":
		page.Desc = true
	default:
		return db.Page{}, errors.New("order must be asc or desc")
	}

	return page, nil
}

func (h *Handler) sanitize(text string) string {
	return strings.TrimSpace(h.sanitizer.Sanitize(text))
}
