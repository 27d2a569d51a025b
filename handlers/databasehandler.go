package handlers

import (
	"net/http"

	"escapenote-server/db"
	"go.uber.org/zap"
)

// resetTestDatabase wipes user data, it is only routed in test mode
func (h *Handler) resetTestDatabase(w http.ResponseWriter, r *http.Request) {
	err := db.ResetTestDatabase(h.db, h.cfg)
	if err != nil {
		h.httpError(w, http.StatusInternalServerError, "Error resetting test database", err)
		return
	}

	err = h.recommendCache.Flush(r.Context())
	if err != nil {
		h.logger.Warn("Error flushing recommend cache", zap.Error(err))
	}

	w.WriteHeader(http.StatusOK)
}
