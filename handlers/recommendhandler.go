package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// getRecommendCafes serves the daily pick from the cache, the database is only
// queried on a cache miss. Cache failures are logged and bypassed.
func (h *Handler) getRecommendCafes(w http.ResponseWriter, r *http.Request) {
	cafes, found, err := h.recommendCache.GetCafes(r.Context())
	if err != nil {
		h.logger.Warn("Error reading recommend cache", zap.Error(err))
	}
	if found {
		h.writeJSON(w, http.StatusOK, cafes)
		return
	}

	cafes, err = h.cafeDAO.RecommendCafes(r.Context())
	if err != nil {
		h.daoError(w, "Error getting recommended cafes", err)
		return
	}
	err = h.recommendCache.SetCafes(r.Context(), cafes)
	if err != nil {
		h.logger.Warn("Error writing recommend cache", zap.Error(err))
	}

	h.writeJSON(w, http.StatusOK, cafes)
}

func (h *Handler) getRecommendThemes(w http.ResponseWriter, r *http.Request) {
	themes, found, err := h.recommendCache.GetThemes(r.Context())
	if err != nil {
		h.logger.Warn("Error reading recommend cache", zap.Error(err))
	}
	if found {
		h.writeJSON(w, http.StatusOK, themes)
		return
	}

	themes, err = h.themeDAO.RecommendThemes(r.Context())
	if err != nil {
		h.daoError(w, "Error getting recommended themes", err)
		return
	}
	err = h.recommendCache.SetThemes(r.Context(), themes)
	if err != nil {
		h.logger.Warn("Error writing recommend cache", zap.Error(err))
	}

	h.writeJSON(w, http.StatusOK, themes)
}
