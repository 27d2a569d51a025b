package handlers

import (
	"net/http"
)

func (h *Handler) getCafesSitemap(w http.ResponseWriter, r *http.Request) {
	entries, err := h.cafeDAO.GetSitemap(r.Context())
	if err != nil {
		h.daoError(w, "Error getting cafes sitemap", err)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) getThemesSitemap(w http.ResponseWriter, r *http.Request) {
	entries, err := h.themeDAO.GetSitemap(r.Context())
	if err != nil {
		h.daoError(w, "Error getting themes sitemap", err)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}
