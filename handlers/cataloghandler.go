package handlers

import (
	"net/http"
	"strings"
)

const (
	appName    = "Escapenote"
	appVersion = "1.0.0"
)

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"name":    appName,
		"version": appVersion,
	})
}

func (h *Handler) getGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.catalogDAO.ListGenres(r.Context())
	if err != nil {
		h.daoError(w, "Error getting genres", err)
		return
	}
	h.writeJSON(w, http.StatusOK, genres)
}

func (h *Handler) getFaq(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	desc := false
	switch strings.ToLower(query.Get("order")) {
	case "", "asc":
	case "desc":
		desc = true
	default:
		h.httpError(w, http.StatusBadRequest, "order must be asc or desc", nil)
		return
	}

	faqList, err := h.catalogDAO.ListFaq(r.Context(), query.Get("term"), query.Get("sort"), desc)
	if err != nil {
		h.daoError(w, "Error getting faq", err)
		return
	}
	h.writeJSON(w, http.StatusOK, faqList)
}
