package handlers

import (
	"errors"
	"net/http"

	"escapenote-server/db"
	"github.com/gorilla/mux"
)

var errParentMismatch = errors.New("review does not belong to the given parent")

type updateCafeReviewRequest struct {
	Rating int    `json:"rating" validate:"min=1,max=5"`
	Text   string `json:"text" validate:"max=2000"`
}

type updateThemeReviewRequest = createThemeReviewRequest

// checkParent validates the optional cafeId/themeId query parameter sent by
// clients together with the review id
func (h *Handler) checkParent(w http.ResponseWriter, r *http.Request, param string, parentID string) bool {
	expected := r.URL.Query().Get(param)
	if expected != "" && expected != parentID {
		h.httpError(w, http.StatusBadRequest, "Review does not belong to "+param+" "+expected, errParentMismatch)
		return false
	}
	return true
}

func (h *Handler) getCafeReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.cafeReviewDAO.GetOwnedCafeReview(r.Context(), mux.Vars(r)["id"], userID(r))
	if err != nil {
		h.daoError(w, "Error getting cafe review", err)
		return
	}
	h.writeJSON(w, http.StatusOK, review)
}

func (h *Handler) updateCafeReview(w http.ResponseWriter, r *http.Request) {
	reviewID := mux.Vars(r)["id"]

	var body updateCafeReviewRequest
	err := h.decodeBody(r, &body)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "Invalid review", err)
		return
	}

	current, err := h.cafeReviewDAO.GetOwnedCafeReview(r.Context(), reviewID, userID(r))
	if err != nil {
		h.daoError(w, "Error getting cafe review", err)
		return
	}
	if !h.checkParent(w, r, "cafeId", current.CafeID) {
		return
	}

	review, err := h.cafeReviewDAO.UpdateCafeReview(r.Context(), reviewID, userID(r), body.Rating, h.sanitize(body.Text))
	if err != nil {
		h.daoError(w, "Error updating cafe review", err)
		return
	}
	h.writeJSON(w, http.StatusOK, review)
}

func (h *Handler) deleteCafeReview(w http.ResponseWriter, r *http.Request) {
	reviewID := mux.Vars(r)["id"]

	current, err := h.cafeReviewDAO.GetOwnedCafeReview(r.Context(), reviewID, userID(r))
	if err != nil {
		h.daoError(w, "Error getting cafe review", err)
		return
	}
	if !h.checkParent(w, r, "cafeId", current.CafeID) {
		return
	}

	review, err := h.cafeReviewDAO.DeleteCafeReview(r.Context(), reviewID, userID(r))
	if err != nil {
		h.daoError(w, "Error deleting cafe review", err)
		return
	}
	h.writeJSON(w, http.StatusOK, review)
}

func (h *Handler) getThemeReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.themeReviewDAO.GetOwnedThemeReview(r.Context(), mux.Vars(r)["id"], userID(r))
	if err != nil {
		h.daoError(w, "Error getting theme review", err)
		return
	}
	h.writeJSON(w, http.StatusOK, review)
}

func (h *Handler) updateThemeReview(w http.ResponseWriter, r *http.Request) {
	reviewID := mux.Vars(r)["id"]

	var body updateThemeReviewRequest
	err := h.decodeBody(r, &body)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "Invalid review", err)
		return
	}

	current, err := h.themeReviewDAO.GetOwnedThemeReview(r.Context(), reviewID, userID(r))
	if err != nil {
		h.daoError(w, "Error getting theme review", err)
		return
	}
	if !h.checkParent(w, r, "themeId", current.ThemeID) {
		return
	}

	review, err := h.themeReviewDAO.UpdateThemeReview(r.Context(), reviewID, userID(r), db.ThemeReviewUpdate{
		Rating:   body.Rating,
		Success:  body.Success,
		Level:    body.Level,
		Fear:     body.Fear,
		Activity: body.Activity,
		Text:     h.sanitize(body.Text),
	})
	if err != nil {
		h.daoError(w, "Error updating theme review", err)
		return
	}
	h.writeJSON(w, http.StatusOK, review)
}

func (h *Handler) deleteThemeReview(w http.ResponseWriter, r *http.Request) {
	reviewID := mux.Vars(r)["id"]

	current, err := h.themeReviewDAO.GetOwnedThemeReview(r.Context(), reviewID, userID(r))
	if err != nil {
		h.daoError(w, "Error getting theme review", err)
		return
	}
	if !h.checkParent(w, r, "themeId", current.ThemeID) {
		return
	}

	review, err := h.themeReviewDAO.DeleteThemeReview(r.Context(), reviewID, userID(r))
	if err != nil {
		h.daoError(w, "Error deleting theme review", err)
		return
	}
	h.writeJSON(w, http.StatusOK, review)
}
