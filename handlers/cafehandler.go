package handlers

import (
	"net/http"

	"escapenote-server/db"
	"escapenote-server/internals"
	"escapenote-server/model"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type createCafeReviewRequest struct {
	Rating int    `json:"rating" validate:"min=1,max=5"`
	Text   string `json:"text" validate:"max=2000"`
}

func (h *Handler) getCafes(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r, defaultListTake, "createdAt", true)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, err.Error(), err)
		return
	}

	filter := db.CafeFilter{
		Term:   r.URL.Query().Get("term"),
		AreaB:  r.URL.Query().Get("areaB"),
		UserID: userID(r),
	}
	cafes, err := h.cafeDAO.ListCafes(r.Context(), filter, page)
	if err != nil {
		h.daoError(w, "Error getting cafes", err)
		return
	}

	h.writeJSON(w, http.StatusOK, internals.Paginate(cafes, page.Take))
}

func (h *Handler) getCafeDetail(w http.ResponseWriter, r *http.Request) {
	cafeID := mux.Vars(r)["id"]

	cafe, err := h.cafeDAO.GetCafeById(r.Context(), cafeID, userID(r))
	if err != nil {
		h.daoError(w, "Error getting cafe", err)
		return
	}

	// a failed view count must not fail the page
	err = h.cafeDAO.IncrementView(r.Context(), cafeID)
	if err != nil {
		h.logger.Warn("Error incrementing cafe views", zap.String("cafeId", cafeID), zap.Error(err))
	}

	h.writeJSON(w, http.StatusOK, cafe)
}

func (h *Handler) saveCafe(w http.ResponseWriter, r *http.Request) {
	saved, err := h.cafeDAO.SaveCafe(r.Context(), mux.Vars(r)["id"], userID(r))
	if err != nil {
		h.daoError(w, "Error saving cafe", err)
		return
	}
	h.writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) unsaveCafe(w http.ResponseWriter, r *http.Request) {
	removed, err := h.cafeDAO.UnsaveCafe(r.Context(), mux.Vars(r)["id"], userID(r))
	if err != nil {
		h.daoError(w, "Error unsaving cafe", err)
		return
	}
	h.writeJSON(w, http.StatusOK, removed)
}

func (h *Handler) getCafeReviews(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r, defaultReviewTake, "createdAt", true)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, err.Error(), err)
		return
	}

	reviews, err := h.cafeReviewDAO.ListCafeReviews(r.Context(), mux.Vars(r)["id"], page)
	if err != nil {
		h.daoError(w, "Error getting cafe reviews", err)
		return
	}

	h.writeJSON(w, http.StatusOK, internals.Paginate(reviews, page.Take))
}

func (h *Handler) createCafeReview(w http.ResponseWriter, r *http.Request) {
	var body createCafeReviewRequest
	err := h.decodeBody(r, &body)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "Invalid review", err)
		return
	}

	review := model.CafeReview{
		CafeID: mux.Vars(r)["id"],
		UserID: userID(r),
		Rating: body.Rating,
		Text:   h.sanitize(body.Text),
	}
	err = h.cafeReviewDAO.CreateCafeReview(r.Context(), &review)
	if err != nil {
		h.daoError(w, "Error creating cafe review", err)
		return
	}

	h.writeJSON(w, http.StatusCreated, review)
}
