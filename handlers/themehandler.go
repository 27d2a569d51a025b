package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"escapenote-server/db"
	"escapenote-server/internals"
	"escapenote-server/model"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type createThemeReviewRequest struct {
	Rating   int    `json:"rating" validate:"min=1,max=5"`
	Success  bool   `json:"success"`
	Level    int    `json:"level" validate:"min=0,max=5"`
	Fear     int    `json:"fear" validate:"min=0,max=5"`
	Activity int    `json:"activity" validate:"min=0,max=5"`
	Text     string `json:"text" validate:"max=2000"`
}

func (h *Handler) getThemes(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r, defaultListTake, "createdAt", true)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, err.Error(), err)
		return
	}
	filter, err := parseThemeFilter(r)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, err.Error(), err)
		return
	}
	filter.UserID = userID(r)

	themes, err := h.themeDAO.ListThemes(r.Context(), filter, page)
	if err != nil {
		h.daoError(w, "Error getting themes", err)
		return
	}

	h.writeJSON(w, http.StatusOK, internals.Paginate(themes, page.Take))
}

func parseThemeFilter(r *http.Request) (db.ThemeFilter, error) {
	query := r.URL.Query()
	filter := db.ThemeFilter{
		Term:    query.Get("term"),
		CafeID:  query.Get("cafeId"),
		AreaA:   query.Get("areaA"),
		AreaB:   query.Get("areaB"),
		GenreID: query.Get("genre"),
	}

	var err error
	filter.Level, err = parseOptionalInt(query.Get("level"), "level")
	if err != nil {
		return db.ThemeFilter{}, err
	}
	filter.Person, err = parseOptionalInt(query.Get("person"), "person")
	if err != nil {
		return db.ThemeFilter{}, err
	}
	filter.Fear, err = parseScoreRange(query.Get("fearScore"), "fearScore")
	if err != nil {
		return db.ThemeFilter{}, err
	}
	filter.Activity, err = parseScoreRange(query.Get("activity"), "activity")
	if err != nil {
		return db.ThemeFilter{}, err
	}
	filter.LockingRatio, err = parseScoreRange(query.Get("lockingRatio"), "lockingRatio")
	if err != nil {
		return db.ThemeFilter{}, err
	}

	return filter, nil
}

func parseOptionalInt(value string, name string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	return n, nil
}

func parseScoreRange(value string, name string) (db.ScoreRange, error) {
	switch scoreRange := db.ScoreRange(value); scoreRange {
	case "", db.RangeLow, db.RangeMedium, db.RangeHigh:
		return scoreRange, nil
	default:
		return "", fmt.Errorf("invalid %s %q, expected low, medium or high", name, value)
	}
}

func (h *Handler) getThemeDetail(w http.ResponseWriter, r *http.Request) {
	themeID := mux.Vars(r)["id"]

	theme, err := h.themeDAO.GetThemeById(r.Context(), themeID, userID(r))
	if err != nil {
		h.daoError(w, "Error getting theme", err)
		return
	}

	err = h.themeDAO.IncrementView(r.Context(), themeID)
	if err != nil {
		h.logger.Warn("Error incrementing theme views", zap.String("themeId", themeID), zap.Error(err))
	}

	h.writeJSON(w, http.StatusOK, theme)
}

func (h *Handler) saveTheme(w http.ResponseWriter, r *http.Request) {
	saved, err := h.themeDAO.SaveTheme(r.Context(), mux.Vars(r)["id"], userID(r))
	if err != nil {
		h.daoError(w, "Error saving theme", err)
		return
	}
	h.writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) unsaveTheme(w http.ResponseWriter, r *http.Request) {
	removed, err := h.themeDAO.UnsaveTheme(r.Context(), mux.Vars(r)["id"], userID(r))
	if err != nil {
		h.daoError(w, "Error unsaving theme", err)
		return
	}
	h.writeJSON(w, http.StatusOK, removed)
}

func (h *Handler) getThemeReviews(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r, defaultReviewTake, "createdAt", true)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, err.Error(), err)
		return
	}

	reviews, err := h.themeReviewDAO.ListThemeReviews(r.Context(), mux.Vars(r)["id"], page)
	if err != nil {
		h.daoError(w, "Error getting theme reviews", err)
		return
	}

	h.writeJSON(w, http.StatusOK, internals.Paginate(reviews, page.Take))
}

func (h *Handler) createThemeReview(w http.ResponseWriter, r *http.Request) {
	var body createThemeReviewRequest
	err := h.decodeBody(r, &body)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "Invalid review", err)
		return
	}

	review := model.ThemeReview{
		ThemeID:  mux.Vars(r)["id"],
		UserID:   userID(r),
		Rating:   body.Rating,
		Success:  body.Success,
		Level:    body.Level,
		Fear:     body.Fear,
		Activity: body.Activity,
		Text:     h.sanitize(body.Text),
	}
	err = h.themeReviewDAO.CreateThemeReview(r.Context(), &review)
	if err != nil {
		h.daoError(w, "Error creating theme review", err)
		return
	}

	h.writeJSON(w, http.StatusCreated, review)
}

func (h *Handler) getBlogReviews(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r, defaultReviewTake, "createdAt", true)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, err.Error(), err)
		return
	}

	blogReviews, err := h.themeDAO.ListBlogReviews(r.Context(), mux.Vars(r)["id"], page)
	if err != nil {
		h.daoError(w, "Error getting blog reviews", err)
		return
	}

	h.writeJSON(w, http.StatusOK, internals.Paginate(blogReviews, page.Take))
}
