package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter registers every route of the API
func NewRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(h.observe)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.httpError(w, http.StatusNotFound, "Not found", nil)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.httpError(w, http.StatusMethodNotAllowed, "Method not supported", nil)
	})

	router.HandleFunc("/", h.root).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	authRouter := router.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/token", h.loginForAccessToken).Methods(http.MethodPost)
	authRouter.HandleFunc("/profile", h.requireUser(h.getProfile)).Methods(http.MethodGet)
	authRouter.HandleFunc("/profile/edit", h.requireUser(h.editProfile)).Methods(http.MethodPatch)
	authRouter.HandleFunc("/password/reset", h.requireUser(h.changePassword)).Methods(http.MethodPatch)
	authRouter.HandleFunc("/email/send_password", h.sendPassword).Methods(http.MethodPost)
	authRouter.HandleFunc("/email/duplicate", h.checkDuplicateEmail).Methods(http.MethodPost)
	authRouter.HandleFunc("/email/send_code", h.sendEmailCode).Methods(http.MethodPost)
	authRouter.HandleFunc("/email/verify_code", h.verifyEmailCode).Methods(http.MethodPost)
	authRouter.HandleFunc("/email/signup", h.signupByEmail).Methods(http.MethodPost)
	authRouter.HandleFunc("/phone/send_code", h.sendPhoneCode).Methods(http.MethodPost)
	authRouter.HandleFunc("/phone/verify_code", h.verifyPhoneCode).Methods(http.MethodPost)
	authRouter.HandleFunc("/nickname/duplicate", h.checkDuplicateNickname).Methods(http.MethodPost)
	authRouter.HandleFunc("/refresh", h.refresh).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", h.loginByEmail).Methods(http.MethodPost)
	authRouter.HandleFunc("/logout", h.requireUser(h.logout)).Methods(http.MethodPost)
	authRouter.HandleFunc("/social/login", h.loginBySocial).Methods(http.MethodPost)
	authRouter.HandleFunc("/social/pre-signup", h.preSignupBySocial).Methods(http.MethodPost)
	authRouter.HandleFunc("/social/signup", h.signupBySocial).Methods(http.MethodPost)

	router.HandleFunc("/users/{nickname}", h.getUserByNickname).Methods(http.MethodGet)

	router.HandleFunc("/cafes", h.optionalUser(h.getCafes)).Methods(http.MethodGet)
	router.HandleFunc("/cafes/{id}", h.optionalUser(h.getCafeDetail)).Methods(http.MethodGet)
	router.HandleFunc("/cafes/{id}/save", h.requireUser(h.saveCafe)).Methods(http.MethodPost)
	router.HandleFunc("/cafes/{id}/unsave", h.requireUser(h.unsaveCafe)).Methods(http.MethodPost)
	router.HandleFunc("/cafes/{id}/reviews", h.getCafeReviews).Methods(http.MethodGet)
	router.HandleFunc("/cafes/{id}/reviews", h.requireUser(h.createCafeReview)).Methods(http.MethodPost)

	router.HandleFunc("/themes", h.optionalUser(h.getThemes)).Methods(http.MethodGet)
	router.HandleFunc("/themes/{id}", h.optionalUser(h.getThemeDetail)).Methods(http.MethodGet)
	router.HandleFunc("/themes/{id}/save", h.requireUser(h.saveTheme)).Methods(http.MethodPost)
	router.HandleFunc("/themes/{id}/unsave", h.requireUser(h.unsaveTheme)).Methods(http.MethodPost)
	router.HandleFunc("/themes/{id}/reviews", h.getThemeReviews).Methods(http.MethodGet)
	router.HandleFunc("/themes/{id}/reviews", h.requireUser(h.createThemeReview)).Methods(http.MethodPost)
	router.HandleFunc("/themes/{id}/blog-reviews", h.getBlogReviews).Methods(http.MethodGet)

	router.HandleFunc("/cafe-reviews/{id}", h.requireUser(h.getCafeReview)).Methods(http.MethodGet)
	router.HandleFunc("/cafe-reviews/{id}", h.requireUser(h.updateCafeReview)).Methods(http.MethodPatch)
	router.HandleFunc("/cafe-reviews/{id}", h.requireUser(h.deleteCafeReview)).Methods(http.MethodDelete)
	router.HandleFunc("/theme-reviews/{id}", h.requireUser(h.getThemeReview)).Methods(http.MethodGet)
	router.HandleFunc("/theme-reviews/{id}", h.requireUser(h.updateThemeReview)).Methods(http.MethodPatch)
	router.HandleFunc("/theme-reviews/{id}", h.requireUser(h.deleteThemeReview)).Methods(http.MethodDelete)

	router.HandleFunc("/genre", h.getGenres).Methods(http.MethodGet)
	router.HandleFunc("/faq", h.getFaq).Methods(http.MethodGet)
	router.HandleFunc("/images/user", h.uploadUserImage).Methods(http.MethodPost)
	router.HandleFunc("/recommend-cafes", h.getRecommendCafes).Methods(http.MethodGet)
	router.HandleFunc("/recommend-themes", h.getRecommendThemes).Methods(http.MethodGet)
	router.HandleFunc("/sitemaps/cafes", h.getCafesSitemap).Methods(http.MethodGet)
	router.HandleFunc("/sitemaps/themes", h.getThemesSitemap).Methods(http.MethodGet)

	if h.cfg.IsTestMode() {
		router.HandleFunc("/resetTestDatabase", h.resetTestDatabase).Methods(http.MethodPost)
	}

	return router
}
