package main

import (
	"net/http"
	"time"

	"escapenote-server/config"
	"escapenote-server/handlers"
	gorillahandlers "github.com/gorilla/handlers"
)

func SetupServer(cfg config.Config, h *handlers.Handler) *http.Server {
	router := handlers.NewRouter(h)

	// the web client sends the refresh token cookie, so credentials are allowed
	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(cfg.CORSOrigins),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		gorillahandlers.AllowCredentials(),
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           cors(gorillahandlers.CompressHandler(router)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server
}
