package handler

import (
	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
	"net/http"
	"sync"
)

var (
	handler http.Handler
	once    sync.Once
)

// Handler is the serverless entrypoint. The scheduler does not run here; rely
// on a deployment that runs cmd/app for time-driven status changes.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		handler = di.InitializeService().HTTP.Handler()
	})

	handler.ServeHTTP(w, r)
}
