package di

import (
	"hotel/internal/jobs"
	"hotel/transport/http"
)

// App is everything a process entrypoint needs to run.
type App struct {
	HTTP       *http.HTTP
	StatusSync *jobs.StatusSync
}
