package api

import (
	"context"
	"net/http"
	"sync"

	"kuuslauk/app"
	"kuuslauk/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	router  http.Handler
	initErr error
	once    sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}

		application, err := app.New(context.Background(), cfg)
		if err != nil {
			initErr = err
			return
		}
		router = application.Router
	})
}

// Handler is the serverless entrypoint. The application is built once per
// instance and reused across invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		log.Error().Err(initErr).Msg("failed to initialize application")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"success":false,"message":"Service unavailable","code":"SERVICE_UNAVAILABLE"}`))
		return
	}
	router.ServeHTTP(w, r)
}
