package handler

import (
	"net/http"

	"daybooker/config"
	"daybooker/di"
	"daybooker/shared/logger"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg, "serverless")

	handler := di.InitializeService()
	handler.ServeHTTP(w, r)
}
