package handler

import (
	"net/http"

	"shareit/config"
	"shareit/di"
	"shareit/shared/logger"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	handler := di.InitializeService()
	handler.Adaptor()(w, r)
}
