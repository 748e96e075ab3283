package main

import (
	"os"

	"github.com/lcarvalho/academico/internal/pkg/logger"
	"github.com/lcarvalho/academico/internal/server"
)

// @title Academico API
// @version 1.0
// @description Academic records API for managing students, courses and enrollments

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.basic BasicAuth

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}
}
