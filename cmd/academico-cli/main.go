package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/lcarvalho/academico/internal/client"
	"github.com/lcarvalho/academico/internal/client/enrollment"
	"github.com/lcarvalho/academico/internal/client/session"
	"github.com/lcarvalho/academico/internal/client/views"
	"github.com/lcarvalho/academico/internal/config"
	"github.com/lcarvalho/academico/internal/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(filepath.Join("configs", "config.yaml"))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	sessionPath := cfg.Client.SessionPath
	if sessionPath == "" {
		sessionPath, err = session.DefaultPath()
		if err != nil {
			logger.Error().Err(err).Msg("Failed to resolve session path")
			os.Exit(1)
		}
	}

	store := session.NewStore(sessionPath)
	api := client.NewClient(cfg.Client.BaseURL, store)
	prompts := views.NewPrompter(os.Stdin, os.Stdout)
	coord := enrollment.NewCoordinator(api, prompts)

	loginView := views.NewLoginView(store, prompts)
	studentsView := views.NewStudentsView(api, coord, prompts)
	coursesView := views.NewCoursesView(api, prompts)

	ctx := context.Background()

	for {
		if !store.IsAuthenticated() {
			if err := loginView.Run(); err != nil {
				logger.Error().Err(err).Msg("Failed to store session")
				os.Exit(1)
			}
		}

		prompts.Printf("\n=== Sistema Acadêmico (%s) ===\n", store.Username())
		cmd := prompts.ReadLine("[a]lunos  [c]ursos  [s]air")

		switch cmd {
		case "a":
			studentsView.Run(ctx)
		case "c":
			coursesView.Run(ctx)
		case "s":
			if err := store.Logout(); err != nil {
				logger.Error().Err(err).Msg("Failed to clear session")
			}
			prompts.Printf("Sessão encerrada.\n")
			return
		}
	}
}
