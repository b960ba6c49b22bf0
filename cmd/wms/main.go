package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/muynuddinr/work-management-system/internal/api"
	"github.com/muynuddinr/work-management-system/internal/app"
	"github.com/muynuddinr/work-management-system/internal/config"
	"github.com/muynuddinr/work-management-system/internal/credential"
	"github.com/muynuddinr/work-management-system/internal/logging"
	"github.com/muynuddinr/work-management-system/internal/session"
	"github.com/muynuddinr/work-management-system/internal/store"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath(), "path to config file")
	flag.Parse()

	// A local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, config.ErrMissingBaseURL) {
			fmt.Fprintln(os.Stderr, "wms:", err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "wms: loading config:", err)
		os.Exit(1)
	}

	logger, err := logging.NewFileLogger(cfg.LogPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "wms: opening log file:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cache, err := store.NewSQLiteStore(cfg.CachePath)
	if err != nil {
		logger.Error("opening cache", zap.Error(err))
		fmt.Fprintln(os.Stderr, "wms: opening cache:", err)
		os.Exit(1)
	}
	defer cache.Close()

	creds := credential.NewKeyringStore(filepath.Dir(cfg.CachePath))
	client := api.NewClient(cfg.BaseURL, creds, logger)

	sess := session.NewManager(client, creds, logger)
	sess.Initialize()

	program := tea.NewProgram(
		app.New(cfg, client, sess, cache, logger),
		tea.WithAltScreen(),
	)

	// A 401 on any request means the stored token is no longer valid
	// anywhere. Drop the session and tell the UI.
	client.OnUnauthorized(func() {
		sess.ForceLogout()
		program.Send(app.SessionExpiredMsg{})
	})

	if _, err := program.Run(); err != nil {
		logger.Error("program exited with error", zap.Error(err))
		fmt.Fprintln(os.Stderr, "wms:", err)
		os.Exit(1)
	}
}
