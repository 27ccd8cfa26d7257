package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ilyakaznacheev/cleanenv"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/todoboard/internal/client"
	"github.com/adanyl0v/todoboard/internal/config"
	"github.com/adanyl0v/todoboard/internal/tui"
	"github.com/adanyl0v/todoboard/internal/tui/prefs"
)

func main() {
	var clientCfg config.ClientConfig
	if err := cleanenv.ReadEnv(&clientCfg); err != nil {
		fmt.Fprintln(os.Stderr, "failed to read env:", err)
		os.Exit(1)
	}

	serverURL := flag.String("server", clientCfg.ServerURL, "todo server base URL")
	flag.Parse()

	// The terminal owns stdout, so the client logs to a file.
	logger := zerolog.Nop()
	logPath := filepath.Join(os.TempDir(), "todoboard-client.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err == nil {
		defer logFile.Close()
		logger = zerolog.New(logFile).
			With().
			Timestamp().
			Logger()
	}

	prefsPath, err := prefs.DefaultPath()
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to resolve prefs path")
		prefsPath = filepath.Join(os.TempDir(), "todoboard-filters.json")
	}

	filters, err := prefs.LoadFilters(prefsPath)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to load filters, using defaults")
	}

	api := client.New(logger, *serverURL)
	model := tui.NewModel(logger, api, filters, prefsPath)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
