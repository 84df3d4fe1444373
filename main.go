package main

import (
	"flag"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/structs"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/covidash/covidash/pkg"
)

func main() {
	var (
		configPath = flag.String("config", "settings.yaml", "path to settings.yaml (optional)")
		apiURL     = flag.String("api", "", "override the statistics API base URL")
		noMouse    = flag.Bool("no-mouse", false, "disable mouse support")
	)
	flag.Parse()

	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	cfg, err := pkg.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Str("path", *configPath).Err(err).Msg("Error while loading configuration")
	}
	if *apiURL != "" {
		cfg.APIURL = *apiURL
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Str("level", cfg.LogLevel).Err(err).Msg("Unknown log level")
	}
	zerolog.SetGlobalLevel(level)
	// The terminal is owned by the dashboard, so logs go to a file.
	logFile, err := os.OpenFile("covidash.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatal().Err(err).Msg("Error while opening log file")
	}
	defer logFile.Close() // nolint: errcheck
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: logFile, NoColor: true})
	log.Debug().Fields(structs.Map(cfg)).Msg("Configuration loaded")

	client := pkg.NewClient(cfg.APIURL, cfg.Timeout())
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if !*noMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(pkg.NewModel(client, cfg), opts...)
	if _, err := program.Run(); err != nil {
		log.Fatal().Err(err).Msg("Dashboard terminated with an error")
	}
}
