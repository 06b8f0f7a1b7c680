package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/glebovdev/atradio/internal/config"
	"github.com/glebovdev/atradio/internal/player"
	"github.com/glebovdev/atradio/internal/service"
	"github.com/glebovdev/atradio/internal/store"
	"github.com/glebovdev/atradio/internal/ui"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

var autoplayFlag = flag.Int("autoplay", -1, "Start playing the station at this zero-based position")

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s v%s - %s\n\n", config.AppName, config.AppVersion, config.AppDescription)
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()

		configPath, err := config.GetConfigPath()
		if err == nil {
			if _, statErr := os.Stat(configPath); statErr == nil {
				fmt.Fprintf(os.Stderr, "\nConfig file: %s\n", configPath)
			} else {
				fmt.Fprintf(os.Stderr, "\nNo config file yet, one with defaults is written to %s on first run.\n", configPath)
			}
		}
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintf(os.Stderr, "%s needs an interactive terminal\n", config.AppName)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
	}

	setupLogging(cfg)

	if configPath, err := config.GetConfigPath(); err == nil {
		if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
			if err := cfg.Save(); err != nil {
				log.Warn().Err(err).Msg("Failed to write default config")
			} else {
				log.Info().Str("path", configPath).Msg("Wrote default config")
			}
		}
	}

	binary, err := config.ResolvePlayer(cfg)
	if err != nil {
		log.Error().Err(err).Msg("No player binary")
		fmt.Fprintf(os.Stderr, "Error: %v\n%s\n", err, config.PlayerRemedy())
		return 1
	}
	log.Debug().Str("binary", binary).Msg("Using player")

	created, err := store.EnsureExists(cfg.StationsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if created {
		log.Info().Str("path", cfg.StationsFile).Msg("Created empty station list")
	}

	stationService := service.NewStationService(cfg.StationsFile)
	if err := stationService.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	log.Debug().Int("stations", stationService.StationCount()).Str("path", cfg.StationsFile).Msg("Station list loaded")

	workDir := filepath.Dir(cfg.StationsFile)
	if abs, err := filepath.Abs(workDir); err == nil {
		workDir = abs
	}

	// Installed before any player can start so a signal never orphans it.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	controller := player.NewController(
		&player.ExecLauncher{
			Binary:         binary,
			ControlAddress: cfg.Player.ControlAddress,
			ExtraArgs:      cfg.Player.ExtraArgs,
			StartupGrace:   cfg.Player.StartupGrace,
		},
		player.NewControlClient(cfg.Player.ControlAddress, cfg.Player.ControlTimeout),
		cfg.Player.StopTimeout,
	)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}

	radioUI := ui.NewUI(screen, cfg, stationService, controller, workDir)

	if err := radioUI.Autoplay(*autoplayFlag); err != nil {
		controller.Stop()
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// A signal during autoplay would otherwise skip the player teardown.
	if sig, ok := pendingSignal(sigChan); ok {
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal before start, cleaning up...")
		controller.Stop()
		screen.Fini()
		return 0
	}

	go func() {
		sig, ok := <-sigChan
		if !ok {
			return
		}
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal, cleaning up...")
		radioUI.Shutdown()
	}()

	uiDone := make(chan error, 1)

	// Run UI in a goroutine so we can handle signals properly
	go func() {
		uiDone <- radioUI.Run()
	}()

	err = <-uiDone

	// Ensure player is fully stopped before exiting
	controller.Stop()
	screen.Fini()

	if err != nil {
		log.Error().Err(err).Msg("Error running UI")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log.Info().Msgf("%s stopped", config.AppName)
	return 0
}

// pendingSignal returns a signal that arrived before the loop started.
func pendingSignal(sigChan <-chan os.Signal) (os.Signal, bool) {
	select {
	case sig := <-sigChan:
		return sig, true
	default:
		return nil, false
	}
}

func setupLogging(cfg *config.Config) {
	if !cfg.DebugEnabled() {
		// Avoid TUI corruption by only logging errors to /dev/null
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
		logFile, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0644)
		if err == nil {
			log.Logger = log.Output(logFile)
		}
		return
	}

	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	logPath, err := config.GetLogPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logPath = filepath.Join(os.TempDir(), config.AppName+"-"+config.LogFileName)
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log dir: %v\n", err)
	}

	var logFile *os.File
	logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log file: %v\n", err)
		logFile = os.Stderr
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: logFile, TimeFormat: "15:04:05"})
	fmt.Printf("Debug log: %s\n", logPath)
	log.Info().Msgf("Starting %s v%s (debug mode)", config.AppName, config.AppVersion)

	if configPath, err := config.GetConfigPath(); err == nil {
		log.Debug().Msgf("Config: %s", configPath)
	}
}
