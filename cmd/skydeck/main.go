package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/mpetrik/skydeck/internal/anchor"
	"github.com/mpetrik/skydeck/internal/config"
	"github.com/mpetrik/skydeck/internal/log"
	"github.com/mpetrik/skydeck/internal/moonraker"
	"github.com/mpetrik/skydeck/internal/mopidy"
	"github.com/mpetrik/skydeck/internal/skyblock"
	"github.com/mpetrik/skydeck/internal/store"
	"github.com/mpetrik/skydeck/internal/tui"
	"github.com/mpetrik/skydeck/internal/worker"
)

// Version is set at build time via -ldflags
var Version = "dev"

// shutdownGrace bounds how long workers get to acknowledge
// cancellation before the process exits anyway.
const shutdownGrace = 2 * time.Second

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("skydeck %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting skydeck", "version", Version)

	clock := skyblock.Clock{
		Epoch:         time.Unix(cfg.Skyblock.EpochUnix, 0).UTC(),
		RealMinPerDay: cfg.Skyblock.RealMinPerDay,
		DaysPerMonth:  cfg.Skyblock.DaysPerMonth,
		HoursPerDay:   cfg.Skyblock.HoursPerDay,
		EventDays:     skyblock.DefaultEventDays,
		FreeWillCycle: time.Duration(cfg.Skyblock.FreeWillCycleHours) * time.Hour,
	}

	anchorStore := anchor.NewStore(afero.NewOsFs(), cfg.Skyblock.AnchorFile, logger)
	fwAnchor := anchorStore.Load(time.Now())

	uiStore, err := store.Open(cfg.UI.StateFile, logger)
	if err != nil {
		// Run stateless rather than refuse to start the kiosk.
		logger.Warn("ui state unavailable", "error", err)
		uiStore = nil
	}
	uiState := store.UIState{View: store.ViewNowPlaying, SidebarVisible: cfg.UI.SidebarVisible}
	if uiStore != nil {
		uiState = uiStore.Load(uiState)
		defer uiStore.Close()
	}

	var dial mopidy.Dialer
	if cfg.Music.Enabled() {
		dial = mopidy.NewDialer(cfg.Music.Host, cfg.Music.Port, logger)
	}
	music := worker.NewMusicWorker(dial, cfg.Music.Interval(), logger)

	var querier worker.PrinterQuerier
	if cfg.Printer.Enabled() {
		querier = moonraker.NewClient(cfg.Printer.BaseURL(), logger)
	}
	printer := worker.NewPrinterWorker(querier, cfg.Printer.Interval(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		music.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		printer.Run(ctx)
	}()

	model := tui.NewModel(music, printer, clock, fwAnchor, uiStore, uiState, cfg.Skyblock.Tick())

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	_, uiErr := p.Run()

	cancel()
	waitWorkers(&wg, logger)

	if uiErr != nil {
		logger.Error("TUI error", "error", uiErr)
		return fmt.Errorf("TUI error: %w", uiErr)
	}

	logger.Info("shutting down")
	return nil
}

// waitWorkers blocks until both workers acknowledge cancellation, or
// gives up after the grace period.
func waitWorkers(wg *sync.WaitGroup, logger *slog.Logger) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(shutdownGrace):
		logger.Warn("workers did not stop in time")
	}
}
