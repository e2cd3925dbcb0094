package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"typeahead/internal/config"
	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
	"typeahead/internal/logger"
	"typeahead/internal/source"
	"typeahead/internal/ui"
)

func main() {
	// Parse command line arguments
	var configPath, dictPath string
	flag.StringVar(&configPath, "config", "", "Path to the config file")
	flag.StringVar(&configPath, "c", "", "Path to the config file (shorthand)")
	flag.StringVar(&dictPath, "dict", "", "YAML dictionary of suggestions")
	flag.Parse()

	configSvc := config.NewConfigService()
	if configPath != "" {
		configSvc = config.NewConfigServiceAt(configPath)
	}
	cfg, configErr := loadOrCreateConfig(configSvc)

	// Set up logging; the terminal belongs to the TUI
	var logOut io.Writer = io.Discard
	logFile, err := logger.OpenFile(cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
	} else {
		defer logFile.Close()
		logOut = logFile
	}
	log.SetDefault(logger.New(logOut, "typeahead", logger.ParseLevel(cfg.Log.Level)))
	if configErr != nil {
		log.Warn("Error loading config, using defaults", "path", configSvc.Path(), "err", configErr)
	}

	if dictPath != "" {
		cfg.Source.Dictionary = dictPath
	}
	lookup, err := buildSource(cfg)
	if err != nil {
		fmt.Printf("Error loading suggestions: %v\n", err)
		os.Exit(1)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	bus := eventbus.New()
	defer bus.Close()

	uiModel := ui.NewModel(cfg, lookup, bus)
	uiModel.SetReadyMarker(os.Getenv("TYPEAHEAD_E2E_TEST") == "1")

	p := tea.NewProgram(uiModel,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	uiModel.SetProgram(p)

	subscribeEvents(bus, p)

	log.Info("Starting UI", "delay", cfg.Autocomplete.Delay(), "dictionary", cfg.Source.Dictionary)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Error("Error running program", "err", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	uiModel.Widget().Close()
	log.Info("UI exited normally")
}

// loadOrCreateConfig loads the config, writing the defaults on first run.
// Any error falls back to the defaults.
func loadOrCreateConfig(configSvc config.ConfigService) (*config.Config, error) {
	if _, err := os.Stat(configSvc.Path()); errors.Is(err, os.ErrNotExist) {
		cfg := config.DefaultConfig()
		if err := configSvc.Save(cfg); err != nil {
			return cfg, fmt.Errorf("failed to save default config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := configSvc.Load()
	if err != nil {
		return config.DefaultConfig(), err
	}
	return cfg, nil
}

// buildSource indexes the dictionary and wraps it with the simulated latency
func buildSource(cfg *config.Config) (domain.LookupFunc, error) {
	items := source.DefaultDictionary()
	if cfg.Source.Dictionary != "" {
		var err error
		items, err = source.LoadDictionary(cfg.Source.Dictionary)
		if err != nil {
			return nil, err
		}
	}

	trie := source.NewTrie(items, cfg.Autocomplete.Limit)
	lo, hi := cfg.Source.LatencyRange()
	latency := source.Latency{Min: lo, Max: hi, FailRate: cfg.Source.FailRate}
	log.Debug("Suggestion source ready", "entries", trie.Len(), "latency_min", lo, "latency_max", hi)

	return latency.Wrap(trie.Lookup), nil
}

// subscribeEvents logs widget events and forwards lookup outcomes to the UI
func subscribeEvents(bus eventbus.EventBus, p *tea.Program) {
	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}

	bus.Subscribe(eventbus.EventLookupSettled, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.LookupSettledEvent); ok {
			log.Debug("Lookup settled", "id", event.RequestID, "query", event.Query, "count", event.Count)
		}
		forward(e)
	})
	bus.Subscribe(eventbus.EventLookupFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.LookupFailedEvent); ok {
			log.Warn("Lookup failed", "id", event.RequestID, "query", event.Query, "err", event.Err)
		}
		forward(e)
	})
	bus.Subscribe(eventbus.EventResultDiscarded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ResultDiscardedEvent); ok {
			log.Debug("Stale result dropped", "id", event.RequestID, "query", event.Query)
		}
		forward(e)
	})
	bus.Subscribe(eventbus.EventSuggestionCommitted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SuggestionCommittedEvent); ok {
			log.Info("Suggestion selected", "index", event.Index, "value", event.Suggestion.Value)
		}
	})
}
