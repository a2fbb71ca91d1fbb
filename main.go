package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sadopc/studydesk/internal/cache"
	"github.com/sadopc/studydesk/internal/config"
	"github.com/sadopc/studydesk/internal/gateway"
	"github.com/sadopc/studydesk/internal/logging"
	"github.com/sadopc/studydesk/internal/store"
	"github.com/sadopc/studydesk/internal/timer"
	"github.com/sadopc/studydesk/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	c, err := cache.New(cfg.CachePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening cache: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	gw := gateway.NewClient(cfg.APIURL,
		gateway.WithTimeout(cfg.HTTPTimeout),
		gateway.WithLogger(log.Named("gateway")),
	)
	s := store.New(gw, c, store.WithLogger(log.Named("store")))

	src, err := s.Load(context.Background())
	if err != nil {
		log.Error("initial load failed", zap.Error(err))
	}
	log.Info("studydesk started", zap.String("api", cfg.APIURL), zap.Stringer("source", src))

	notices := tui.NewNotifier(os.Stderr)
	engine := timer.New(s.Config(),
		timer.WithNotifier(notices),
		timer.WithConfigSaver(gw),
		timer.WithSessionRecorder(s.RecordSession),
		timer.WithLogger(log.Named("timer")),
	)

	app := tui.NewApp(s, engine, notices, tui.WithLogger(log.Named("tui")))
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
