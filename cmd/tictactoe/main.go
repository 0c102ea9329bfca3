package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/BanTheRewind/learn-by-ai/internal/app"
	"github.com/BanTheRewind/learn-by-ai/internal/config"
	"github.com/BanTheRewind/learn-by-ai/internal/logging"
	"github.com/BanTheRewind/learn-by-ai/internal/web"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run serves until the listener fails. The log file is closed before it
// returns.
func run(args []string) error {
	fs := flag.NewFlagSet("tictactoe", flag.ContinueOnError)
	configPath := fs.String("config", os.Getenv("TICTACTOE_CONFIG"), "Path to a YAML config file")
	addr := fs.String("addr", "", "Listen address, overrides the config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	switch {
	case *addr != "":
		cfg.Addr = *addr
	case os.Getenv("PORT") != "":
		cfg.Addr = ":" + os.Getenv("PORT")
	}

	log, closer, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	svc := app.NewService(app.ServiceOptions{
		ThinkDelay: cfg.ThinkDelay,
		Logger:     log,
	})
	handler := web.NewServer(svc, web.Options{
		Logger:        log,
		DefaultHumans: cfg.DefaultHumans,
	})

	log.Info().
		Str("addr", cfg.Addr).
		Dur("thinkDelay", cfg.ThinkDelay).
		Int("defaultHumans", cfg.DefaultHumans).
		Msg("starting server")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Error().Err(err).Msg("server stopped")
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
