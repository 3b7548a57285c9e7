package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/shutter/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config path (default ~/.config/shutter/config.toml)")
	prefsPath := flag.String("prefs", "", "preferences path (default ~/.config/shutter/prefs.toml)")
	apiURL := flag.String("api", "", "API base URL (overrides config)")
	userID := flag.Int64("user", 0, "signed-in user id (overrides config)")
	refresh := flag.Duration("refresh", 0, "feed refresh interval, e.g. 30s (overrides config)")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (overrides config)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		APIURL:     *apiURL,
		UserID:     *userID,
		LogLevel:   *logLevel,
	}
	if *refresh > 0 {
		opts.RefreshEvery = *refresh
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "shutter: %v\n", err)
		return 1
	}
	return 0
}
