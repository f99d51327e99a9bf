/*
Mathscriptd runs the mathscript expression-evaluation HTTP API.

Usage:

	mathscriptd [flags]

The flags are:

	-c, --config FILE
		Path to the TOML configuration file. Defaults to "mathscriptd.toml"
		in the current directory.

	-l, --listen ADDRESS
		Override the listen_address configured in the config file.

Mathscriptd reads its configuration, fills in defaults, validates it,
prepares the configured history store (in-memory or SQLite, per
history.db), and serves until interrupted by SIGINT/SIGTERM, at which
point it shuts down gracefully.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dekarrin/mathscript/history"
	"github.com/dekarrin/mathscript/history/inmem"
	"github.com/dekarrin/mathscript/history/sqlite"
	"github.com/dekarrin/mathscript/internal/config"
	"github.com/dekarrin/mathscript/server"
	"github.com/spf13/pflag"
)

const (
	ExitSuccess = iota
	ExitConfigError
	ExitServeError
)

var (
	returnCode int

	flagConfig = pflag.StringP("config", "c", "mathscriptd.toml", "Path to the TOML configuration file")
	flagListen = pflag.StringP("listen", "l", "", "Override the configured listen address")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: loading config: %s\n", err.Error())
		returnCode = ExitConfigError
		return
	}
	cfg = cfg.FillDefaults()

	if *flagListen != "" {
		cfg.ListenAddress = *flagListen
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: invalid config: %s\n", err.Error())
		returnCode = ExitConfigError
		return
	}

	if err := cfg.EnsureHistoryDataDir(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: preparing history data dir: %s\n", err.Error())
		returnCode = ExitConfigError
		return
	}

	hist, err := openHistoryStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: opening history store: %s\n", err.Error())
		returnCode = ExitConfigError
		return
	}

	srv, err := server.New(cfg, hist)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: building server: %s\n", err.Error())
		returnCode = ExitConfigError
		hist.Close()
		return
	}
	defer srv.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("mathscriptd listening on %s\n", cfg.ListenAddress)
	if err := srv.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitServeError
		return
	}
}

func openHistoryStore(cfg config.Config) (history.Store, error) {
	switch cfg.History.DB {
	case config.DatabaseSQLite:
		return sqlite.NewStore(cfg.History.DataDir)
	default:
		return inmem.NewStore(), nil
	}
}
