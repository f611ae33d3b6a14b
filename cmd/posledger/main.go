package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"posledger/internal/config"
	"posledger/internal/console"
	"posledger/internal/http/handlers"
	applog "posledger/internal/log"
	"posledger/internal/repos"
	"posledger/internal/store"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logOut, closeLog, err := openLog(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "could not open log file %s: %v\n", cfg.LogFile, err)
		return 1
	}
	defer closeLog()
	if cfg.HTTPAddr != "" {
		logOut = io.MultiWriter(stdout, logOut)
	}
	applog.Init(logOut)
	defer applog.Sync()
	applog.Info(nil, "config.load", cfg.Summary())

	repo, closeRepo, err := openRepo(cfg)
	if err != nil {
		applog.Error(nil, "repo.open.fail", err, nil)
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer closeRepo()

	st := store.New()
	if cfg.LoadOnStart() {
		if st, err = store.Open(repo); err != nil {
			fmt.Fprintf(stderr, "could not load %s: %v\n", repo, err)
			return 1
		}
	}

	var save func() error
	if cfg.Persist() {
		save = func() error { return st.Save(repo) }
	}

	if cfg.HTTPAddr != "" {
		return serve(cfg.HTTPAddr, st, save, stderr)
	}
	if err := console.New(st, save, stdin, stdout).Run(); err != nil {
		return 1
	}
	return 0
}

func openLog(cfg config.Config, stderr io.Writer) (io.Writer, func(), error) {
	if cfg.LogFile == "-" {
		return stderr, func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func openRepo(cfg config.Config) (store.Repo, func(), error) {
	if cfg.Backend != config.BackendSQLite {
		return repos.NewJSONFile(cfg.DataFile), func() {}, nil
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return nil, nil, err
	}
	return repos.NewSQLiteRepo(db), func() { _ = db.Close() }, nil
}

// serve runs the JSON API until SIGINT or SIGTERM, then saves.
func serve(addr string, st *store.Store, save func() error, stderr io.Writer) int {
	app := handlers.NewApp(handlers.NewDeps(st, save))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Listen(addr) }()
	applog.Info(nil, "server.start", map[string]any{"addr": addr})

	code := 0
	select {
	case err := <-errc:
		applog.Error(nil, "server.listen.fail", err, map[string]any{"addr": addr})
		fmt.Fprintln(stderr, err)
		return 1
	case <-ctx.Done():
	}
	if err := app.Shutdown(); err != nil {
		applog.Error(nil, "server.shutdown.fail", err, nil)
	}
	if save != nil {
		if err := save(); err != nil {
			fmt.Fprintln(stderr, err)
			code = 1
		}
	}
	applog.Info(nil, "server.stop", nil)
	return code
}
