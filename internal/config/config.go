package config

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

type Config struct {
	DataFile  string
	NoPersist bool
	Reset     bool
	Backend   string
	DBDSN     string
	LogFile   string
	HTTPAddr  string
}

// Persist reports whether state is saved at all.
func (c Config) Persist() bool { return !c.NoPersist }

// LoadOnStart reports whether saved state is read at startup.
func (c Config) LoadOnStart() bool { return !c.NoPersist && !c.Reset }

// Load reads env defaults and then the command-line args (without the program name).
func Load(args []string) (Config, error) {
	return load(args, os.Getenv, os.Stderr)
}

func load(args []string, getenv func(string) string, usage io.Writer) (Config, error) {
	env := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	var cfg Config
	fs := pflag.NewFlagSet("posledger", pflag.ContinueOnError)
	fs.SetOutput(usage)
	fs.StringVar(&cfg.DataFile, "data-file", env("POS_DATA_FILE", "loja_dados.json"), "JSON state file")
	fs.BoolVar(&cfg.NoPersist, "no-persist", false, "do not load or save state")
	fs.BoolVar(&cfg.Reset, "reset", false, "start empty; still save unless --no-persist")
	fs.StringVar(&cfg.Backend, "backend", env("POS_BACKEND", BackendJSON), "state backend: json or sqlite")
	fs.StringVar(&cfg.DBDSN, "db-dsn", env("POS_DB_DSN", "posledger.db"), "sqlite database file (sqlite backend)")
	fs.StringVar(&cfg.LogFile, "log-file", env("POS_LOG_FILE", "posledger.log"), "action log file, - for stderr")
	fs.StringVar(&cfg.HTTPAddr, "serve", env("POS_HTTP_ADDR", ""), "serve the JSON API on this address instead of the menu")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	switch cfg.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return Config{}, fmt.Errorf("unknown backend %q (want json or sqlite)", cfg.Backend)
	}
	return cfg, nil
}

// Summary is the one-line description logged at startup.
func (c Config) Summary() map[string]any {
	return map[string]any{
		"data_file":  c.DataFile,
		"no_persist": c.NoPersist,
		"reset":      c.Reset,
		"backend":    c.Backend,
		"db_dsn":     c.DBDSN,
		"log_file":   c.LogFile,
		"serve":      c.HTTPAddr,
	}
}
