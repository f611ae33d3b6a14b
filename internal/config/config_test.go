package config

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func TestDefaults(t *testing.T) {
	cfg, err := load(nil, noEnv, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "loja_dados.json", cfg.DataFile)
	assert.Equal(t, BackendJSON, cfg.Backend)
	assert.Equal(t, "posledger.log", cfg.LogFile)
	assert.Empty(t, cfg.HTTPAddr)
	assert.True(t, cfg.Persist())
	assert.True(t, cfg.LoadOnStart())
}

func TestFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		persist   bool
		loadStart bool
	}{
		{"no-persist", []string{"--no-persist"}, false, false},
		{"reset", []string{"--reset"}, true, false},
		{"both", []string{"--reset", "--no-persist"}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := load(tt.args, noEnv, io.Discard)
			require.NoError(t, err)
			assert.Equal(t, tt.persist, cfg.Persist())
			assert.Equal(t, tt.loadStart, cfg.LoadOnStart())
		})
	}
}

func TestEnvThenFlags(t *testing.T) {
	env := map[string]string{"POS_DATA_FILE": "env.json", "POS_BACKEND": "sqlite"}
	getenv := func(k string) string { return env[k] }

	cfg, err := load(nil, getenv, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "env.json", cfg.DataFile)
	assert.Equal(t, BackendSQLite, cfg.Backend)

	cfg, err = load([]string{"--data-file", "flag.json", "--backend=json"}, getenv, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "flag.json", cfg.DataFile)
	assert.Equal(t, BackendJSON, cfg.Backend)
}

func TestRejectsBadInput(t *testing.T) {
	_, err := load([]string{"--backend", "mongo"}, noEnv, io.Discard)
	assert.Error(t, err)

	_, err = load([]string{"--bogus"}, noEnv, io.Discard)
	assert.Error(t, err)

	_, err = load([]string{"extra"}, noEnv, io.Discard)
	assert.Error(t, err)
}
