package bootstrap

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hattournament/src/infra/config"
)

func TestOpenStore_Memory(t *testing.T) {
	store, closeFn, err := OpenStore(context.Background(), config.DatabaseConfig{Driver: "memory"}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer closeFn()

	assert.NoError(t, store.Health(context.Background()))
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, _, err := OpenStore(context.Background(), config.DatabaseConfig{Driver: "sqlite"}, slog.New(slog.DiscardHandler))
	assert.Error(t, err)
}

func TestCheckStore(t *testing.T) {
	log := slog.New(slog.DiscardHandler)

	assert.NoError(t, CheckStore(context.Background(), config.DatabaseConfig{Driver: "memory"}, log))
	assert.Error(t, CheckStore(context.Background(), config.DatabaseConfig{Driver: "sqlite"}, log))
}
