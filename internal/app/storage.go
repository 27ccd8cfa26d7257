package app

import (
	"fmt"

	"github.com/adanyl0v/todoboard/internal/config"
	"github.com/adanyl0v/todoboard/internal/storage"
)

var globalTodoStore storage.TodoStore

// MustInitStorage builds the todo store selected by STORAGE_DRIVER
// and connects to Postgres when that driver is in use.
func MustInitStorage() {
	cfg := config.Global().Storage

	switch cfg.Driver {
	case config.StorageDriverPostgres:
		MustConnectPostgres()
		globalTodoStore = storage.NewPostgresStore(globalLogger, globalPostgresPool)
	case config.StorageDriverMemory:
		globalTodoStore = storage.NewMemoryStore()
	default:
		globalLogger.Error().
			Str("driver", cfg.Driver).
			Msg("unknown storage driver")
		panic(fmt.Errorf("unknown storage driver: %s", cfg.Driver))
	}

	globalLogger.Info().
		Str("driver", cfg.Driver).
		Msg("initialized todo store")
}

func CloseStorage() {
	if config.Global().Storage.Driver == config.StorageDriverPostgres {
		DisconnectPostgres()
	}
}
