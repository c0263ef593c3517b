package main

import (
	"fmt"
	"log"

	"github.com/spf13/viper"

	"github.com/aleksaelezovic/trigo/internal/storage"
	"github.com/aleksaelezovic/trigo/pkg/store"
)

// openStore opens the backend named by keyBackend, creating the badger
// data directory if it doesn't exist yet. The caller is responsible for
// calling Close on the returned store.
func openStore() (*store.QuadStore, error) {
	backend := viper.GetString(keyBackend)
	switch backend {
	case "memory":
		return store.NewQuadStore(storage.NewMemoryStorage()), nil
	case "badger", "":
		dataDir := viper.GetString(keyDataDir)
		log.Printf("opening badger store at %s", dataDir)
		backend, err := storage.NewBadgerStorage(dataDir)
		if err != nil {
			return nil, err
		}
		return store.NewQuadStore(backend), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want \"memory\" or \"badger\")", backend)
	}
}
