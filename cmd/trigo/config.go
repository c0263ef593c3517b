package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Viper config keys, layered trigo.yaml < environment < flags, matching
// the KeyBackend/KeyAddress-style constants cayley's command package
// binds its flags under.
const (
	keyBackend = "store.backend"
	keyDataDir = "store.data_dir"
	keyAddr    = "server.addr"
)

func initConfig() {
	viper.SetConfigName("trigo")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("trigo")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(keyBackend, "memory")
	viper.SetDefault(keyDataDir, "./trigo_data")
	viper.SetDefault(keyAddr, "localhost:8080")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("warning: error reading trigo.yaml: %v\n", err)
		}
	}
}

func registerStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("backend", "", `storage backend ("memory" or "badger")`)
	cmd.Flags().String("data-dir", "", "directory for the badger backend's data")
	_ = viper.BindPFlag(keyBackend, cmd.Flags().Lookup("backend"))
	_ = viper.BindPFlag(keyDataDir, cmd.Flags().Lookup("data-dir"))
}
