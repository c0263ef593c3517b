package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aleksaelezovic/trigo/pkg/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP SPARQL endpoint.",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := viper.GetString(keyAddr)

			qs, err := openStore()
			if err != nil {
				return err
			}
			defer qs.Close()

			count, _ := qs.Len()
			fmt.Printf("database loaded with %d quads\n", count)

			srv := server.NewServer(qs, addr)
			fmt.Printf("\ntrigo SPARQL endpoint starting...\n")
			fmt.Printf("   endpoint: http://%s/sparql\n", addr)
			fmt.Printf("   web UI:   http://%s/\n\n", addr)
			fmt.Printf("press Ctrl+C to stop\n\n")

			if err := srv.Start(); err != nil {
				log.Fatalf("server error: %v", err)
			}
			return nil
		},
	}
	cmd.Flags().String("addr", "", "address to listen on (host:port)")
	registerStoreFlags(cmd)
	_ = viper.BindPFlag(keyAddr, cmd.Flags().Lookup("addr"))
	return cmd
}
