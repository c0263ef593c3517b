package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	cobra.OnInitialize(initConfig)

	root := &cobra.Command{
		Use:   "trigo",
		Short: "trigo is an embeddable RDF graph database with a SPARQL query engine.",
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newLoadCmd())
	root.AddCommand(newQueryCmd())
	root.AddCommand(newReplCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
