package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aleksaelezovic/trigo/pkg/sparql"
)

func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Drop into an interactive SPARQL prompt.",
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := openStore()
			if err != nil {
				return err
			}
			defer qs.Close()

			engine := sparql.NewEngine(qs)
			fmt.Println("trigo SPARQL REPL. Terminate a query with a blank line. Ctrl+D to exit.")

			scanner := bufio.NewScanner(os.Stdin)
			var lines []string
			for {
				fmt.Print("sparql> ")
				if !scanner.Scan() {
					break
				}
				line := scanner.Text()
				if strings.TrimSpace(line) == "" {
					if len(lines) == 0 {
						continue
					}
					runReplQuery(engine, strings.Join(lines, "\n"))
					lines = lines[:0]
					continue
				}
				lines = append(lines, line)
			}
			return scanner.Err()
		},
	}
	registerStoreFlags(cmd)
	return cmd
}

func runReplQuery(engine *sparql.Engine, queryString string) {
	result, err := engine.Query(queryString)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	printResult(result)
}
