package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aleksaelezovic/trigo/pkg/rdf"
	"github.com/aleksaelezovic/trigo/pkg/sparql"
	"github.com/aleksaelezovic/trigo/pkg/sparql/executor"
)

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [sparql]",
		Short: "Run a SPARQL query and print the results. Reads from stdin if no argument is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var queryString string
			if len(args) == 1 {
				queryString = args[0]
			} else {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("reading query from stdin: %w", err)
				}
				queryString = string(data)
			}

			qs, err := openStore()
			if err != nil {
				return err
			}
			defer qs.Close()

			engine := sparql.NewEngine(qs)
			result, err := engine.Query(queryString)
			if err != nil {
				return err
			}
			printResult(result)
			return nil
		},
	}
	registerStoreFlags(cmd)
	return cmd
}

func printResult(result executor.QueryResult) {
	switch r := result.(type) {
	case *executor.SelectResult:
		for _, binding := range r.Bindings {
			for varName, term := range binding.Vars {
				fmt.Printf("  %s = %s\n", varName, formatTerm(term))
			}
			fmt.Println()
		}
		fmt.Printf("%d results\n", len(r.Bindings))
	case *executor.AskResult:
		fmt.Printf("%t\n", r.Result)
	case *executor.ConstructResult:
		for _, triple := range r.Triples {
			fmt.Printf("<%s> <%s> ", triple.Subject.Value, triple.Predicate.Value)
			switch triple.Object.Type {
			case "iri":
				fmt.Printf("<%s>", triple.Object.Value)
			case "literal":
				fmt.Printf("%q", triple.Object.Value)
			default:
				fmt.Printf("_:%s", triple.Object.Value)
			}
			fmt.Println(" .")
		}
	}
}

// formatTerm renders a term's local name (the part after the last "/" or
// "#") for compact terminal display, falling back to the full IRI/literal
// form.
func formatTerm(term rdf.Term) string {
	switch t := term.(type) {
	case *rdf.NamedNode:
		iri := t.IRI
		for i := len(iri) - 1; i >= 0; i-- {
			if iri[i] == '/' || iri[i] == '#' {
				return iri[i+1:]
			}
		}
		return iri
	case *rdf.Literal:
		return t.Value
	default:
		return term.String()
	}
}
