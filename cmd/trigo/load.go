package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aleksaelezovic/trigo/pkg/rdf"
	"github.com/aleksaelezovic/trigo/pkg/store"
)

func newLoadCmd() *cobra.Command {
	var syntaxFlag, graphFlag string
	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Bulk-load an RDF file into the store.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path) // #nosec G304 - operator-supplied CLI argument
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			syntax, err := resolveSyntax(syntaxFlag, path)
			if err != nil {
				return err
			}

			qs, err := openStore()
			if err != nil {
				return err
			}
			defer qs.Close()

			var targetGraph rdf.Term
			if graphFlag != "" {
				targetGraph = rdf.NewNamedNode(graphFlag)
			}

			err = store.LoadGraphWithSyntax(qs, syntax, targetGraph,
				func() ([]*rdf.Triple, error) {
					switch syntax {
					case store.SyntaxTurtle:
						return rdf.NewTurtleParser(string(data)).Parse()
					case store.SyntaxNTriples:
						return rdf.NewNTriplesParser(string(data)).Parse()
					case store.SyntaxRdfXML:
						quads, err := rdf.NewRDFXMLParser().Parse(bytes.NewReader(data))
						if err != nil {
							return nil, err
						}
						triples := make([]*rdf.Triple, len(quads))
						for i, q := range quads {
							triples[i] = rdf.NewTriple(q.Subject, q.Predicate, q.Object)
						}
						return triples, nil
					default:
						return nil, &store.UnsupportedSyntaxError{MimeType: string(syntax)}
					}
				},
				func() ([]*rdf.Quad, error) {
					switch syntax {
					case store.SyntaxNQuads:
						return rdf.NewNQuadsParser(string(data)).Parse()
					case store.SyntaxTriG:
						return rdf.NewTriGParser(string(data)).Parse()
					default:
						return nil, &store.UnsupportedSyntaxError{MimeType: string(syntax)}
					}
				},
			)
			if err != nil {
				return err
			}

			count, _ := qs.Len()
			fmt.Printf("loaded %s; store now has %d quads\n", path, count)
			return nil
		},
	}
	cmd.Flags().StringVar(&syntaxFlag, "syntax", "", "RDF syntax MIME type (auto-detected from extension if omitted)")
	cmd.Flags().StringVar(&graphFlag, "graph", "", "target graph IRI for triple syntaxes (default graph if omitted)")
	registerStoreFlags(cmd)
	return cmd
}

// resolveSyntax honors an explicit --syntax flag, else guesses from the
// file extension.
func resolveSyntax(explicit, path string) (store.Syntax, error) {
	if explicit != "" {
		return store.SyntaxForMimeType(explicit)
	}
	switch {
	case strings.HasSuffix(path, ".ttl"):
		return store.SyntaxTurtle, nil
	case strings.HasSuffix(path, ".nt"):
		return store.SyntaxNTriples, nil
	case strings.HasSuffix(path, ".nq"):
		return store.SyntaxNQuads, nil
	case strings.HasSuffix(path, ".trig"):
		return store.SyntaxTriG, nil
	case strings.HasSuffix(path, ".rdf"), strings.HasSuffix(path, ".xml"):
		return store.SyntaxRdfXML, nil
	default:
		return "", fmt.Errorf("cannot infer RDF syntax from %q; pass --syntax", path)
	}
}
