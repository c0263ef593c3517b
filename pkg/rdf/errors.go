package rdf

import "fmt"

// InvalidIriError is returned when a NamedNode is constructed from a string
// that does not parse as an absolute IRI.
type InvalidIriError struct {
	IRI string
}

func (e *InvalidIriError) Error() string {
	return fmt.Sprintf("invalid IRI: %q", e.IRI)
}

// InvalidLanguageTagError is returned when a language-tagged literal is
// constructed with a tag that is not syntactically valid BCP-47.
type InvalidLanguageTagError struct {
	Tag string
}

func (e *InvalidLanguageTagError) Error() string {
	return fmt.Sprintf("invalid language tag: %q", e.Tag)
}
