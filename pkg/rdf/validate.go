package rdf

import (
	"net/url"
	"regexp"
	"strings"
)

// No pack example vendors an RFC 3987 / BCP-47 grammar library (knakk/rdf
// hand-rolls IRI character-class checks in its own lexer instead of
// depending on one), so the syntactic checks below stay on net/url and
// regexp rather than reaching for an out-of-pack dependency.

// langTagPattern is a syntactic (not semantic) BCP-47 check: one or more
// alphanumeric subtags separated by hyphens, primary subtag alphabetic.
var langTagPattern = regexp.MustCompile(`^[a-zA-Z]{1,8}(-[a-zA-Z0-9]{1,8})*$`)

// ParseNamedNode validates iri as an absolute IRI (RFC 3987 syntactic form,
// approximated via net/url plus a scheme check) and returns a NamedNode.
func ParseNamedNode(iri string) (*NamedNode, error) {
	if iri == "" {
		return nil, &InvalidIriError{IRI: iri}
	}
	if strings.ContainsAny(iri, " \t\n\r<>\"{}|^`\\") {
		return nil, &InvalidIriError{IRI: iri}
	}
	u, err := url.Parse(iri)
	if err != nil || u.Scheme == "" {
		return nil, &InvalidIriError{IRI: iri}
	}
	return &NamedNode{IRI: iri}, nil
}

// ValidateLanguageTag checks tag for syntactic BCP-47 validity.
func ValidateLanguageTag(tag string) error {
	if !langTagPattern.MatchString(tag) {
		return &InvalidLanguageTagError{Tag: tag}
	}
	return nil
}

// NewLiteralWithLanguageValidated builds a language-tagged literal,
// lowercasing the tag for comparison purposes as required for term equality.
func NewLiteralWithLanguageValidated(value, language string) (*Literal, error) {
	if err := ValidateLanguageTag(language); err != nil {
		return nil, err
	}
	return &Literal{Value: value, Language: strings.ToLower(language)}, nil
}
