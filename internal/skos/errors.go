package skos

import "github.com/geosemantic/skosload/internal/errors"

// Fatal error sentinels for the parse and mapping stages. Callers match
// them with errors.Is; the wrapped enhanced errors carry file and URI
// context for diagnostics.
var (
	// ErrMalformedInput indicates the file could not be parsed as RDF in
	// the requested serialization.
	ErrMalformedInput = errors.NewStd("malformed RDF input")

	// ErrSchemeNotFound indicates no usable skos:ConceptScheme exists in
	// the graph.
	ErrSchemeNotFound = errors.NewStd("concept scheme not found")

	// ErrAmbiguousScheme indicates multiple schemes exist and the
	// backlink-majority rule could not break the tie.
	ErrAmbiguousScheme = errors.NewStd("ambiguous concept scheme")
)
