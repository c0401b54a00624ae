package skos

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knakk/rdf"

	"github.com/geosemantic/skosload/internal/errors"
)

// DetectFormat maps a format flag value or file extension to an RDF
// serialization. Accepted flag values are "ttl", "nt" and "xml"; with an
// empty flag the file extension decides.
func DetectFormat(path, format string) (rdf.Format, error) {
	key := strings.ToLower(format)
	if key == "" {
		key = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch key {
	case "ttl", "turtle":
		return rdf.Turtle, nil
	case "nt", "ntriples":
		return rdf.NTriples, nil
	case "xml", "rdf", "owl", "rdfxml":
		return rdf.RDFXML, nil
	default:
		return rdf.Turtle, errors.Newf("cannot determine RDF serialization for %q, use --format", path).
			Component("skos").
			Category(errors.CategoryValidation).
			Context("file_path", path).
			Context("format", format).
			Build()
	}
}

// LoadFile streams the triples of an RDF file into a Graph. The decoder
// reads one triple at a time, so peak memory is bounded by the indexed
// graph, not by parse buffers. Any decode failure aborts the load with
// ErrMalformedInput carrying the file path and the parser diagnostic.
func LoadFile(path, format string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(err).
			Component("skos").
			Category(errors.CategoryFileIO).
			Context("file_path", path).
			Build()
	}
	defer f.Close()

	rdfFormat, err := DetectFormat(path, format)
	if err != nil {
		return nil, err
	}

	var size int64
	if fi, err := f.Stat(); err == nil {
		size = fi.Size()
	}

	g := NewGraph()
	dec := rdf.NewTripleDecoder(f, rdfFormat)
	for {
		triple, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.New(fmt.Errorf("%w: %s: %v", ErrMalformedInput, path, err)).
				Component("skos").
				Category(errors.CategoryFileParsing).
				FileContext(path, size).
				Context("diagnostic", err.Error()).
				Build()
		}
		g.Insert(triple.Subj.String(), triple.Pred.String(), toTerm(triple.Obj))
	}

	return g, nil
}

func toTerm(obj rdf.Term) Term {
	switch o := obj.(type) {
	case rdf.Literal:
		return Term{Value: o.String(), Kind: TermLiteral, Lang: o.Lang()}
	case rdf.Blank:
		return Term{Value: o.String(), Kind: TermBlank}
	default:
		return Term{Value: obj.String(), Kind: TermIRI}
	}
}
