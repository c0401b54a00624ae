package skos

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knakk/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geosemantic/skosload/internal/errors"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validNTriples = `<http://example.org/thesaurus> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2004/02/skos/core#ConceptScheme> .
<http://example.org/concept/1> <http://www.w3.org/2004/02/skos/core#inScheme> <http://example.org/thesaurus> .
<http://example.org/concept/1> <http://www.w3.org/2004/02/skos/core#prefLabel> "term 1"@en .
<http://example.org/concept/1> <http://www.w3.org/2004/02/skos/core#altLabel> "terme 1"@fr .
`

func TestLoadFileNTriples(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "thesaurus.nt", validNTriples)
	g, err := LoadFile(path, "")
	require.NoError(t, err)

	assert.Equal(t, 4, g.Len())
	assert.Equal(t, []string{"http://example.org/concept/1"}, g.Subjects(InScheme, "http://example.org/thesaurus"))

	labels := g.Literals("http://example.org/concept/1", PrefLabel)
	require.Len(t, labels, 1)
	assert.Equal(t, "term 1", labels[0].Value)
	assert.Equal(t, "en", labels[0].Lang)
}

func TestLoadFileMalformed(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, "broken.nt", "this is not rdf at all\n")
	_, err := LoadFile(path, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))
	// the message must reference the offending file
	assert.Contains(t, err.Error(), path)
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.nt"), "")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMalformedInput))
	assert.True(t, errors.IsCategory(err, errors.CategoryFileIO))
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path   string
		format string
		want   rdf.Format
	}{
		{"x.ttl", "", rdf.Turtle},
		{"x.nt", "", rdf.NTriples},
		{"x.rdf", "", rdf.RDFXML},
		{"x.xml", "", rdf.RDFXML},
		{"x.owl", "", rdf.RDFXML},
		{"x.dat", "ttl", rdf.Turtle},
		{"x.dat", "xml", rdf.RDFXML},
	}
	for _, tc := range cases {
		got, err := DetectFormat(tc.path, tc.format)
		require.NoError(t, err, "path %s format %s", tc.path, tc.format)
		assert.Equal(t, tc.want, got)
	}
}

func TestDetectFormatUnknown(t *testing.T) {
	t.Parallel()

	_, err := DetectFormat("thesaurus.dat", "")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))
}
