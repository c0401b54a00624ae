package importer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/geosemantic/skosload/internal/conf"
	"github.com/geosemantic/skosload/internal/datastore"
	"github.com/geosemantic/skosload/internal/errors"
	"github.com/geosemantic/skosload/internal/skos"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("testing.(*T).Run"),
		goleak.IgnoreTopFunction("gopkg.in/natefinch/lumberjack%2ev2.(*Logger).millRun"),
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
	)
}

const sampleThesaurus = `<http://example.org/thesaurus> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2004/02/skos/core#ConceptScheme> .
<http://example.org/thesaurus> <http://purl.org/dc/elements/1.1/title> "Example Thesaurus"@en .
<http://example.org/thesaurus> <http://purl.org/dc/elements/1.1/description> "A thesaurus for tests" .
<http://example.org/thesaurus> <http://purl.org/dc/terms/issued> "2024-01-01" .
<http://example.org/concept/1> <http://www.w3.org/2004/02/skos/core#inScheme> <http://example.org/thesaurus> .
<http://example.org/concept/1> <http://www.w3.org/2004/02/skos/core#prefLabel> "term 1"@en .
<http://example.org/concept/1> <http://www.w3.org/2004/02/skos/core#altLabel> "terme 1"@fr .
<http://example.org/concept/2> <http://www.w3.org/2004/02/skos/core#inScheme> <http://example.org/thesaurus> .
<http://example.org/concept/2> <http://www.w3.org/2004/02/skos/core#prefLabel> "term 2"@en .
<http://example.org/concept/2> <http://www.w3.org/2004/02/skos/core#altLabel> "terme 2"@fr .
`

const noSchemeThesaurus = `<http://example.org/concept/1> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2004/02/skos/core#Concept> .
<http://example.org/concept/1> <http://www.w3.org/2004/02/skos/core#prefLabel> "orphan"@en .
`

const duplicatePrefThesaurus = `<http://example.org/thesaurus> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2004/02/skos/core#ConceptScheme> .
<http://example.org/concept/1> <http://www.w3.org/2004/02/skos/core#inScheme> <http://example.org/thesaurus> .
<http://example.org/concept/1> <http://www.w3.org/2004/02/skos/core#prefLabel> "term 1"@en .
<http://example.org/concept/1> <http://www.w3.org/2004/02/skos/core#prefLabel> "term one"@en .
`

func newTestSettings(t *testing.T, content string) *conf.Settings {
	t.Helper()

	dir := t.TempDir()
	file := filepath.Join(dir, "thesaurus.nt")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	settings := &conf.Settings{}
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = filepath.Join(dir, "thesauri.db")
	settings.Import = conf.ImportSettings{
		Name:        "example",
		File:        file,
		DefaultLang: "en",
	}
	return settings
}

func openStore(t *testing.T, settings *conf.Settings) datastore.Interface {
	t.Helper()
	store := datastore.New(settings)
	require.NotNil(t, store)
	require.NoError(t, store.Open())
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestRunImportsThesaurus(t *testing.T) {
	settings := newTestSettings(t, sampleThesaurus)
	store := openStore(t, settings)

	var out bytes.Buffer
	result, err := Run(context.Background(), settings, store, &out)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Concepts)
	assert.Equal(t, 4, result.Labels)
	assert.Empty(t, result.Anomalies)
	assert.False(t, result.DryRun)
	assert.Equal(t, "http://example.org/thesaurus", result.Scheme.URI)
	assert.Equal(t, "Example Thesaurus", result.Scheme.Title)

	counts, err := store.Counts()
	require.NoError(t, err)
	assert.Equal(t, datastore.RowCounts{Thesauri: 1, Keywords: 2, Labels: 4}, counts)

	thesaurus, err := store.GetThesaurus("example")
	require.NoError(t, err)
	assert.Equal(t, "Example Thesaurus", thesaurus.Title)
	assert.Equal(t, "2024-01-01", thesaurus.Date)
	assert.Equal(t, settings.Import.File, thesaurus.SourceFile)
}

func TestRunIdempotent(t *testing.T) {
	settings := newTestSettings(t, sampleThesaurus)
	store := openStore(t, settings)
	ctx := context.Background()

	var out bytes.Buffer
	_, err := Run(ctx, settings, store, &out)
	require.NoError(t, err)
	_, err = Run(ctx, settings, store, &out)
	require.NoError(t, err)

	counts, err := store.Counts()
	require.NoError(t, err)
	assert.Equal(t, datastore.RowCounts{Thesauri: 1, Keywords: 2, Labels: 4}, counts)
}

func TestRunDryRunNeverMutates(t *testing.T) {
	settings := newTestSettings(t, sampleThesaurus)
	settings.Import.DryRun = true
	store := openStore(t, settings)

	var out bytes.Buffer
	result, err := Run(context.Background(), settings, store, &out)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 2, result.Concepts)
	assert.Equal(t, 4, result.Labels)

	report := out.String()
	assert.Contains(t, report, "Dry run")
	assert.Contains(t, report, "concepts:    2")
	assert.Contains(t, report, "labels:      4")
	assert.Contains(t, report, "http://example.org/concept/1")

	counts, err := store.Counts()
	require.NoError(t, err)
	assert.Equal(t, datastore.RowCounts{}, counts)
}

func TestRunDryRunWithoutStore(t *testing.T) {
	settings := newTestSettings(t, sampleThesaurus)
	settings.Import.DryRun = true

	// dry run must work with no storage attached at all
	var out bytes.Buffer
	result, err := Run(context.Background(), settings, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Concepts)
}

func TestRunSchemeNotFound(t *testing.T) {
	settings := newTestSettings(t, noSchemeThesaurus)
	store := openStore(t, settings)

	var out bytes.Buffer
	_, err := Run(context.Background(), settings, store, &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, skos.ErrSchemeNotFound))

	counts, err := store.Counts()
	require.NoError(t, err)
	assert.Equal(t, datastore.RowCounts{}, counts, "no rows may be written on a fatal mapping error")
}

func TestRunMalformedInput(t *testing.T) {
	settings := newTestSettings(t, "not rdf\n")
	store := openStore(t, settings)

	var out bytes.Buffer
	_, err := Run(context.Background(), settings, store, &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, skos.ErrMalformedInput))
	assert.Contains(t, err.Error(), settings.Import.File)

	counts, err := store.Counts()
	require.NoError(t, err)
	assert.Equal(t, datastore.RowCounts{}, counts)
}

func TestRunDuplicatePreferredReported(t *testing.T) {
	settings := newTestSettings(t, duplicatePrefThesaurus)
	store := openStore(t, settings)

	var out bytes.Buffer
	result, err := Run(context.Background(), settings, store, &out)
	require.NoError(t, err, "duplicate preferred labels are an anomaly, not fatal")

	require.Len(t, result.Anomalies, 1)
	assert.Equal(t, skos.AnomalyDuplicatePreferred, result.Anomalies[0].Kind)
	assert.Contains(t, out.String(), "duplicate-preferred-label")

	counts, err := store.Counts()
	require.NoError(t, err)
	assert.Equal(t, datastore.RowCounts{Thesauri: 1, Keywords: 1, Labels: 1}, counts)
}

func TestRunStrictAbortsOnAnomaly(t *testing.T) {
	settings := newTestSettings(t, duplicatePrefThesaurus)
	settings.Import.Strict = true
	store := openStore(t, settings)

	var out bytes.Buffer
	_, err := Run(context.Background(), settings, store, &out)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))

	counts, err := store.Counts()
	require.NoError(t, err)
	assert.Equal(t, datastore.RowCounts{}, counts)
}

func TestRunTitleOverride(t *testing.T) {
	settings := newTestSettings(t, sampleThesaurus)
	settings.Import.Title = "Overridden"
	settings.Import.Description = "Custom description"
	store := openStore(t, settings)

	var out bytes.Buffer
	_, err := Run(context.Background(), settings, store, &out)
	require.NoError(t, err)

	thesaurus, err := store.GetThesaurus("example")
	require.NoError(t, err)
	assert.Equal(t, "Overridden", thesaurus.Title)
	assert.Equal(t, "Custom description", thesaurus.Description)
}
