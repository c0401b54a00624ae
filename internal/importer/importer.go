// Package importer wires the pipeline: RDF file to graph, graph to
// concept records, records to the database or to a dry-run report.
package importer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/geosemantic/skosload/internal/conf"
	"github.com/geosemantic/skosload/internal/datastore"
	"github.com/geosemantic/skosload/internal/errors"
	"github.com/geosemantic/skosload/internal/logging"
	"github.com/geosemantic/skosload/internal/skos"
)

// defaultSampleSize bounds the number of records printed in dry-run mode.
const defaultSampleSize = 10

// maxAnomalyExamples bounds the anomaly list in the run report.
const maxAnomalyExamples = 20

// Result summarizes one import run.
type Result struct {
	Identifier string
	Scheme     skos.SchemeInfo
	Concepts   int
	Labels     int
	Anomalies  []skos.Anomaly
	Stats      datastore.ImportStats
	DryRun     bool
	Duration   time.Duration
}

// Run executes one import. In dry-run mode the store is never touched;
// otherwise the whole thesaurus is written in one transaction.
func Run(ctx context.Context, settings *conf.Settings, store datastore.Interface, out io.Writer) (*Result, error) {
	log := logging.HumanLogger().With("component", "importer")
	imp := settings.Import
	start := time.Now()

	log.Info("Parsing thesaurus file", "file", imp.File, "format", imp.Format)
	graph, err := skos.LoadFile(imp.File, imp.Format)
	if err != nil {
		return nil, err
	}
	log.Info("Parsed thesaurus file", "file", imp.File, "triples", graph.Len())

	mapper := skos.NewMapper(graph, skos.MapperOptions{
		SchemeURI:   imp.SchemeURI,
		DefaultLang: imp.DefaultLang,
		Languages:   imp.Languages,
		LowerCase:   imp.LowerCase,
		SkosXL:      imp.SkosXL,
	})

	scheme, err := mapper.SelectScheme()
	if err != nil {
		return nil, err
	}
	log.Info("Selected concept scheme", "uri", scheme.URI, "title", scheme.Title)

	concepts, anomalies := mapper.Concepts(scheme)

	result := &Result{
		Identifier: imp.Name,
		Scheme:     scheme,
		Concepts:   len(concepts),
		Anomalies:  anomalies,
		DryRun:     imp.DryRun,
	}
	for i := range concepts {
		result.Labels += len(concepts[i].Labels)
	}

	if imp.Strict && len(anomalies) > 0 {
		return result, errors.Newf("strict mode: %d anomalies found, aborting before write", len(anomalies)).
			Component("importer").
			Category(errors.CategoryValidation).
			Context("anomalies", len(anomalies)).
			Context("file_path", imp.File).
			Build()
	}

	meta := datastore.ThesaurusMeta{
		Identifier:  imp.Name,
		Title:       scheme.Title,
		Description: scheme.Description,
		About:       scheme.URI,
		Date:        scheme.Date,
		SourceFile:  imp.File,
	}
	if imp.Title != "" {
		meta.Title = imp.Title
	}
	if imp.Description != "" {
		meta.Description = imp.Description
	}

	if imp.DryRun {
		result.Duration = time.Since(start)
		printDryRun(out, meta, concepts, result, imp.SampleSize)
		return result, nil
	}

	stats, err := store.ImportThesaurus(ctx, meta, concepts, datastore.ImportOptions{Strict: imp.Strict})
	if err != nil {
		return result, err
	}
	result.Stats = stats
	result.Duration = time.Since(start)

	log.Info("Import finished",
		"identifier", meta.Identifier,
		"concepts", result.Concepts,
		"labels", result.Labels,
		"anomalies", len(result.Anomalies),
		"duration", result.Duration)
	printAnomalies(out, result.Anomalies)

	return result, nil
}

// printDryRun writes the counts and a bounded record sample without
// touching storage.
func printDryRun(out io.Writer, meta datastore.ThesaurusMeta, concepts []skos.ConceptRecord, result *Result, sampleSize int) {
	if sampleSize <= 0 {
		sampleSize = defaultSampleSize
	}

	fmt.Fprintf(out, "Dry run: thesaurus %q (%s)\n", meta.Identifier, meta.About)
	fmt.Fprintf(out, "  title:       %s\n", meta.Title)
	fmt.Fprintf(out, "  description: %s\n", meta.Description)
	if meta.Date != "" {
		fmt.Fprintf(out, "  date:        %s\n", meta.Date)
	}
	fmt.Fprintf(out, "  concepts:    %d\n", result.Concepts)
	fmt.Fprintf(out, "  labels:      %d\n", result.Labels)
	fmt.Fprintf(out, "  anomalies:   %d\n", len(result.Anomalies))

	n := sampleSize
	if n > len(concepts) {
		n = len(concepts)
	}
	if n > 0 {
		fmt.Fprintf(out, "Sample of %d concept(s):\n", n)
		for i := 0; i < n; i++ {
			rec := &concepts[i]
			fmt.Fprintf(out, "  %s (code %q, alt_label %q)\n", rec.About, rec.Code, rec.AltLabel)
			for _, label := range rec.Labels {
				lang := label.Lang
				if lang == "" {
					lang = "-"
				}
				fmt.Fprintf(out, "    [%s] %s: %s\n", lang, label.Kind, label.Text)
			}
		}
	}

	printAnomalies(out, result.Anomalies)
}

// printAnomalies writes the anomaly summary plus a bounded example list.
func printAnomalies(out io.Writer, anomalies []skos.Anomaly) {
	if len(anomalies) == 0 {
		return
	}
	fmt.Fprintf(out, "%d anomaly/anomalies found:\n", len(anomalies))
	n := len(anomalies)
	if n > maxAnomalyExamples {
		n = maxAnomalyExamples
	}
	for i := 0; i < n; i++ {
		fmt.Fprintf(out, "  %s\n", anomalies[i])
	}
	if n < len(anomalies) {
		fmt.Fprintf(out, "  ... and %d more\n", len(anomalies)-n)
	}
}
