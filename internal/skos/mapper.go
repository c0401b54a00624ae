// Package skos maps RDF/SKOS graphs to the normalized concept records
// the persistence layer stores.
package skos

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/geosemantic/skosload/internal/errors"
)

// LabelKind distinguishes the canonical label from synonyms.
type LabelKind string

const (
	LabelPreferred LabelKind = "preferred"
	LabelAlternate LabelKind = "alternate"
)

// Label is one language-tagged label of a concept. Lang is empty for
// literals without a language tag.
type Label struct {
	Lang string
	Kind LabelKind
	Text string
}

// ConceptRecord is the normalized form of one skos:Concept.
type ConceptRecord struct {
	About    string // concept URI
	Code     string // final URI path segment, empty when not derivable
	AltLabel string // default-language preferred label fallback
	Labels   []Label
}

// AnomalyKind classifies per-concept findings that are reported but not
// individually fatal.
type AnomalyKind string

const (
	AnomalyMissingCode        AnomalyKind = "missing-code"
	AnomalyDuplicatePreferred AnomalyKind = "duplicate-preferred-label"
	AnomalyNoDefaultLabel     AnomalyKind = "no-default-language-label"
)

// Anomaly records one finding for the run report.
type Anomaly struct {
	Kind    AnomalyKind
	Concept string
	Lang    string
	Detail  string
}

func (a Anomaly) String() string {
	if a.Lang != "" {
		return fmt.Sprintf("%s: %s [%s] %s", a.Kind, a.Concept, a.Lang, a.Detail)
	}
	return fmt.Sprintf("%s: %s %s", a.Kind, a.Concept, a.Detail)
}

// SchemeInfo is the metadata extracted from the selected concept scheme.
type SchemeInfo struct {
	URI         string
	Title       string
	Description string
	Date        string
}

// MapperOptions control scheme selection and label normalization.
type MapperOptions struct {
	SchemeURI   string   // pin the scheme instead of auto-selecting
	DefaultLang string   // language for title selection and keyword fallback label
	Languages   []string // keep only these language tags, empty keeps all
	LowerCase   bool     // lower-case stored URIs, labels and language tags
	SkosXL      bool     // also resolve skosxl:prefLabel/altLabel reification
}

// Mapper walks a loaded graph and produces concept records. The graph is
// never mutated, so every pass over the same graph yields the same
// sequence.
type Mapper struct {
	graph *Graph
	opts  MapperOptions
	langs map[string]bool
}

// NewMapper creates a mapper over g.
func NewMapper(g *Graph, opts MapperOptions) *Mapper {
	var langs map[string]bool
	if len(opts.Languages) > 0 {
		langs = make(map[string]bool, len(opts.Languages))
		for _, l := range opts.Languages {
			langs[strings.ToLower(l)] = true
		}
	}
	return &Mapper{graph: g, opts: opts, langs: langs}
}

// SelectScheme locates the concept scheme this import targets.
//
// With a pinned URI the scheme only has to exist in the graph, either as
// a typed skos:ConceptScheme or as the target of membership triples.
// Without a pin, a single typed scheme is used as is; among several, the
// one with the most skos:inScheme plus skos:topConceptOf backlinks wins,
// and a tie between the top two is fatal.
func (m *Mapper) SelectScheme() (SchemeInfo, error) {
	if m.opts.SchemeURI != "" {
		uri := m.opts.SchemeURI
		typed := false
		for _, o := range m.graph.Objects(uri, RDFType) {
			if o.Value == ConceptScheme {
				typed = true
				break
			}
		}
		if !typed && m.backlinks(uri) == 0 {
			return SchemeInfo{}, errors.New(fmt.Errorf("%w: %s not in graph", ErrSchemeNotFound, uri)).
				Component("skos").
				Category(errors.CategoryScheme).
				Context("scheme_uri", uri).
				Build()
		}
		return m.schemeInfo(uri), nil
	}

	schemes := m.graph.Subjects(RDFType, ConceptScheme)
	switch len(schemes) {
	case 0:
		return SchemeInfo{}, errors.New(ErrSchemeNotFound).
			Component("skos").
			Category(errors.CategoryScheme).
			Build()
	case 1:
		return m.schemeInfo(schemes[0]), nil
	}

	sort.SliceStable(schemes, func(i, j int) bool {
		return m.backlinks(schemes[i]) > m.backlinks(schemes[j])
	})
	if m.backlinks(schemes[0]) == m.backlinks(schemes[1]) {
		return SchemeInfo{}, errors.New(fmt.Errorf("%w: %d candidates, equal membership counts", ErrAmbiguousScheme, len(schemes))).
			Component("skos").
			Category(errors.CategoryScheme).
			Context("candidates", strings.Join(schemes, ", ")).
			Build()
	}
	return m.schemeInfo(schemes[0]), nil
}

func (m *Mapper) backlinks(scheme string) int {
	return m.graph.SubjectCount(InScheme, scheme) + m.graph.SubjectCount(TopConceptOf, scheme)
}

func (m *Mapper) schemeInfo(uri string) SchemeInfo {
	info := SchemeInfo{URI: uri}

	var titles []Term
	for _, pred := range []string{DCTitle, DCTermsTitle, RDFSLabel, PrefLabel} {
		titles = append(titles, m.graph.Literals(uri, pred)...)
	}
	info.Title = valueForLanguage(titles, m.opts.DefaultLang)

	if desc, ok := m.graph.Value(uri, DCDescription); ok && desc.IsLiteral() {
		info.Description = desc.Value
	} else {
		info.Description = info.Title
	}

	if issued, ok := m.graph.Value(uri, DCTermsIssued); ok {
		info.Date = issued.Value
	} else if modified, ok := m.graph.Value(uri, DCTermsMod); ok {
		info.Date = modified.Value
	}

	return info
}

// ConceptURIs enumerates the concepts belonging to the scheme, sorted by
// URI. Membership comes from skos:inScheme and skos:topConceptOf; when a
// file carries no membership triples at all, subjects typed skos:Concept
// are used instead.
func (m *Mapper) ConceptURIs(scheme SchemeInfo) []string {
	seen := make(map[string]bool)
	var uris []string
	add := func(uri string) {
		if !seen[uri] {
			seen[uri] = true
			uris = append(uris, uri)
		}
	}

	for _, s := range m.graph.Subjects(InScheme, scheme.URI) {
		add(s)
	}
	for _, s := range m.graph.Subjects(TopConceptOf, scheme.URI) {
		add(s)
	}
	if len(uris) == 0 {
		for _, s := range m.graph.Subjects(RDFType, Concept) {
			add(s)
		}
	}

	sort.Strings(uris)
	return uris
}

// MapConcept normalizes a single concept. Anomalies are returned
// alongside the record and never abort the pass.
func (m *Mapper) MapConcept(uri string) (ConceptRecord, []Anomaly) {
	var anomalies []Anomaly

	rec := ConceptRecord{About: m.fold(uri)}

	rec.Code = codeFromURI(uri)
	if rec.Code == "" {
		anomalies = append(anomalies, Anomaly{
			Kind:    AnomalyMissingCode,
			Concept: uri,
			Detail:  "no URI-derivable code",
		})
	}

	preferred := m.labelLiterals(uri, PrefLabel, XLPrefLabel)
	alternate := m.labelLiterals(uri, AltLabel, XLAltLabel)

	seenPref := make(map[string]bool)
	for _, lit := range preferred {
		lang := m.fold(lit.Lang)
		if !m.keepLang(lang) {
			continue
		}
		if seenPref[lang] {
			anomalies = append(anomalies, Anomaly{
				Kind:    AnomalyDuplicatePreferred,
				Concept: uri,
				Lang:    lang,
				Detail:  fmt.Sprintf("extra preferred label %q", lit.Value),
			})
			continue
		}
		seenPref[lang] = true
		rec.Labels = append(rec.Labels, Label{Lang: lang, Kind: LabelPreferred, Text: m.fold(lit.Value)})
	}

	seenAlt := make(map[string]bool)
	for _, lit := range alternate {
		lang := m.fold(lit.Lang)
		if !m.keepLang(lang) || seenAlt[lang] {
			continue
		}
		seenAlt[lang] = true
		rec.Labels = append(rec.Labels, Label{Lang: lang, Kind: LabelAlternate, Text: m.fold(lit.Value)})
	}

	rec.AltLabel = m.fold(valueForLanguage(preferred, m.opts.DefaultLang))
	if rec.AltLabel != "" && !m.hasDefaultLang(preferred) {
		anomalies = append(anomalies, Anomaly{
			Kind:    AnomalyNoDefaultLabel,
			Concept: uri,
			Lang:    m.opts.DefaultLang,
			Detail:  fmt.Sprintf("falling back to %q", rec.AltLabel),
		})
	}

	return rec, anomalies
}

// Concepts maps every concept of the scheme, collecting all anomalies.
func (m *Mapper) Concepts(scheme SchemeInfo) ([]ConceptRecord, []Anomaly) {
	var records []ConceptRecord
	var anomalies []Anomaly
	for _, uri := range m.ConceptURIs(scheme) {
		rec, found := m.MapConcept(uri)
		records = append(records, rec)
		anomalies = append(anomalies, found...)
	}
	return records, anomalies
}

// labelLiterals gathers the literals for one label kind, resolving the
// SKOS-XL indirection (label resource with skosxl:literalForm) when
// enabled.
func (m *Mapper) labelLiterals(uri, plainPred, xlPred string) []Term {
	lits := m.graph.Literals(uri, plainPred)
	if !m.opts.SkosXL {
		return lits
	}
	for _, labelNode := range m.graph.Objects(uri, xlPred) {
		if labelNode.Kind == TermLiteral {
			continue
		}
		for _, form := range m.graph.Literals(labelNode.Value, XLLiteralForm) {
			lits = append(lits, form)
		}
	}
	return lits
}

func (m *Mapper) keepLang(lang string) bool {
	if m.langs == nil {
		return true
	}
	return m.langs[strings.ToLower(lang)]
}

func (m *Mapper) hasDefaultLang(lits []Term) bool {
	if m.opts.DefaultLang == "" {
		return true
	}
	for _, lit := range lits {
		if strings.EqualFold(primarySubtag(lit.Lang), m.opts.DefaultLang) {
			return true
		}
	}
	return false
}

func (m *Mapper) fold(s string) string {
	if m.opts.LowerCase {
		return strings.ToLower(s)
	}
	return s
}

// valueForLanguage picks a literal the way the thesaurus tables expect a
// single value: candidates sorted by language tag, untagged literals
// first, then a primary-subtag match on the default language, then the
// first candidate in graph order.
func valueForLanguage(available []Term, defaultLang string) string {
	if len(available) == 0 {
		return ""
	}
	sorted := make([]Term, len(available))
	copy(sorted, available)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Lang < sorted[j].Lang
	})
	for _, item := range sorted {
		if item.Lang == "" {
			return item.Value
		}
		if strings.EqualFold(primarySubtag(item.Lang), defaultLang) {
			return item.Value
		}
	}
	return available[0].Value
}

// primarySubtag strips a region suffix, "en-GB" -> "en".
func primarySubtag(lang string) string {
	if idx := strings.IndexByte(lang, '-'); idx >= 0 {
		return lang[:idx]
	}
	return lang
}

// codeFromURI extracts the fragment or final path segment of a concept
// URI, the stable short code stored alongside the full URI. A URI with
// neither yields an empty code.
func codeFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	if u.Fragment != "" {
		return u.Fragment
	}
	path := strings.TrimRight(u.Path, "/")
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 && idx < len(path)-1 {
		return path[idx+1:]
	}
	return ""
}
