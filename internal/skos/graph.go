package skos

import "sort"

// TermKind distinguishes the three RDF term types.
type TermKind int

const (
	TermIRI TermKind = iota
	TermBlank
	TermLiteral
)

// Term is one node of the graph. Lang is only set for language-tagged
// literals.
type Term struct {
	Value string
	Kind  TermKind
	Lang  string
}

// IsLiteral reports whether the term is a literal.
func (t Term) IsLiteral() bool { return t.Kind == TermLiteral }

// Graph is an in-memory triple store with the two lookup directions the
// mapper needs: objects by (subject, predicate) and subjects by
// (predicate, object). Insertion happens only during load; queries never
// mutate, so repeated passes over the same graph are stable.
type Graph struct {
	spo  map[string]map[string][]Term
	pos  map[string]map[string][]string
	size int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		spo: make(map[string]map[string][]Term),
		pos: make(map[string]map[string][]string),
	}
}

// Insert adds one triple. Subjects and predicates are IRI or blank node
// strings; the object may be any term.
func (g *Graph) Insert(subj, pred string, obj Term) {
	preds, ok := g.spo[subj]
	if !ok {
		preds = make(map[string][]Term)
		g.spo[subj] = preds
	}
	preds[pred] = append(preds[pred], obj)

	if obj.Kind != TermLiteral {
		objs, ok := g.pos[pred]
		if !ok {
			objs = make(map[string][]string)
			g.pos[pred] = objs
		}
		objs[obj.Value] = append(objs[obj.Value], subj)
	}
	g.size++
}

// Len returns the number of triples in the graph.
func (g *Graph) Len() int { return g.size }

// Objects returns all objects of triples matching (subj, pred), in
// insertion order.
func (g *Graph) Objects(subj, pred string) []Term {
	if preds, ok := g.spo[subj]; ok {
		return preds[pred]
	}
	return nil
}

// Value returns the first object of (subj, pred), if any.
func (g *Graph) Value(subj, pred string) (Term, bool) {
	objs := g.Objects(subj, pred)
	if len(objs) == 0 {
		return Term{}, false
	}
	return objs[0], true
}

// Literals returns the literal objects of (subj, pred).
func (g *Graph) Literals(subj, pred string) []Term {
	var out []Term
	for _, o := range g.Objects(subj, pred) {
		if o.Kind == TermLiteral {
			out = append(out, o)
		}
	}
	return out
}

// Subjects returns all subjects of triples matching (pred, obj), sorted
// for deterministic traversal. The object must be an IRI or blank node.
func (g *Graph) Subjects(pred, obj string) []string {
	objs, ok := g.pos[pred]
	if !ok {
		return nil
	}
	subjects := make([]string, len(objs[obj]))
	copy(subjects, objs[obj])
	sort.Strings(subjects)
	return subjects
}

// SubjectCount returns the number of triples matching (pred, obj)
// without materializing the subject list.
func (g *Graph) SubjectCount(pred, obj string) int {
	if objs, ok := g.pos[pred]; ok {
		return len(objs[obj])
	}
	return 0
}
