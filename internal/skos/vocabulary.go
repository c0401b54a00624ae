package skos

// IRIs of the vocabulary terms the mapper understands. SKOS-XL is the
// reified labelling scheme AGROVOC distributes its labels in.
const (
	RDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

	RDFSLabel = "http://www.w3.org/2000/01/rdf-schema#label"

	ConceptScheme = "http://www.w3.org/2004/02/skos/core#ConceptScheme"
	Concept       = "http://www.w3.org/2004/02/skos/core#Concept"
	PrefLabel     = "http://www.w3.org/2004/02/skos/core#prefLabel"
	AltLabel      = "http://www.w3.org/2004/02/skos/core#altLabel"
	InScheme      = "http://www.w3.org/2004/02/skos/core#inScheme"
	TopConceptOf  = "http://www.w3.org/2004/02/skos/core#topConceptOf"
	HasTopConcept = "http://www.w3.org/2004/02/skos/core#hasTopConcept"

	XLPrefLabel   = "http://www.w3.org/2008/05/skos-xl#prefLabel"
	XLAltLabel    = "http://www.w3.org/2008/05/skos-xl#altLabel"
	XLLiteralForm = "http://www.w3.org/2008/05/skos-xl#literalForm"

	DCTitle       = "http://purl.org/dc/elements/1.1/title"
	DCDescription = "http://purl.org/dc/elements/1.1/description"
	DCTermsTitle  = "http://purl.org/dc/terms/title"
	DCTermsIssued = "http://purl.org/dc/terms/issued"
	DCTermsMod    = "http://purl.org/dc/terms/modified"
)
