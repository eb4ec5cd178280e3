// Package vocab provides the RDF vocabulary used by the knowledge base:
// well-known namespaces, the Web Development Ontology (WDO) terms the
// annotator emits, and IRI helpers shared by the query engine.
package vocab

import "strings"

// Standard namespaces bound on every generated query and update.
const (
	RDF     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS    = "http://www.w3.org/2000/01/rdf-schema#"
	OWL     = "http://www.w3.org/2002/07/owl#"
	XSD     = "http://www.w3.org/2001/XMLSchema#"
	DCTerms = "http://purl.org/dc/terms/"
)

// WDO terms referenced by the core. The namespace itself is configurable;
// these are the local names appended to it.
const (
	ClassDigitalInformationCarrier = "DigitalInformationCarrier"
	ClassTag                       = "Tag"

	PropHasFileSize  = "hasFileSize"
	PropHasMimeType  = "hasMimeType"
	PropHasLineCount = "hasLineCount"
	PropHasTag       = "hasTag"
)

// Namespaces carries the configurable namespace pair alongside the fixed
// standard ones. It is injected into the query engine rather than read from
// process-wide state.
type Namespaces struct {
	WDO      string // ontology namespace, e.g. "http://purl.example.org/web_dev_km_bfo#"
	Instance string // instance namespace, e.g. "http://sbekms.example.org/instances/"
}

// WDOTerm returns the full IRI for a WDO local name.
func (n Namespaces) WDOTerm(local string) string {
	return n.WDO + local
}

// InstanceIRI returns the full IRI for an instance local name.
func (n Namespaces) InstanceIRI(local string) string {
	return n.Instance + local
}

// CarrierClass is the root class identifying uploaded assets.
func (n Namespaces) CarrierClass() string {
	return n.WDOTerm(ClassDigitalInformationCarrier)
}

// LocalName extracts the short display name from an IRI: the text after the
// last "#" if present, otherwise after the last "/", otherwise the IRI
// itself. A trailing separator yields the IRI unchanged rather than an
// empty name.
func LocalName(uri string) string {
	if i := strings.LastIndex(uri, "#"); i >= 0 {
		if local := uri[i+1:]; local != "" {
			return local
		}
		return uri
	}
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		if local := uri[i+1:]; local != "" {
			return local
		}
		return uri
	}
	return uri
}

// IsURI reports whether a binding value is IRI-shaped. SPARQL JSON results
// already distinguish typed terms, but projection also meets plain literal
// values that carry IRIs, so the check is by scheme prefix.
func IsURI(value string) bool {
	return strings.HasPrefix(value, "http://") ||
		strings.HasPrefix(value, "https://") ||
		strings.HasPrefix(value, "urn:") ||
		strings.HasPrefix(value, "file://")
}
