package sparql

import (
	"fmt"

	"github.com/takatori/sbekms/internal/kg"
	"github.com/takatori/sbekms/internal/vocab"
)

// Variables shared by every graph-mode query. The projector reads these
// names, so builders must keep them stable.
const (
	varSubject      = "?s"
	varPredicate    = "?p"
	varObject       = "?o"
	varSubjectLabel = "?sLabel"
	varObjectLabel  = "?oLabel"
	varSubjectType  = "?sType"
	varObjectType   = "?oType"
)

// BuildGraphQuery renders the SPARQL for a validated graph exploration
// request. For fixed inputs the output is byte-identical.
func BuildGraphQuery(q kg.GraphQuery, ns vocab.Namespaces) (string, error) {
	q = q.WithDefaults()
	if err := q.Validate(); err != nil {
		return "", err
	}

	switch q.QueryType {
	case kg.QueryNeighborhood:
		return buildNeighborhoodQuery(q, ns), nil
	case kg.QueryPath:
		return buildPathQuery(q, ns), nil
	case kg.QueryCluster:
		return buildClusterQuery(q, ns), nil
	default:
		return buildFullGraphQuery(q, ns), nil
	}
}

// buildNeighborhoodQuery selects every statement touching the center entity
// (as subject or object), or all statements when no center is given. The
// cap is doubled because neighborhoods fan out in both directions before
// node collapsing.
func buildNeighborhoodQuery(q kg.GraphQuery, ns vocab.Namespaces) string {
	sq := newSelect(ns, varSubject, varPredicate, varObject,
		varSubjectLabel, varObjectLabel, varSubjectType, varObjectType)
	sq.pattern("?s ?p ?o .")
	if q.CenterEntity != "" {
		center := iriRef(q.CenterEntity)
		sq.filter("?s = %s || ?o = %s", center, center)
	}
	addEndpointAnnotations(sq)
	sq.limit = q.MaxNodes * 2
	return sq.render()
}

// buildPathQuery returns direct edges between the endpoints in both
// directions plus a bounded one-hop intermediate search. Both entities are
// operands of every union branch.
func buildPathQuery(q kg.GraphQuery, ns vocab.Namespaces) string {
	src := iriRef(q.SourceEntity)
	dst := iriRef(q.TargetEntity)

	sq := newSelect(ns, varSubject, varPredicate, varObject,
		varSubjectLabel, varObjectLabel, varSubjectType, varObjectType)
	sq.pattern(`{ %[1]s ?p %[2]s . BIND(%[1]s AS ?s) BIND(%[2]s AS ?o) }
  UNION
  { %[2]s ?p %[1]s . BIND(%[2]s AS ?s) BIND(%[1]s AS ?o) }
  UNION
  { %[1]s ?p ?mid . ?mid ?hop %[2]s . FILTER(isIRI(?mid)) BIND(%[1]s AS ?s) BIND(?mid AS ?o) }
  UNION
  { %[1]s ?hop ?mid . ?mid ?p %[2]s . FILTER(isIRI(?mid)) BIND(?mid AS ?s) BIND(%[2]s AS ?o) }`,
		src, dst)
	addEndpointAnnotations(sq)
	sq.limit = q.MaxNodes
	return sq.render()
}

// buildClusterQuery approximates homogeneous-type clustering by restricting
// to subject/object pairs sharing the same asserted type.
func buildClusterQuery(q kg.GraphQuery, ns vocab.Namespaces) string {
	sq := newSelect(ns, varSubject, varPredicate, varObject,
		varSubjectLabel, varObjectLabel, varSubjectType,
		fmt.Sprintf("(%s AS %s)", varSubjectType, varObjectType))
	sq.pattern("?s ?p ?o .")
	sq.pattern("?s rdf:type ?sType .")
	sq.pattern("?o rdf:type ?sType .")
	if q.CenterEntity != "" {
		center := iriRef(q.CenterEntity)
		sq.filter("?s = %s || ?o = %s", center, center)
	}
	sq.optional("?s rdfs:label ?sLabel .")
	sq.optional("?o rdfs:label ?oLabel .")
	sq.limit = q.MaxNodes
	return sq.render()
}

// buildFullGraphQuery anchors subjects on the carrier class and drops
// rdf:type edges, which would otherwise flood the visualization.
func buildFullGraphQuery(q kg.GraphQuery, ns vocab.Namespaces) string {
	sq := newSelect(ns, varSubject, varPredicate, varObject,
		varSubjectLabel, varObjectLabel, varSubjectType, varObjectType)
	sq.pattern("?s rdf:type wdo:%s .", vocab.ClassDigitalInformationCarrier)
	sq.pattern("?s ?p ?o .")
	sq.filter("?p != rdf:type")
	addEndpointAnnotations(sq)
	sq.limit = q.MaxNodes
	return sq.render()
}

// addEndpointAnnotations joins labels and types for both statement
// endpoints. All four are optional; a row may leave any of them unbound.
func addEndpointAnnotations(sq *selectQuery) {
	sq.optional("?s rdfs:label ?sLabel .")
	sq.optional("?o rdfs:label ?oLabel .")
	sq.optional("?s rdf:type ?sType .")
	sq.optional("?o rdf:type ?oType .")
}
