// Package sparql implements the knowledge-graph query engine against a
// SPARQL-speaking triple store: query generation, execution, and the
// projection of flat variable bindings back into graph and search models.
package sparql

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/takatori/sbekms/internal/vocab"
)

// selectQuery is the intermediate representation a builder assembles before
// rendering. Clauses are kept as ordered lists so that identical inputs
// always render byte-identical query text.
type selectQuery struct {
	ns       vocab.Namespaces
	distinct bool
	vars     []string // projected variables, including "(expr AS ?v)" forms
	patterns []string // basic graph patterns and UNION groups
	filters  []string
	binds    []string
	orderBy  []string
	limit    int
	offset   int
}

func newSelect(ns vocab.Namespaces, vars ...string) *selectQuery {
	return &selectQuery{ns: ns, vars: vars}
}

func (q *selectQuery) pattern(format string, args ...any) *selectQuery {
	q.patterns = append(q.patterns, fmt.Sprintf(format, args...))
	return q
}

func (q *selectQuery) optional(format string, args ...any) *selectQuery {
	q.patterns = append(q.patterns, "OPTIONAL { "+fmt.Sprintf(format, args...)+" }")
	return q
}

func (q *selectQuery) filter(format string, args ...any) *selectQuery {
	q.filters = append(q.filters, fmt.Sprintf(format, args...))
	return q
}

func (q *selectQuery) bind(expr, variable string) *selectQuery {
	q.binds = append(q.binds, fmt.Sprintf("BIND(%s AS %s)", expr, variable))
	return q
}

func (q *selectQuery) order(exprs ...string) *selectQuery {
	q.orderBy = append(q.orderBy, exprs...)
	return q
}

// render produces the final SPARQL text. All clause composition happens
// before this point; render itself never inspects user input.
func (q *selectQuery) render() string {
	var b strings.Builder
	writePrefixes(&b, q.ns)

	b.WriteString("SELECT ")
	if q.distinct {
		b.WriteString("DISTINCT ")
	}
	b.WriteString(strings.Join(q.vars, " "))
	b.WriteString(" WHERE {\n")
	for _, p := range q.patterns {
		b.WriteString("  ")
		b.WriteString(p)
		b.WriteString("\n")
	}
	for _, bd := range q.binds {
		b.WriteString("  ")
		b.WriteString(bd)
		b.WriteString("\n")
	}
	for _, f := range q.filters {
		b.WriteString("  FILTER(")
		b.WriteString(f)
		b.WriteString(")\n")
	}
	b.WriteString("}")
	if len(q.orderBy) > 0 {
		b.WriteString("\nORDER BY ")
		b.WriteString(strings.Join(q.orderBy, " "))
	}
	if q.limit > 0 {
		fmt.Fprintf(&b, "\nLIMIT %d", q.limit)
	}
	if q.offset > 0 {
		fmt.Fprintf(&b, "\nOFFSET %d", q.offset)
	}
	b.WriteString("\n")
	return b.String()
}

func writePrefixes(b *strings.Builder, ns vocab.Namespaces) {
	fmt.Fprintf(b, "PREFIX rdf: <%s>\n", vocab.RDF)
	fmt.Fprintf(b, "PREFIX rdfs: <%s>\n", vocab.RDFS)
	fmt.Fprintf(b, "PREFIX dcterms: <%s>\n", vocab.DCTerms)
	fmt.Fprintf(b, "PREFIX xsd: <%s>\n", vocab.XSD)
	fmt.Fprintf(b, "PREFIX wdo: <%s>\n", ns.WDO)
	fmt.Fprintf(b, "PREFIX sbekms: <%s>\n", ns.Instance)
	b.WriteString("\n")
}

var (
	literalEscaper = strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	iriStripper       = regexp.MustCompile(`[<>"{}|^` + "`" + `\\\s]`)
	localNameStripper = regexp.MustCompile(`[^A-Za-z0-9_\-]`)
)

// escapeLiteral makes a user-supplied value safe for embedding inside a
// quoted SPARQL string literal.
func escapeLiteral(value string) string {
	return literalEscaper.Replace(value)
}

// iriRef renders a user-supplied URI as an IRI reference, stripping every
// character that could terminate the reference or smuggle query syntax.
func iriRef(uri string) string {
	return "<" + iriStripper.ReplaceAllString(uri, "") + ">"
}

// localName reduces a user-supplied class or term name to a safe prefixed
// local name component.
func localName(name string) string {
	return localNameStripper.ReplaceAllString(name, "")
}

// containsFold renders a case-insensitive substring test. Both sides are
// lower-cased: the variable via LCASE, the needle in Go.
func containsFold(variable, needle string) string {
	return fmt.Sprintf(`CONTAINS(LCASE(STR(%s)), "%s")`, variable, escapeLiteral(strings.ToLower(needle)))
}
