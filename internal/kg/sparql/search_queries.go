package sparql

import (
	"fmt"
	"strings"
	"time"

	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
	"github.com/takatori/sbekms/internal/errors"
	"github.com/takatori/sbekms/internal/kg"
	"github.com/takatori/sbekms/internal/vocab"
)

// Field-match weights for relevance ranking inside the generated query.
// Filename hits dominate, tags barely nudge the order.
const (
	rankFileName    = 4
	rankTitle       = 3
	rankDescription = 2
	rankTag         = 1
)

const suggestionCandidateLimit = 20

// BuildSearchQuery renders the SPARQL for a search request. The builder has
// two independent axes: the search type and the presence of advanced
// filters.
func BuildSearchQuery(q kg.SearchQuery, ns vocab.Namespaces) (string, error) {
	q = q.WithDefaults()

	switch q.SearchType {
	case kg.SearchSemantic, kg.SearchTextual, kg.SearchHybrid:
	default:
		return "", failure.New(
			errors.ErrInvalidQuery,
			failure.Field(failure.Message("unknown search type")),
			failure.Context{"search_type": string(q.SearchType)},
		)
	}

	sq := newSelect(ns, "?asset", "?fileName", "?title", "?description",
		"?author", "?fileSize", "?mimeType", "?created", "?tagLabel", "?cls")
	addAssetPatterns(sq)

	if q.HasAdvancedFilters() {
		if err := addAdvancedFilters(sq, q); err != nil {
			return "", err
		}
	}

	if q.Query != "" {
		if q.SearchType == kg.SearchTextual {
			sq.filter("%s", textualMatch(q.Query))
		} else {
			sq.filter("%s", semanticMatch(q.Query))
		}
	}

	// Relevance ranking applies when a text query is present: always for
	// semantic, for hybrid only without advanced filters. Textual search
	// and filtered hybrid searches sort by filename alone.
	ranked := q.Query != "" &&
		(q.SearchType == kg.SearchSemantic ||
			(q.SearchType == kg.SearchHybrid && !q.HasAdvancedFilters()))
	if ranked {
		sq.bind(relevanceExpr(q.Query), "?relevance")
		sq.vars = append(sq.vars, "?relevance")
		sq.order("DESC(?relevance)", "ASC(?fileName)")
	} else {
		sq.order("ASC(?fileName)")
	}

	sq.limit = q.Limit
	sq.offset = q.Offset
	return sq.render(), nil
}

// addAssetPatterns emits the base pattern shared by every search mode:
// the asset anchor plus non-mandatory metadata joins.
func addAssetPatterns(sq *selectQuery) {
	sq.pattern("?asset rdf:type wdo:%s .", vocab.ClassDigitalInformationCarrier)
	sq.pattern("?asset rdfs:label ?fileName .")
	sq.optional("?asset dcterms:title ?title .")
	sq.optional("?asset dcterms:description ?description .")
	sq.optional("?asset dcterms:creator ?author .")
	sq.optional("?asset wdo:%s ?fileSize .", vocab.PropHasFileSize)
	sq.optional("?asset wdo:%s ?mimeType .", vocab.PropHasMimeType)
	sq.optional("?asset dcterms:created ?created .")
	sq.optional("?asset wdo:%s ?tag . ?tag rdfs:label ?tagLabel .", vocab.PropHasTag)
	sq.optional("?asset rdf:type ?cls .")
}

// semanticMatch matches the query against filename, title, description,
// tag, type, and mime type.
func semanticMatch(query string) string {
	clauses := []string{
		containsFold("?fileName", query),
		containsFold("?title", query),
		containsFold("?description", query),
		containsFold("?tagLabel", query),
		containsFold("?cls", query),
		containsFold("?mimeType", query),
	}
	return strings.Join(clauses, " || ")
}

// textualMatch only considers filename, title, and description.
func textualMatch(query string) string {
	clauses := []string{
		containsFold("?fileName", query),
		containsFold("?title", query),
		containsFold("?description", query),
	}
	return strings.Join(clauses, " || ")
}

// relevanceExpr renders the weighted rank: a field contributes its weight
// when it is bound and matches.
func relevanceExpr(query string) string {
	term := func(variable string, weight int) string {
		return fmt.Sprintf("IF(BOUND(%s) && %s, %d, 0)", variable, containsFold(variable, query), weight)
	}
	return "(" + strings.Join([]string{
		fmt.Sprintf("IF(%s, %d, 0)", containsFold("?fileName", query), rankFileName),
		term("?title", rankTitle),
		term("?description", rankDescription),
		term("?tagLabel", rankTag),
	}, " + ") + ")"
}

// addAdvancedFilters appends the conjunction of active filter clauses.
// Filters of one kind OR together; distinct kinds AND via separate FILTER
// clauses. Every interpolated value is escaped.
func addAdvancedFilters(sq *selectQuery, q kg.SearchQuery) error {
	if len(q.WdoClasses) > 0 {
		refs := lo.Map(q.WdoClasses, func(class string, _ int) string {
			return "wdo:" + localName(class)
		})
		sq.pattern("?asset rdf:type ?filterClass .")
		sq.filter("?filterClass IN (%s)", strings.Join(refs, ", "))
	}

	if len(q.FileTypes) > 0 {
		clauses := lo.Map(q.FileTypes, func(ext string, _ int) string {
			suffix := strings.ToLower(strings.TrimPrefix(ext, "."))
			return fmt.Sprintf(`STRENDS(LCASE(?fileName), ".%s")`, escapeLiteral(suffix))
		})
		sq.filter("%s", strings.Join(clauses, " || "))
	}

	if q.Author != "" {
		sq.filter("%s", containsFold("?author", q.Author))
	}

	if q.MinFileSize != nil {
		sq.filter("xsd:integer(?fileSize) >= %d", *q.MinFileSize)
	}
	if q.MaxFileSize != nil {
		sq.filter("xsd:integer(?fileSize) <= %d", *q.MaxFileSize)
	}

	if q.DateFrom != "" {
		from, err := boundaryDateTime(q.DateFrom, "T00:00:00")
		if err != nil {
			return err
		}
		sq.filter(`?created >= "%s"^^xsd:dateTime`, from)
	}
	if q.DateTo != "" {
		to, err := boundaryDateTime(q.DateTo, "T23:59:59")
		if err != nil {
			return err
		}
		sq.filter(`?created <= "%s"^^xsd:dateTime`, to)
	}

	if len(q.Tags) > 0 {
		clauses := lo.Map(q.Tags, func(tag string, _ int) string {
			return containsFold("?tagLabel", tag)
		})
		sq.filter("%s", strings.Join(clauses, " || "))
	}

	if q.HasContent != nil {
		sq.optional("?asset wdo:%s ?lineCount .", vocab.PropHasLineCount)
		if *q.HasContent {
			sq.filter("BOUND(?lineCount) && xsd:integer(?lineCount) > 0")
		} else {
			sq.filter("!BOUND(?lineCount) || xsd:integer(?lineCount) = 0")
		}
	}

	return nil
}

// boundaryDateTime validates an ISO 8601 date and attaches a start-of-day
// or end-of-day time component.
func boundaryDateTime(date, boundary string) (string, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", failure.Translate(
			err,
			errors.ErrInvalidQuery,
			failure.Field(failure.Message("invalid date filter, expected YYYY-MM-DD")),
			failure.Context{"date": date},
		)
	}
	return parsed.Format("2006-01-02") + boundary, nil
}

// BuildSuggestionQuery matches labels and titles against the first
// characters of the query. Dedup, exact-match exclusion, and the final cap
// happen in Go after projection.
func BuildSuggestionQuery(prefix string, ns vocab.Namespaces) string {
	sq := newSelect(ns, "?text")
	sq.distinct = true
	sq.pattern(`{ ?x rdfs:label ?text . } UNION { ?x dcterms:title ?text . }`)
	sq.filter("%s", containsFold("?text", prefix))
	sq.order("ASC(?text)")
	sq.limit = suggestionCandidateLimit
	return sq.render()
}
