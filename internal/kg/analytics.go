package kg

import "math"

// Analytics computes summary statistics over a projected graph.
//
// Degree counts every appearance of a node URI as an edge endpoint, so
// repeated statements between the same pair all contribute. Connected
// components is reported as a constant 1: true connectivity analysis is out
// of scope and the value is an approximation, not a computed property.
func Analytics(nodes []GraphNode, edges []GraphEdge) GraphAnalytics {
	nodeTypes := make(map[string]int)
	for _, n := range nodes {
		nodeTypes[n.Type]++
	}

	relationshipTypes := make(map[string]int)
	degrees := make(map[string]int)
	for _, e := range edges {
		relationshipTypes[e.Relationship]++
		degrees[e.Source]++
		degrees[e.Target]++
	}

	var totalDegree, maxDegree int
	for _, d := range degrees {
		totalDegree += d
		if d > maxDegree {
			maxDegree = d
		}
	}

	var avgDegree float64
	if len(degrees) > 0 {
		avgDegree = round(float64(totalDegree)/float64(len(degrees)), 2)
	}

	var density float64
	if n := len(nodes); n > 1 {
		possible := float64(n*(n-1)) / 2
		density = round(float64(len(edges))/possible, 4)
	}

	return GraphAnalytics{
		TotalNodes:          len(nodes),
		TotalEdges:          len(edges),
		NodeTypes:           nodeTypes,
		RelationshipTypes:   relationshipTypes,
		AvgDegree:           avgDegree,
		MaxDegree:           maxDegree,
		ConnectedComponents: 1,
		Density:             density,
	}
}

func round(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
