package particles

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises the proximity graph of a frame
type Stats struct {
	Frame          uint64  `json:"frame"`
	Nodes          int     `json:"nodes"`
	Edges          int     `json:"edges"`
	MeanDegree     float64 `json:"mean_degree"`
	Components     int     `json:"components"`
	Isolated       int     `json:"isolated"`
	LargestCluster int     `json:"largest_cluster"`
	MeanEdgeLength float64 `json:"mean_edge_length"`
	MeanScale      float64 `json:"mean_scale"`
	MaxScale       float64 `json:"max_scale"`
}

// Analyze builds the proximity graph of info over nodes and measures it
func Analyze(info FrameInfo, nodes []Node) Stats {
	st := Stats{
		Frame: info.Number,
		Nodes: len(nodes),
		Edges: len(info.Edges),
	}
	if len(nodes) == 0 {
		return st
	}

	g := simple.NewUndirectedGraph()
	for i := range nodes {
		g.AddNode(simple.Node(i))
	}
	lengths := make([]float64, 0, len(info.Edges))
	for _, e := range info.Edges {
		if e.I == e.J || e.I >= len(nodes) || e.J >= len(nodes) {
			continue
		}
		g.SetEdge(simple.Edge{F: simple.Node(e.I), T: simple.Node(e.J)})
		lengths = append(lengths, e.Distance)
	}

	for _, cc := range topo.ConnectedComponents(g) {
		st.Components++
		if len(cc) == 1 {
			st.Isolated++
		}
		if len(cc) > st.LargestCluster {
			st.LargestCluster = len(cc)
		}
	}

	st.MeanDegree = 2 * float64(len(lengths)) / float64(len(nodes))
	if len(lengths) > 0 {
		st.MeanEdgeLength = stat.Mean(lengths, nil)
	}

	scales := make([]float64, len(nodes))
	for i, n := range nodes {
		scales[i] = n.Scale
	}
	st.MeanScale = stat.Mean(scales, nil)
	st.MaxScale = floats.Max(scales)
	return st
}
