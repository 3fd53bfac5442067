package scoring

// Method names a scoring method as it appears in a test definition.
type Method string

const (
	MethodSum      Method = "sum"
	MethodAverage  Method = "average"
	MethodWeighted Method = "weighted"
	MethodCluster  Method = "cluster"
	MethodReverse  Method = "reverse"
)

// Known reports whether m is one of the supported scoring methods.
func (m Method) Known() bool {
	switch m {
	case MethodSum, MethodAverage, MethodWeighted, MethodCluster, MethodReverse:
		return true
	}
	return false
}

// ScoringSpec is the closed set of scoring configurations a category can
// carry. The concrete types are Sum, Average, Weighted, Clustered, Reverse
// and Unrecognized.
type ScoringSpec interface {
	Method() Method
	scoringSpec()
}

type Sum struct{}

type Average struct{}

// Weighted multiplies each answer by the weight at the same position.
type Weighted struct {
	Weights []float64
}

// Clustered adds a per-cluster breakdown on top of the plain sum.
type Clustered struct {
	Clusters []ClusterDef
}

// Reverse scores 1–5 Likert items backwards (v becomes 6-v).
type Reverse struct{}

// Unrecognized keeps a method name the engine does not know. It is scored
// like Sum; schema validation rejects it before a definition is served.
type Unrecognized struct {
	Name string
}

func (Sum) Method() Method            { return MethodSum }
func (Average) Method() Method        { return MethodAverage }
func (Weighted) Method() Method       { return MethodWeighted }
func (Clustered) Method() Method      { return MethodCluster }
func (Reverse) Method() Method        { return MethodReverse }
func (u Unrecognized) Method() Method { return Method(u.Name) }

func (Sum) scoringSpec()          {}
func (Average) scoringSpec()      {}
func (Weighted) scoringSpec()     {}
func (Clustered) scoringSpec()    {}
func (Reverse) scoringSpec()      {}
func (Unrecognized) scoringSpec() {}

// scoringWire is the JSON shape of a category's "scoring" object.
type scoringWire struct {
	Method         Method       `json:"method,omitempty"`
	Weights        []float64    `json:"weights,omitempty"`
	ClusterIndices []ClusterDef `json:"clusterIndices,omitempty"`
}

func (w *scoringWire) spec() ScoringSpec {
	if w == nil {
		return Sum{}
	}
	switch w.Method {
	case "", MethodSum:
		return Sum{}
	case MethodAverage:
		return Average{}
	case MethodWeighted:
		return Weighted{Weights: w.Weights}
	case MethodCluster:
		return Clustered{Clusters: w.ClusterIndices}
	case MethodReverse:
		return Reverse{}
	default:
		return Unrecognized{Name: string(w.Method)}
	}
}

func wireOf(s ScoringSpec) scoringWire {
	switch v := s.(type) {
	case nil:
		return scoringWire{Method: MethodSum}
	case Weighted:
		return scoringWire{Method: MethodWeighted, Weights: v.Weights}
	case Clustered:
		return scoringWire{Method: MethodCluster, ClusterIndices: v.Clusters}
	default:
		return scoringWire{Method: s.Method()}
	}
}
