package forecast

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// GBTForecaster implements gradient-boosted regression trees over engineered
// lag features. Fitting trains an additive ensemble of shallow trees on
// (lag features -> next value) pairs; multi-step forecasts are produced
// recursively, feeding each prediction back into the lag window because the
// true future lags are unknown. Errors can therefore compound with the
// horizon, which is exactly what the held-out evaluation measures.
type GBTForecaster struct {
	NEstimators   int     // Number of boosting rounds
	MaxDepth      int     // Max tree depth
	MinLeafSize   int     // Minimum samples per leaf
	LearningRate  float64 // Shrinkage applied to each tree
	Lags          []int   // Lag offsets used as features
	RollingWindow int     // Window for rolling mean/std features

	base    float64
	trees   []*treeNode
	history []float64 // training series kept for recursive forecasting
}

// NewGBTForecaster creates a gradient-boosted tree forecaster with default
// hyperparameters
func NewGBTForecaster() *GBTForecaster {
	return &GBTForecaster{
		NEstimators:   100,
		MaxDepth:      3,
		MinLeafSize:   2,
		LearningRate:  0.1,
		Lags:          []int{1, 2, 3, 6, 12},
		RollingWindow: 3,
	}
}

// Name returns the model name
func (f *GBTForecaster) Name() string {
	return "gbt"
}

// MinObservations requires the deepest lag plus a handful of training pairs
func (f *GBTForecaster) MinObservations() int {
	return minHistory(f.lags(), f.window()) + 3
}

func (f *GBTForecaster) lags() []int {
	if len(f.Lags) == 0 {
		return []int{1, 2, 3, 6, 12}
	}
	return f.Lags
}

func (f *GBTForecaster) window() int {
	if f.RollingWindow < 2 {
		return 3
	}
	return f.RollingWindow
}

// Fit trains the boosted ensemble on lag features derived from the series
func (f *GBTForecaster) Fit(series []float64) error {
	f.trees = nil
	f.history = nil

	if len(series) < f.MinObservations() {
		return &InsufficientDataError{Model: f.Name(), Need: f.MinObservations(), Have: len(series)}
	}
	for _, v := range series {
		if !isFinite(v) {
			return &ForecastError{Model: f.Name(), Reason: "series contains NaN or Inf"}
		}
	}

	rounds := f.NEstimators
	if rounds < 1 {
		rounds = 100
	}
	depth := f.MaxDepth
	if depth < 1 {
		depth = 3
	}
	minLeaf := f.MinLeafSize
	if minLeaf < 1 {
		minLeaf = 2
	}
	rate := f.LearningRate
	if rate <= 0 || rate > 1 {
		rate = 0.1
	}

	x, y, err := buildTrainingSet(series, f.lags(), f.window())
	if err != nil {
		return &InsufficientDataError{Model: f.Name(), Need: f.MinObservations(), Have: len(series)}
	}

	// Least-squares boosting: the initial estimate is the mean, then each
	// tree fits the current residuals and is added with shrinkage.
	f.base = floats.Sum(y) / float64(len(y))

	pred := make([]float64, len(y))
	for i := range pred {
		pred[i] = f.base
	}

	residuals := make([]float64, len(y))
	trees := make([]*treeNode, 0, rounds)
	for round := 0; round < rounds; round++ {
		converged := true
		for i := range y {
			residuals[i] = y[i] - pred[i]
			if math.Abs(residuals[i]) > 1e-12 {
				converged = false
			}
		}
		if converged {
			break
		}

		tree := growTree(x, residuals, allIndices(len(y)), depth, minLeaf)
		for i := range pred {
			pred[i] += rate * tree.predict(x[i])
		}
		trees = append(trees, tree)
	}

	f.NEstimators, f.MaxDepth, f.MinLeafSize, f.LearningRate = rounds, depth, minLeaf, rate
	f.trees = trees
	f.history = make([]float64, len(series))
	copy(f.history, series)
	return nil
}

// Forecast produces horizon values recursively on the model's own outputs
func (f *GBTForecaster) Forecast(horizon int) ([]float64, error) {
	if f.history == nil {
		return nil, &ForecastError{Model: f.Name(), Reason: "model has not been fitted"}
	}
	if horizon < 1 {
		return nil, &ForecastError{Model: f.Name(), Reason: "horizon must be >= 1"}
	}

	// Working series: training history extended with prior predictions, so
	// lag features at step i see predictions for steps < i.
	work := make([]float64, len(f.history), len(f.history)+horizon)
	copy(work, f.history)

	out := make([]float64, horizon)
	for i := 0; i < horizon; i++ {
		row := buildFeatureRow(work, len(work), f.lags(), f.window())
		v := f.predictRow(row)
		if !isFinite(v) {
			return nil, &ForecastError{Model: f.Name(), Reason: "forecast produced a non-finite value"}
		}
		work = append(work, v)
		out[i] = v
	}
	return out, nil
}

func (f *GBTForecaster) predictRow(row []float64) float64 {
	v := f.base
	for _, tree := range f.trees {
		v += f.LearningRate * tree.predict(row)
	}
	return v
}

// treeNode is a node of a binary regression tree. Leaves carry the mean
// residual of their samples.
type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
	leaf      bool
}

func (n *treeNode) predict(row []float64) float64 {
	for !n.leaf {
		if row[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// growTree builds a regression tree greedily by variance reduction
func growTree(x [][]float64, y []float64, indices []int, depth, minLeaf int) *treeNode {
	if depth == 0 || len(indices) < 2*minLeaf {
		return leafNode(y, indices)
	}

	feature, threshold, ok := bestSplit(x, y, indices, minLeaf)
	if !ok {
		return leafNode(y, indices)
	}

	var left, right []int
	for _, i := range indices {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      growTree(x, y, left, depth-1, minLeaf),
		right:     growTree(x, y, right, depth-1, minLeaf),
	}
}

func leafNode(y []float64, indices []int) *treeNode {
	sum := 0.0
	for _, i := range indices {
		sum += y[i]
	}
	return &treeNode{leaf: true, value: sum / float64(len(indices))}
}

// bestSplit scans every feature for the threshold minimizing the summed
// squared error of the two partitions
func bestSplit(x [][]float64, y []float64, indices []int, minLeaf int) (feature int, threshold float64, ok bool) {
	nFeatures := len(x[indices[0]])
	bestSSE := math.Inf(1)

	order := make([]int, len(indices))
	for fi := 0; fi < nFeatures; fi++ {
		copy(order, indices)
		sort.Slice(order, func(a, b int) bool {
			return x[order[a]][fi] < x[order[b]][fi]
		})

		// Prefix sums over the sorted order let every threshold be scored in
		// constant time.
		var leftSum, leftSq float64
		var totalSum, totalSq float64
		for _, i := range order {
			totalSum += y[i]
			totalSq += y[i] * y[i]
		}

		for pos := 0; pos < len(order)-1; pos++ {
			i := order[pos]
			leftSum += y[i]
			leftSq += y[i] * y[i]

			// Cannot split between equal feature values
			if x[order[pos]][fi] == x[order[pos+1]][fi] {
				continue
			}

			nLeft := pos + 1
			nRight := len(order) - nLeft
			if nLeft < minLeaf || nRight < minLeaf {
				continue
			}

			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/float64(nLeft)) +
				(rightSq - rightSum*rightSum/float64(nRight))

			if sse < bestSSE {
				bestSSE = sse
				feature = fi
				threshold = (x[order[pos]][fi] + x[order[pos+1]][fi]) / 2
				ok = true
			}
		}
	}

	return feature, threshold, ok
}
