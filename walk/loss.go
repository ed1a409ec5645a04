package walk

import (
	"fmt"
	"math"
)

// logEps keeps log(A+ε) finite when a transition probability underflows to 0.
const logEps = 1e-20

// Evaluate — cross-entropy and accuracy over a set of walks.
//
// Description:
//
//	For every walk, each row of log(A+ε) (one row per (batch, node) pair) is
//	one classification instance over destination nodes. The walk's loss is
//	the mean cross-entropy of those rows against their target indices; its
//	top-1 accuracy — the fraction of rows whose argmax equals the target —
//	is recorded as a diagnostic only and never enters the loss.
//
//	Both values land in the diagnostics map under namespaced keys
//	"<prefix> xent <name>" and "<prefix> acc <name>". The total loss is the
//	mean of the per-walk losses; an empty walk set yields exactly 0.
//
// Complexity:
//
//	Time = O(walks·B·N²).
//
// Errors: ErrBadTarget when a target's length disagrees with its walk.
func Evaluate(walks []Walk, prefix string) (float64, map[string]float64, error) {
	diags := make(map[string]float64, 2*len(walks))
	total := 0.0

	for _, wk := range walks {
		loss, acc, err := scoreWalk(wk)
		if err != nil {
			return 0, nil, err
		}
		diags[fmt.Sprintf("%s xent %s", prefix, wk.Name)] = loss
		diags[fmt.Sprintf("%s acc %s", prefix, wk.Name)] = acc
		total += loss
	}

	if len(walks) == 0 {
		return 0, diags, nil
	}
	return total / float64(len(walks)), diags, nil
}

// scoreWalk computes mean cross-entropy and top-1 accuracy for one walk.
func scoreWalk(wk Walk) (loss, acc float64, err error) {
	rows := 0
	for _, d := range wk.Dist {
		r, _ := d.Dims()
		rows += r
	}
	if rows == 0 || len(wk.Target) != rows {
		return 0, 0, ErrBadTarget
	}

	hits := 0
	row := 0
	for _, d := range wk.Dist {
		r, c := d.Dims()
		for i := 0; i < r; i++ {
			target := wk.Target[row]
			if target < 0 || target >= c {
				return 0, 0, ErrBadTarget
			}
			loss += rowCrossEntropy(d.RawRowView(i), target)
			if argmax(d.RawRowView(i)) == target {
				hits++
			}
			row++
		}
	}
	return loss / float64(rows), float64(hits) / float64(rows), nil
}

// rowCrossEntropy treats log(p+ε) as logits and returns
// logsumexp(logits) − logits[target], the softmax cross-entropy of the row.
func rowCrossEntropy(p []float64, target int) float64 {
	max := math.Inf(-1)
	for _, v := range p {
		if l := math.Log(v + logEps); l > max {
			max = l
		}
	}
	sum := 0.0
	for _, v := range p {
		sum += math.Exp(math.Log(v+logEps) - max)
	}
	return max + math.Log(sum) - math.Log(p[target]+logEps)
}

// argmax returns the index of the largest value.
func argmax(p []float64) int {
	best, idx := math.Inf(-1), 0
	for i, v := range p {
		if v > best {
			best, idx = v, i
		}
	}
	return idx
}
