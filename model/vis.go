package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/crw/affinity"
	"github.com/katalvlaran/crw/tensor"
	"github.com/katalvlaran/crw/walk"
)

// FramePair summarizes a single sampled frame pair for human inspection:
// the raw affinity between the two frames, the composed round trip
// A(t1→t2)·A(t2→t1), and that round trip's cross-entropy against the
// identity correspondence. Nothing here feeds back into training.
type FramePair struct {
	T1, T2    int
	Affinity  []*mat.Dense // per batch item, raw pairwise affinity
	RoundTrip []*mat.Dense // per batch item, forward·backward composition
	XEnt      float64
}

// VisualFunc receives the frame-pair summary. Rendering is external.
type VisualFunc func(FramePair)

// fireVisualizer samples two time steps, builds the round-trip summary and
// hands it to the hook. Failures are swallowed: visualization must never
// fail a forward pass.
func (m *Model) fireVisualizer(seq *tensor.Seq) {
	batch, _, steps, _ := seq.Dims()
	if steps < 2 {
		return
	}
	t1 := m.cfg.rng.Intn(steps)
	t2 := m.cfg.rng.Intn(steps)

	o := m.affinityOptions()
	pair := FramePair{T1: t1, T2: t2}
	for b := 0; b < batch; b++ {
		x1, err := seq.NodeMatrix(b, t1)
		if err != nil {
			return
		}
		x2, err := seq.NodeMatrix(b, t2)
		if err != nil {
			return
		}
		a, err := affinity.Pair(x1, x2)
		if err != nil {
			return
		}
		fwd, err := affinity.StochMat(a, false, false, false, &o)
		if err != nil {
			return
		}
		at, err := affinity.Transpose(a)
		if err != nil {
			return
		}
		bwd, err := affinity.StochMat(at, false, false, false, &o)
		if err != nil {
			return
		}
		r, _ := fwd.Dims()
		_, c := bwd.Dims()
		round := mat.NewDense(r, c, nil)
		round.Mul(fwd, bwd)
		pair.Affinity = append(pair.Affinity, a)
		pair.RoundTrip = append(pair.RoundTrip, round)
	}

	n, _ := pair.RoundTrip[0].Dims()
	xent, _, err := walk.Evaluate(
		[]walk.Walk{{Name: "vis", Dist: pair.RoundTrip, Target: m.IdentityTargets(batch, n)}}, "vis")
	if err != nil {
		return
	}
	pair.XEnt = xent
	m.cfg.vis(pair)
}
