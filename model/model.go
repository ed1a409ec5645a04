package model

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/crw/affinity"
	"github.com/katalvlaran/crw/node"
	"github.com/katalvlaran/crw/tensor"
	"github.com/katalvlaran/crw/walk"
)

var (
	// ErrNilEncoder indicates construction without an encoder.
	ErrNilEncoder = errors.New("model: encoder must not be nil")

	// ErrRegimeMismatch indicates inputs that disagree with the configured
	// regime.
	ErrRegimeMismatch = errors.New("model: input does not match configured regime")

	// ErrBadClip indicates a clip batch whose channel axis does not factor
	// into whole 3-channel patches.
	ErrBadClip = errors.New("model: clip channels must be a multiple of 3")
)

// Model is one configured correspondence learner. All arrays it produces are
// ephemeral, recomputed every forward pass; the identity-target cache is the
// only persisted state and lives as long as the model.
type Model struct {
	cfg  config
	enc  node.Encoder
	head *node.Head
	dims node.Dims

	mu      sync.Mutex
	targets map[string][]int
}

// Result is what Forward returns. Embeddings is always populated. Maps (or
// FeatureMaps in the superpixel regime) accompany it; Loss and Diags are
// filled only in training mode.
type Result struct {
	Embeddings  *tensor.Seq
	Maps        *tensor.Maps
	FeatureMaps *tensor.Volume
	Loss        float64
	Diags       map[string]float64
}

// New builds a model around the injected encoder: probes it once for hidden
// dimension and map scale, initializes the embedding head, and freezes the
// configuration.
//
// Errors: ErrNilEncoder, probing and head-construction failures.
func New(enc node.Encoder, opts ...Option) (*Model, error) {
	if enc == nil {
		return nil, ErrNilEncoder
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(1))
	}

	dims, err := node.Probe(enc)
	if err != nil {
		return nil, err
	}
	head, err := node.NewHead(dims.HidDim, cfg.headDepth, cfg.rng)
	if err != nil {
		return nil, err
	}
	return &Model{
		cfg:     cfg,
		enc:     enc,
		head:    head,
		dims:    dims,
		targets: make(map[string][]int),
	}, nil
}

// Dims reports what probing learned about the encoder.
func (m *Model) Dims() node.Dims {
	return m.dims
}

// Forward — the single entry point.
//
// Inputs: a video batch (batch, channels, time, h, w); in the superpixel
// regime also a label mask (batch, time, h, w) and the padded node maximum
// maxSP. justFeats skips walk and loss computation entirely and returns
// only embeddings plus feature maps.
//
// Training mode pipeline: extract node embeddings, build per-step stochastic
// transitions with edge dropout, compose palindrome walks (or forward walks
// with Sinkhorn pseudo-labels), evaluate cross-entropy and diagnostics, and
// possibly fire the visualization hook.
func (m *Model) Forward(video *tensor.Volume, mask *tensor.Mask, maxSP int, justFeats bool) (*Result, error) {
	if video == nil {
		return nil, ErrRegimeMismatch
	}

	res, err := m.extract(video, mask, maxSP)
	if err != nil {
		return nil, err
	}
	if justFeats {
		return res, nil
	}

	_, _, _, height, _ := video.Dims()
	loss, diags, err := m.computeWalks(res.Embeddings, strconv.Itoa(height))
	if err != nil {
		return nil, err
	}
	res.Loss, res.Diags = loss, diags

	if m.cfg.vis != nil && m.cfg.rng.Float64() < visProbability {
		m.fireVisualizer(res.Embeddings)
	}
	return res, nil
}

// extract dispatches to the regime fixed at construction.
func (m *Model) extract(video *tensor.Volume, mask *tensor.Mask, maxSP int) (*Result, error) {
	_, channels, _, _, _ := video.Dims()
	nopts := node.Options{FeatDropRate: m.cfg.featDrop, Rand: m.cfg.rng}

	switch m.cfg.regime {
	case RegimePatches, RegimeWholeFrame:
		if mask != nil {
			return nil, ErrRegimeMismatch
		}
		if channels%3 != 0 {
			return nil, ErrBadClip
		}
		nodes := channels / 3
		if m.cfg.regime == RegimeWholeFrame && nodes != 1 {
			return nil, ErrRegimeMismatch
		}
		if m.cfg.regime == RegimePatches && nodes == 1 {
			return nil, ErrRegimeMismatch
		}
		batch, _, _, _, _ := video.Dims()
		clips, err := video.GroupChannels(nodes)
		if err != nil {
			return nil, err
		}
		seq, maps, err := node.PatchesToNodes(m.enc, m.head, clips, batch, nodes, &nopts)
		if err != nil {
			return nil, err
		}
		return &Result{Embeddings: seq, Maps: maps}, nil

	case RegimeSuperpixel:
		if mask == nil {
			return nil, ErrRegimeMismatch
		}
		seq, maps, err := node.SuperpixelsToNodes(m.enc, m.head, video, mask, maxSP, &nopts)
		if err != nil {
			return nil, err
		}
		return &Result{Embeddings: seq, FeatureMaps: maps}, nil
	}
	return nil, ErrRegimeMismatch
}

// computeWalks runs affinity → stochastic → composition → loss.
func (m *Model) computeWalks(seq *tensor.Seq, prefix string) (float64, map[string]float64, error) {
	affs, err := affinity.Consecutive(seq)
	if err != nil {
		return 0, nil, err
	}
	aopts := m.affinityOptions()

	a12s := make([][]*mat.Dense, len(affs))
	for t, batch := range affs {
		a12s[t] = make([]*mat.Dense, len(batch))
		for b, a := range batch {
			if a12s[t][b], err = affinity.StochMat(a, false, true, false, &aopts); err != nil {
				return 0, nil, err
			}
		}
	}

	var walks []walk.Walk
	if m.cfg.skTargets {
		walks, err = walk.SinkhornWalks(a12s, affs, &aopts)
	} else {
		a21s := make([][]*mat.Dense, len(affs))
		for t, batch := range affs {
			a21s[t] = make([]*mat.Dense, len(batch))
			for b, a := range batch {
				at, terr := affinity.Transpose(a)
				if terr != nil {
					return 0, nil, terr
				}
				if a21s[t][b], err = affinity.StochMat(at, false, true, false, &aopts); err != nil {
					return 0, nil, err
				}
			}
		}
		walks, err = walk.Palindromes(a12s, a21s, m.cfg.flip, m.IdentityTargets)
	}
	if err != nil {
		return 0, nil, err
	}

	return walk.Evaluate(walks, prefix)
}

// affinityOptions materializes the model configuration for the affinity stage.
func (m *Model) affinityOptions() affinity.Options {
	o := affinity.DefaultOptions()
	o.Temperature = m.cfg.temperature
	o.EdgeDropRate = m.cfg.edgeDrop
	o.Rand = m.cfg.rng
	return o
}

// IdentityTargets returns the cached identity correspondence for a
// (batch, nodes) shape: indices 0..nodes−1 repeated per batch row. The value
// is a pure function of its key; population is mutex-guarded, so a race
// costs at worst a duplicate computation, never a wrong result.
func (m *Model) IdentityTargets(batch, nodes int) []int {
	key := fmt.Sprintf("%s:%dx%d", m.cfg.device, batch, nodes)

	m.mu.Lock()
	defer m.mu.Unlock()
	if cached, ok := m.targets[key]; ok {
		return cached
	}
	out := make([]int, batch*nodes)
	for b := 0; b < batch; b++ {
		for n := 0; n < nodes; n++ {
			out[b*nodes+n] = n
		}
	}
	m.targets[key] = out
	return out
}
