// Package crw is an in-memory toolkit for learning space-time correspondence
// from video: build node embeddings per frame, turn pairwise affinities into
// stochastic transition matrices, chain them into palindrome walks through
// time, and score how well each walk returns to its origin.
//
// 🚀 What is crw?
//
//	A compact, deterministic-by-default library that brings together:
//		• Tensors: flat, row-major batched arrays for clips, maps and embeddings
//		• Affinities: pairwise similarity between node sets of two time steps
//		• Stochastic matrices: temperature softmax or Sinkhorn–Knopp normalization
//		• Walks: forward-then-backward palindrome composition of transitions
//		• Losses: cross-entropy against identity or self-generated targets
//
// ✨ Why choose crw?
//
//   - Encoder-agnostic – any backbone behind one array-in/array-out interface
//   - Rock-solid guarantees – validated shapes, sentinel errors, seeded randomness
//   - Pure Go – no cgo, gonum for the matrix algebra, nothing hidden
//   - Extensible – inject your own encoder, RNG and visualization hook
//
// Under the hood, everything is organized under five subpackages:
//
//	tensor/   — batched dense arrays (clips, feature maps, embedding sequences)
//	affinity/ — pairwise affinities + stochastic-matrix construction
//	node/     — video → node embeddings (patches, whole frames, superpixels)
//	walk/     — palindrome / Sinkhorn-target walk composition + loss evaluation
//	model/    — the model tying it all together behind one forward entry point
//
// Quick ASCII example:
//
//	frame t ──A12──▶ frame t+1 ──A12──▶ frame t+2
//	   ▲                                   │
//	   └────────A21────────A21─────────────┘
//
//	a palindrome walk of length 2: out two steps, back two steps,
//	trained so every node returns to itself.
//
// Dive into README-style docs in each subpackage for the full contracts.
//
//	go get github.com/katalvlaran/crw
package crw
