// Package node turns raw video into node embeddings: the unit of
// correspondence tracked across time, which may be a whole frame, an image
// patch, or a superpixel region.
//
// What:
//
//   - Encoder — the external feature-extraction backbone behind a fixed
//     array-in/array-out contract. Any architecture mapping a clip batch
//     (items, channels, time, h, w) to a feature-map stack fits.
//   - Probe — one-time discovery of the encoder's hidden dimension and
//     spatial downscaling ratio using a fixed-size dummy input.
//   - Head — a configurable-depth fully-connected stack with ReLU between
//     layers (depth 0 is the identity) applied to pooled node features.
//   - PatchesToNodes — the patch and whole-frame regimes: encode, optional
//     feature dropout, spatial mean pooling (or cell-as-node flattening when
//     there is exactly one clip per item), head, L2 normalization.
//   - SuperpixelsToNodes — the superpixel regime: weight each output
//     spatial cell by the fraction of its receptive field covered by each
//     superpixel, average the feature map per region, pad regions up to a
//     fixed maximum so every batch item shares one node count.
//
// Why:
//
//   - The walk machinery only ever sees a (batch, channel, time, node)
//     embedding sequence with unit-norm channels; everything
//     backbone-specific is contained here.
//
// Edge cases:
//
//   - A node count of 1 is legitimate (whole-frame regime); downstream
//     matrix operations degrade to 1×1 matrices.
//   - A mask naming more regions than the declared maximum is a fatal
//     dimension mismatch, surfaced at construction time.
//
// Errors:
//
//   - ErrNilEncoder — no encoder supplied.
//   - ErrNilHead — no embedding head supplied.
//   - ErrBadDepth — negative head depth.
//   - ErrBadDropRate — feature-dropout rate outside [0,1).
//   - ErrNilRand — dropout or head initialization without a randomness source.
//   - ErrShapeMismatch — clip/mask/feature-map shapes disagree.
//   - ErrTooManySuperpixels — a frame names more regions than maxSP.
package node
