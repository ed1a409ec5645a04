// Package tensor provides the batched dense array types shared by every
// stage of the correspondence pipeline: video clip batches, encoder feature
// maps, per-node feature-map stacks, superpixel label masks and the node
// embedding sequence itself.
//
// What:
//
//   - Volume — a 5-D float64 array (items, channels, time, height, width)
//     used both for raw clips fed to an encoder and for the feature maps it
//     returns.
//   - Maps — a 6-D float64 array (batch, node, channels, time, height, width)
//     holding the per-node feature maps behind an embedding sequence.
//   - Seq — a 4-D float64 array (batch, channels, time, node): the node
//     embedding sequence. Invariant after NormalizeChannels: unit L2 norm
//     along the channel axis for every (batch, time, node) triple.
//   - Mask — a 4-D int array (batch, time, height, width) of per-pixel
//     superpixel labels.
//
// Why:
//
//   - One flat row-major backing slice per array: cache-friendly loops,
//     O(1) indexing, no nested-slice bookkeeping.
//   - Validated constructors and bounds-checked accessors make shape
//     violations fail fast at array-construction time, the only place they
//     can be diagnosed cheaply.
//
// Complexity:
//
//   - All constructors: O(size) time and memory.
//   - At/Set: O(1).
//   - NormalizeChannels: O(B·C·T·N).
//
// Errors:
//
//   - ErrInvalidDimensions — a requested dimension is non-positive.
//   - ErrIndexOutOfBounds — an index is outside the valid range.
//   - ErrShapeMismatch — two arrays (or an array and a slice) disagree on shape.
package tensor
