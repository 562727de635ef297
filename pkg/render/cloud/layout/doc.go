// Package layout places weighted tokens on a canvas.
//
// The algorithm is greedy: tokens are taken in descending weight order
// and each one probes candidate positions along an archimedean spiral
// out of the canvas center (or a uniform random scan) until it finds a
// spot where its bounding box overlaps nothing already placed. A coarse
// occupancy grid makes the overlap test cheap. Tokens that exhaust
// their probe budget are dropped; a partial cloud is a valid result,
// never an error.
//
// All randomness flows from a caller-supplied seed, so the same table,
// options and seed always produce an identical layout.
package layout
