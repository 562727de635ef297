// Package freq builds weight tables from token streams.
//
// A Table holds tokens in strictly descending weight order with ties in
// first-seen order, which makes downstream placement deterministic. Raw
// counts, TF-IDF weights, and per-document comparison vectors all
// produce the same Table shape.
package freq
