// Package cooc renders bigram co-occurrence graphs.
//
// Where the word cloud shows which terms dominate a corpus, the
// co-occurrence view shows which terms travel together: the top terms
// become nodes, adjacent-pair counts become weighted edges, and
// Graphviz lays the graph out. The DOT string is the serialized form,
// so a cooc layout can be cached and re-rendered like any other.
package cooc
