// Package cloud defines the serialization format for word-cloud layouts.
//
// A Layout is the stable interchange format between the layout and render
// stages: it is what the JSON sink emits, what the HTTP API stores, and
// what the CLI reads back for re-rendering in another format.
package cloud
