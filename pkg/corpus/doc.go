// Package corpus loads literary text into documents.
//
// A corpus is an ordered list of named documents. Loading preserves the
// order in which files were named or discovered, which downstream stages
// rely on for deterministic output.
package corpus
