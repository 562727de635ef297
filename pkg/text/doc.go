// Package text turns raw document text into normalized token streams.
//
// The pipeline is tokenize → stopword filter → lemmatize → (optional)
// n-gram expansion. Tokenization is Unicode-aware and treats any
// letter run as a word; normalization uses NFC with optional folding
// of combining marks so accented and unaccented spellings count as
// one token.
package text
