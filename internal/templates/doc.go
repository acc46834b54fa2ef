// Package templates deduplicates a community template tree against a reference corpus.
//
// Both trees are inventoried by base file name. Community files whose name also
// appears in the reference tree are resolved by one of three modes: remove
// (unconditional), rename (equal-size duplicates deleted and logged, differing
// files renamed with the _dup__ prefix), or categorize (equal-size duplicates
// deleted, every other file copied into keyword categories with per-category
// MD5 de-duplication). Templates are treated as opaque bytes.
package templates
