// Package file loads and persists the Corpus CLI configuration as a
// TOML file. The configuration names the data directory that holds the
// corpus, derived texts and metadata store, along with the language and
// pipeline settings that shape ingestion.
package file
