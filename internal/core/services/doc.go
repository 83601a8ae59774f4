// Package services implements the application's use cases: ingesting
// documents into the corpus, searching the index, autocompleting
// queries, listing and deleting records, and aggregating statistics.
// Services depend only on domain types and ports; adapters are wired
// in at startup.
package services
