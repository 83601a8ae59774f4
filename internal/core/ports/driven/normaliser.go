package driven

import "context"

// TextNormalizer transforms raw extracted text into the normalized token
// context stored per document. Two implementations exist and one is
// selected once at startup based on resource availability:
//
//   - ModelBackedNormalizer: lemmatisation dictionaries plus stopword sets
//   - RuleBasedNormalizer: whitespace tokenisation plus static stopword sets
//
// Both preserve token order exactly; downstream stages treat the output as
// positional token context.
type TextNormalizer interface {
	// Name identifies the active strategy ("model" or "rules").
	Name() string

	// Normalize cleans and tokenises raw text into a single
	// whitespace-joined lowercase string. It never fails the batch: any
	// internal error yields empty output and a nil error is still the
	// common case for degraded results.
	Normalize(ctx context.Context, raw string) (string, error)
}
