// Package textnorm cleans extracted document text into the normalized
// form the index is built from. Two interchangeable normalizers are
// provided: a model-backed one that detects the document language and
// lemmatizes tokens, and a rule-based one that only filters. The choice
// is made once at startup and applies to every document of a run.
package textnorm

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/de"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/aaaton/golem/v4/dicts/es"
	"github.com/aaaton/golem/v4/dicts/fr"
	"github.com/aaaton/golem/v4/dicts/it"
	"github.com/pemistahl/lingua-go"

	"github.com/marais-labs/corpus-cli/internal/core/domain"
)

// defaultAcronyms are short tokens kept through length filtering even
// though they fall under the minimum token length.
var defaultAcronyms = []string{"ai", "ml", "ux", "ui"}

// linguaByCode maps lowercase ISO 639-1 codes to the detector languages
// we can also lemmatize.
var linguaByCode = map[string]lingua.Language{
	"en": lingua.English,
	"fr": lingua.French,
	"es": lingua.Spanish,
	"de": lingua.German,
	"it": lingua.Italian,
}

// Resources bundles the language models shared by every normalization
// call: one detector restricted to the configured languages and one
// lemmatizer per language. Building them is expensive, so a single
// Resources value is created at startup and reused.
type Resources struct {
	detector    lingua.LanguageDetector
	lemmatizers map[string]*golem.Lemmatizer
	defaultLang string
	acronyms    map[string]struct{}
}

// NewResources loads detector and lemmatizers for the given ISO 639-1
// codes. defaultLang is used whenever detection fails or yields a
// language outside the configured set; it must be one of langCodes.
// Extra acronyms extend the built-in set of short tokens to keep.
func NewResources(langCodes []string, defaultLang string, acronyms []string) (*Resources, error) {
	if len(langCodes) == 0 {
		return nil, fmt.Errorf("%w: no languages configured", domain.ErrInvalidInput)
	}
	defaultLang = strings.ToLower(defaultLang)

	var detectable []lingua.Language
	lemmatizers := make(map[string]*golem.Lemmatizer, len(langCodes))
	for _, code := range langCodes {
		code = strings.ToLower(code)
		lang, ok := linguaByCode[code]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported language %q", domain.ErrInvalidInput, code)
		}
		detectable = append(detectable, lang)

		lem, err := newLemmatizer(code)
		if err != nil {
			return nil, fmt.Errorf("loading %s lemmatizer: %w", code, err)
		}
		lemmatizers[code] = lem
	}

	if _, ok := lemmatizers[defaultLang]; !ok {
		return nil, fmt.Errorf("%w: default language %q not in configured languages", domain.ErrInvalidInput, defaultLang)
	}

	keep := make(map[string]struct{}, len(defaultAcronyms)+len(acronyms))
	for _, a := range defaultAcronyms {
		keep[a] = struct{}{}
	}
	for _, a := range acronyms {
		keep[strings.ToLower(a)] = struct{}{}
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(detectable...).
		Build()

	return &Resources{
		detector:    detector,
		lemmatizers: lemmatizers,
		defaultLang: defaultLang,
		acronyms:    keep,
	}, nil
}

func newLemmatizer(code string) (*golem.Lemmatizer, error) {
	switch code {
	case "en":
		return golem.New(en.New())
	case "fr":
		return golem.New(fr.New())
	case "es":
		return golem.New(es.New())
	case "de":
		return golem.New(de.New())
	case "it":
		return golem.New(it.New())
	default:
		return nil, fmt.Errorf("%w: no lemmatizer for %q", domain.ErrInvalidInput, code)
	}
}

// DetectLanguage returns the ISO 639-1 code of the text's language, or
// the default language when detection is inconclusive.
func (r *Resources) DetectLanguage(text string) string {
	lang, ok := r.detector.DetectLanguageOf(text)
	if !ok {
		return r.defaultLang
	}
	code := strings.ToLower(lang.IsoCode639_1().String())
	if _, known := r.lemmatizers[code]; !known {
		return r.defaultLang
	}
	return code
}

// IsAcronym reports whether the lowercase token is in the keep list.
func (r *Resources) IsAcronym(token string) bool {
	_, ok := r.acronyms[token]
	return ok
}
