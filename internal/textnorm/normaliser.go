package textnorm

import (
	"context"
	"strings"
	"unicode"

	"github.com/bbalet/stopwords"

	"github.com/marais-labs/corpus-cli/internal/core/ports/driven"
)

// Ensure the normalizers implement the interface.
var _ driven.TextNormalizer = (*ModelBackedNormalizer)(nil)
var _ driven.TextNormalizer = (*RuleBasedNormalizer)(nil)

// ModelBackedNormalizer detects the document language, lemmatizes every
// token and filters stopwords and short tokens. It needs the language
// models held by Resources.
type ModelBackedNormalizer struct {
	res *Resources
}

// NewModelBackedNormalizer wraps shared language resources.
func NewModelBackedNormalizer(res *Resources) *ModelBackedNormalizer {
	return &ModelBackedNormalizer{res: res}
}

func (n *ModelBackedNormalizer) Name() string { return "model" }

// Normalize lowercases and strips each token, lemmatizes it in the
// detected language, and drops stopwords and tokens shorter than three
// characters. Short tokens survive when they are known acronyms or were
// written fully uppercase in the source text.
func (n *ModelBackedNormalizer) Normalize(ctx context.Context, raw string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lang := n.res.DetectLanguage(raw)
	lem := n.res.lemmatizers[lang]

	var out []string
	for _, orig := range strings.Fields(raw) {
		for _, tok := range cleanTokens(orig) {
			tok = lem.Lemma(tok)
			if isStopword(tok, lang) {
				continue
			}
			if len([]rune(tok)) <= 2 && !n.res.IsAcronym(tok) && !isAllUpper(orig) {
				continue
			}
			out = append(out, tok)
		}
	}
	return strings.Join(out, " "), nil
}

// RuleBasedNormalizer filters without language models: it lowercases,
// strips, and drops tokens of two characters or fewer. Without
// detection no single document language is known, so the stopword sets
// of every configured language apply. It serves when loading the
// language models is disabled or fails.
type RuleBasedNormalizer struct {
	langs    []string
	acronyms map[string]struct{}
}

// NewRuleBasedNormalizer builds a filter-only normalizer. A token is a
// stopword when any of the given ISO 639-1 languages lists it.
func NewRuleBasedNormalizer(langs []string, acronyms []string) *RuleBasedNormalizer {
	keep := make(map[string]struct{}, len(defaultAcronyms)+len(acronyms))
	for _, a := range defaultAcronyms {
		keep[a] = struct{}{}
	}
	for _, a := range acronyms {
		keep[strings.ToLower(a)] = struct{}{}
	}
	lowered := make([]string, 0, len(langs))
	for _, lang := range langs {
		lowered = append(lowered, strings.ToLower(lang))
	}
	return &RuleBasedNormalizer{langs: lowered, acronyms: keep}
}

func (n *RuleBasedNormalizer) Name() string { return "rules" }

func (n *RuleBasedNormalizer) Normalize(ctx context.Context, raw string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var out []string
	for _, orig := range strings.Fields(raw) {
		for _, tok := range cleanTokens(orig) {
			if n.isStopwordAnyLang(tok) {
				continue
			}
			if len([]rune(tok)) <= 2 {
				if _, keep := n.acronyms[tok]; !keep && !isAllUpper(orig) {
					continue
				}
			}
			out = append(out, tok)
		}
	}
	return strings.Join(out, " "), nil
}

// cleanTokens lowercases the token, replaces every character outside
// the a-z and à-ÿ ranges with a space and splits on the gaps.
// Punctuation-joined words come apart ("l'abeille" yields "l" and
// "abeille") instead of fusing into one token.
func cleanTokens(tok string) []string {
	tok = strings.ToLower(tok)
	var b strings.Builder
	b.Grow(len(tok))
	for _, r := range tok {
		if (r >= 'a' && r <= 'z') || (r >= 'à' && r <= 'ÿ') {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}

// isStopword reports whether the token is a stopword of the language.
func isStopword(tok, lang string) bool {
	return strings.TrimSpace(stopwords.CleanString(tok, lang, false)) == ""
}

// isStopwordAnyLang checks the token against the union of the
// configured stopword languages.
func (n *RuleBasedNormalizer) isStopwordAnyLang(tok string) bool {
	for _, lang := range n.langs {
		if isStopword(tok, lang) {
			return true
		}
	}
	return false
}

// isAllUpper reports whether the original token is entirely uppercase
// letters, the shape of an acronym written out in the source.
func isAllUpper(orig string) bool {
	hasLetter := false
	for _, r := range orig {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			hasLetter = true
		}
	}
	return hasLetter
}
