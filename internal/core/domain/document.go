package domain

import (
	"encoding/json"
	"fmt"
)

// WordCount is a single (token, frequency) pair. The order of pairs in a
// record is the order in which tokens were first encountered during
// extraction, not a sorted order; consumers choose their own truncation.
//
// On the wire a pair is a two-element JSON array ["word", count], matching
// the store format read by downstream visualisation consumers.
type WordCount struct {
	Word  string
	Count int
}

// MarshalJSON encodes the pair as ["word", count].
func (w WordCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{w.Word, w.Count})
}

// UnmarshalJSON decodes ["word", count].
func (w *WordCount) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("word count pair: %w", err)
	}
	if err := json.Unmarshal(pair[0], &w.Word); err != nil {
		return fmt.Errorf("word count word: %w", err)
	}
	if err := json.Unmarshal(pair[1], &w.Count); err != nil {
		return fmt.Errorf("word count count: %w", err)
	}
	return nil
}

// DocumentRecord holds the metadata and frequency statistics for one
// ingested source file. Records are keyed by the exact filename including
// extension; that key is the corpus's sole identity guarantee, so
// re-ingesting the same filename merges into the existing record rather
// than duplicating it.
type DocumentRecord struct {
	// Filename is the record key, repeated inside the record for
	// consumers that read the store file directly.
	Filename string `json:"filename,omitempty"`

	// Type is the format tag derived from the file extension (pdf, docx,
	// txt, html, htm, other).
	Type string `json:"type,omitempty"`

	// Path is the resolved location of the original file inside the
	// type-partitioned corpus directory.
	Path string `json:"path,omitempty"`

	// CorpusRelPath is Path relative to the corpus root, slash-separated.
	CorpusRelPath string `json:"corpus_relpath,omitempty"`

	// Size is the corpus file size in bytes.
	Size int64 `json:"size,omitempty"`

	// NumPages is the page count for paged formats, 1 for flat text and
	// 0 when extraction failed.
	NumPages int `json:"num_pages"`

	// DateImport is the YYYY-MM-DD modification date of the corpus copy.
	// It is derived from the stored file, not from the wall clock at
	// ingestion time.
	DateImport string `json:"date_import,omitempty"`

	// Thumbnail is an optional inline preview of the first page encoded
	// as a data URI. Empty when no preview could be rendered.
	Thumbnail string `json:"thumbnail,omitempty"`

	// Context is the full normalized text. Token order is positional:
	// search and snippet extraction treat it as the document body.
	Context string `json:"context"`

	// Before/after statistics. "Before" counts are computed on the raw
	// extracted text when it is available and degenerate to the "after"
	// values when it is not.
	CharCountBefore   int `json:"char_count_before"`
	CharCountAfter    int `json:"char_count_after"`
	TotalTokensBefore int `json:"total_tokens_before"`
	TotalTokensAfter  int `json:"total_tokens_after"`

	// Words is the complete token frequency distribution of Context.
	Words []WordCount `json:"words"`

	// Bigrams is the complete adjacent-pair frequency distribution of
	// Context, each pair joined by a single space.
	Bigrams []WordCount `json:"bigrams"`
}

// Acquisition carries the fields recomputed by the extraction stage.
type Acquisition struct {
	Type          string
	Path          string
	CorpusRelPath string
	Size          int64
	NumPages      int
	DateImport    string
	Thumbnail     string
}

// IndexStats carries the fields recomputed by the frequency indexing stage.
type IndexStats struct {
	Context           string
	CharCountBefore   int
	CharCountAfter    int
	TotalTokensBefore int
	TotalTokensAfter  int
	Words             []WordCount
	Bigrams           []WordCount
}

// MergeAcquisition overwrites exactly the acquisition fields of the record.
// Fields owned by other stages are left untouched, so statistics from a
// prior ingestion persist until that stage recomputes them.
func (r *DocumentRecord) MergeAcquisition(a Acquisition) {
	r.Type = a.Type
	r.Path = a.Path
	r.CorpusRelPath = a.CorpusRelPath
	r.Size = a.Size
	r.NumPages = a.NumPages
	r.DateImport = a.DateImport
	r.Thumbnail = a.Thumbnail
}

// MergeIndex overwrites exactly the frequency-statistics fields of the
// record, leaving acquisition fields untouched.
func (r *DocumentRecord) MergeIndex(s IndexStats) {
	r.Context = s.Context
	r.CharCountBefore = s.CharCountBefore
	r.CharCountAfter = s.CharCountAfter
	r.TotalTokensBefore = s.TotalTokensBefore
	r.TotalTokensAfter = s.TotalTokensAfter
	r.Words = s.Words
	r.Bigrams = s.Bigrams
}

// DocumentIndex is a full snapshot of the metadata store, keyed by exact
// filename. It is loaded wholesale, mutated in memory and persisted
// wholesale; callers must treat it as a value snapshot, never a live handle.
type DocumentIndex map[string]*DocumentRecord

// Get returns the record for filename, or ErrNotFound.
func (idx DocumentIndex) Get(filename string) (*DocumentRecord, error) {
	rec, ok := idx[filename]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
	}
	return rec, nil
}

// Upsert returns the existing record for filename or inserts a fresh one.
// The returned boolean reports whether the record already existed.
func (idx DocumentIndex) Upsert(filename string) (*DocumentRecord, bool) {
	if rec, ok := idx[filename]; ok {
		return rec, true
	}
	rec := &DocumentRecord{Filename: filename}
	idx[filename] = rec
	return rec, false
}

// Vocabulary returns the set of distinct lowercase words across every
// record's frequency table. It is derived on demand, never stored.
func (idx DocumentIndex) Vocabulary() map[string]struct{} {
	vocab := make(map[string]struct{})
	for _, rec := range idx {
		for _, wc := range rec.Words {
			vocab[lower(wc.Word)] = struct{}{}
		}
	}
	return vocab
}

// lower is a small ASCII-preferring lowercase helper kept local so domain
// stays free of strings-package churn in hot loops.
func lower(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if c := s[i]; 'A' <= c && c <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
