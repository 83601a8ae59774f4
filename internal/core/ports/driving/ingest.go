package driving

import "context"

// FileStatus reports what ingestion did with one source file.
type FileStatus string

const (
	// StatusNew means the file was not present in the store before.
	StatusNew FileStatus = "new"

	// StatusUpdated means an existing record was merged into.
	StatusUpdated FileStatus = "updated"

	// StatusFailed means every pipeline stage degraded to empty output.
	// The file still gets a (mostly empty) record; the batch continues.
	StatusFailed FileStatus = "failed"
)

// FileOutcome is the per-file line of an ingestion report.
type FileOutcome struct {
	Filename    string     `json:"filename"`
	Status      FileStatus `json:"status"`
	Type        string     `json:"type"`
	TokensAfter int        `json:"tokens_after"`
	Err         string     `json:"error,omitempty"`
}

// IngestReport summarises one ingestion batch.
type IngestReport struct {
	New     int           `json:"new"`
	Updated int           `json:"updated"`
	Failed  int           `json:"failed"`
	Files   []FileOutcome `json:"files"`
}

// IngestService runs the acquisition → normalisation → indexing pipeline
// and merges the results into the metadata store.
type IngestService interface {
	// IngestFiles processes the given source files. Archives are
	// expanded and their supported contents ingested as new inputs.
	// Per-file failures degrade that file's record; the batch never
	// aborts for one bad file.
	IngestFiles(ctx context.Context, paths []string) (*IngestReport, error)

	// Reprocess re-runs the full pipeline over every file already in the
	// corpus directory.
	Reprocess(ctx context.Context) (*IngestReport, error)
}
