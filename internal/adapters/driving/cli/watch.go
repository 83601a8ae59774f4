package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/marais-labs/corpus-cli/internal/logger"
)

// watchSettle is how long a file must stay quiet after its last write
// event before it is ingested, so half-copied files are not picked up.
var watchSettle = 2 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and ingest new files",
	Long: `Watches the directory and ingests every file created or modified
in it. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := args[0]
	if err := watcher.Add(dir); err != nil {
		return err
	}
	cmd.Printf("Watching %s (ctrl-c to stop)\n", dir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Pending files and the deadline after which they are ingested.
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			cmd.Println("\nStopped.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			if info, statErr := os.Stat(event.Name); statErr != nil || info.IsDir() {
				continue
			}
			pending[event.Name] = time.Now().Add(watchSettle)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", watchErr)

		case now := <-ticker.C:
			var ready []string
			for path, deadline := range pending {
				if now.After(deadline) {
					ready = append(ready, path)
					delete(pending, path)
				}
			}
			if len(ready) == 0 {
				continue
			}
			report, ingestErr := ingestService.IngestFiles(ctx, ready)
			if ingestErr != nil {
				logger.Warn("ingestion failed: %v", ingestErr)
				continue
			}
			if printErr := printReport(cmd, report, false); printErr != nil {
				return printErr
			}
		}
	}
}
