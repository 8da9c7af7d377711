package cmd

import (
	"fmt"
	"time"

	"github.com/iksnae/cursor-chat-export/internal"
)

// runExport is the shared pipeline behind every subcommand: load
// config, discover stores, extract, aggregate, render, write.
func runExport(mode internal.Mode) error {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	internal.SetVerbose(cfg.Verbose)

	paths, err := internal.ResolveStoragePaths(cfg.StorageDir)
	if err != nil {
		return err
	}
	internal.LogDebug("storage base: %s", paths.Base)

	reader := internal.NewStoreReader(paths)
	stores, err := reader.DiscoverStores(mode.CurrentOnly())
	if err != nil {
		return err
	}
	internal.LogInfo("reading %d store(s)", len(stores))

	records := reader.ReadRecords(stores)

	sessions, err := internal.ExtractSessions(records)
	if err != nil {
		return err
	}

	bundle := internal.Aggregate(sessions, mode)
	doc := internal.RenderHTML(bundle)

	path, err := internal.NewWriter(cfg.ExportDir).Write(mode, doc)
	if err != nil {
		return err
	}

	entry := internal.ManifestEntry{
		Mode:      string(mode),
		File:      path,
		Sessions:  bundle.SessionCount,
		Dialogues: bundle.DialogueCount,
		Questions: bundle.QuestionCount,
		CreatedAt: time.Now().UTC(),
	}
	if err := internal.AppendManifest(cfg.ExportDir, entry); err != nil {
		internal.LogWarn("failed to update manifest: %v", err)
	}

	internal.PrintSuccess(fmt.Sprintf("Exported %d session(s) to %s", bundle.SessionCount, path))
	return nil
}
