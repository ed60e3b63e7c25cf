// Command quill is a structured writing environment for long-form
// markdown, backed by a local SQLite block store.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/quillworks-labs/quill-cli/internal/adapters/driven/config/file"
	"github.com/quillworks-labs/quill-cli/internal/adapters/driven/storage/sqlite"
	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/cli"
	"github.com/quillworks-labs/quill-cli/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "quill: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	session, err := services.NewSession(
		store.BlockStore(),
		store.ProjectStore(),
		configStore,
		coordinatorConfig(configStore),
	)
	if err != nil {
		return fmt.Errorf("wiring session: %w", err)
	}
	defer session.Close()

	cli.SetServices(&cli.Services{
		Projects:     session.ProjectSvc,
		Reader:       session.Documents,
		Coordinator:  session.Coordinator,
		DatabasePath: store.Path(),
		Theme:        configStore.GetString("editor.theme"),
	})

	return cli.Execute()
}

// coordinatorConfig starts from the defaults and applies any timing
// overrides from the config file.
func coordinatorConfig(config *file.ConfigStore) services.CoordinatorConfig {
	cfg := services.DefaultCoordinatorConfig()
	if ms := config.GetInt("sync.persist_debounce_ms"); ms > 0 {
		cfg.PersistDebounce = time.Duration(ms) * time.Millisecond
	}
	if ms := config.GetInt("sync.reparse_debounce_ms"); ms > 0 {
		cfg.ReparseDebounce = time.Duration(ms) * time.Millisecond
	}
	return cfg
}
