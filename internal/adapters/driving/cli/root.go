// Package cli provides the command-line interface for quill.
// It implements a driving adapter following hexagonal architecture
// principles: commands translate flags and arguments into calls on the
// core's driving ports.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/quillworks-labs/quill-cli/internal/core/ports/driving"
	"github.com/quillworks-labs/quill-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "0.1.0"

// Services the commands call into. Wired once by SetServices before
// Execute runs.
var (
	projectService driving.ProjectService
	documentReader driving.DocumentReader
	coordinator    driving.Coordinator

	// databasePath is where the store lives, for the editor's change watcher.
	databasePath string

	// themeName is the configured editor theme.
	themeName string
)

// Services aggregates everything the CLI needs from the composition root.
type Services struct {
	Projects     driving.ProjectService
	Reader       driving.DocumentReader
	Coordinator  driving.Coordinator
	DatabasePath string
	Theme        string
}

// SetServices wires the core services into the command tree.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	projectService = s.Projects
	documentReader = s.Reader
	coordinator = s.Coordinator
	databasePath = s.DatabasePath
	themeName = s.Theme
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "A structured writing environment for long-form markdown",
	Long: `Quill is a local-first writing tool for long-form work.

A document is a flat ordered list of blocks stored in SQLite. The editor
offers two synchronized surfaces: a structured outline view and a plain
markdown source view. Heading hierarchy is enforced so a section is never
more than one level deeper than its parent.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
