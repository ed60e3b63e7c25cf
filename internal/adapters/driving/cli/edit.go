package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quillworks-labs/quill-cli/internal/adapters/driven/watch"
	"github.com/quillworks-labs/quill-cli/internal/adapters/driving/tui"
	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

var editCmd = &cobra.Command{
	Use:   "edit [project]",
	Short: "Open the interactive editor",
	Long: `Open the interactive terminal editor.

With a project name or id, the project is opened directly. Without one,
a project picker is shown first.

Controls:
  ↑/k, ↓/j   - Navigate sections
  shift+↑/↓  - Move a section
  z / Z      - Zoom in / out
  tab        - Toggle source mode
  ?          - Help
  ctrl+c     - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	// Panic recovery so the terminal is not left without a stack trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in editor: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("the editor requires an interactive terminal")
	}

	if coordinator == nil || projectService == nil {
		return errors.New("editor services not configured")
	}

	app, err := tui.NewApp(&tui.Ports{
		Coordinator: coordinator,
		Projects:    projectService,
		Reader:      documentReader,
	})
	if err != nil {
		return fmt.Errorf("failed to create editor: %w", err)
	}
	app.WithContext(cmd.Context())
	if themeName != "" {
		app.SetTheme(themeName)
	}

	if len(args) == 1 {
		project, err := resolveProject(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		app.OpenProject(*project)

		// Pick up writes from other quill processes for this project.
		if databasePath != "" {
			watcher, err := watch.New(databasePath, project.ID, coordinator)
			if err != nil {
				fmt.Fprintf(os.Stderr, "change watcher disabled: %v\n", err)
			} else {
				defer watcher.Close()
			}
		}
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("editor error: %w", err)
	}
	return nil
}

// resolveProject finds a project by id first, then by exact name.
func resolveProject(ctx context.Context, ref string) (*domain.Project, error) {
	if project, err := projectService.Get(ctx, ref); err == nil {
		return project, nil
	}

	list, err := projectService.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	for i := range list {
		if list[i].Name == ref {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("no project matching %q", ref)
}
