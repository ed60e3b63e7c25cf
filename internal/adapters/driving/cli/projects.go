package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage writing projects",
	Long:  `List, create, import, or delete writing projects.`,
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	RunE:  runProjectsList,
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create an empty project",
	Long:  `Creates a project seeded with a single top-level heading named after it.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsCreate,
}

var projectsImportCmd = &cobra.Command{
	Use:   "import [name] [file]",
	Short: "Create a project from a markdown file",
	Long: `Parses the markdown file into blocks and creates a project from them.
Heading levels deeper than their parent allows are repaired on import.`,
	Args: cobra.ExactArgs(2),
	RunE: runProjectsImport,
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete [project-id]",
	Short: "Delete a project and all its blocks",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsDelete,
}

func init() {
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsImportCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)
	rootCmd.AddCommand(projectsCmd)
}

func runProjectsList(cmd *cobra.Command, _ []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	list, err := projectService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing projects: %w", err)
	}
	if len(list) == 0 {
		cmd.Println("No projects. Create one with: quill projects create <name>")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED")
	for _, p := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, p.CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func runProjectsCreate(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	project, err := projectService.Create(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	cmd.Printf("Created %q (%s)\n", project.Name, project.ID)
	return nil
}

func runProjectsImport(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	name, path := args[0], args[1]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	project, err := projectService.Import(cmd.Context(), name, string(data))
	if err != nil {
		return fmt.Errorf("importing project: %w", err)
	}
	cmd.Printf("Imported %q (%s)\n", project.Name, project.ID)
	return nil
}

func runProjectsDelete(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	id := strings.TrimSpace(args[0])
	if err := projectService.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	cmd.Printf("Deleted %s\n", id)
	return nil
}
