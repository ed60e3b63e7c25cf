package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [project]",
	Short: "Export a project as clean markdown",
	Long: `Assembles the project's blocks into a single markdown document,
without any sync markers, and prints it to stdout or writes it to a file.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var outlineCmd = &cobra.Command{
	Use:   "outline [project]",
	Short: "Print a project's section tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runOutline,
}

var wordsCmd = &cobra.Command{
	Use:   "words [project]",
	Short: "Print a project's word count",
	Args:  cobra.ExactArgs(1),
	RunE:  runWords,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(wordsCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if documentReader == nil {
		return errors.New("document reader not configured")
	}

	project, err := resolveProject(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	text, err := documentReader.DocumentText(cmd.Context(), project.ID)
	if err != nil {
		return fmt.Errorf("assembling document: %w", err)
	}

	if exportOutput == "" {
		cmd.Println(text)
		return nil
	}
	if err := os.WriteFile(exportOutput, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", exportOutput, err)
	}
	cmd.Printf("Wrote %s\n", exportOutput)
	return nil
}

func runOutline(cmd *cobra.Command, args []string) error {
	if documentReader == nil {
		return errors.New("document reader not configured")
	}

	project, err := resolveProject(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	sections, err := documentReader.Outline(cmd.Context(), project.ID)
	if err != nil {
		return fmt.Errorf("reading outline: %w", err)
	}

	for _, s := range sections {
		line := strings.Repeat("  ", s.Level-1) + s.Title
		if s.Status != "" {
			line += fmt.Sprintf(" [%s]", s.Status)
		}
		if s.WordGoal > 0 {
			line += fmt.Sprintf(" (goal: %d)", s.WordGoal)
		}
		cmd.Println(line)
	}
	return nil
}

func runWords(cmd *cobra.Command, args []string) error {
	if documentReader == nil {
		return errors.New("document reader not configured")
	}

	project, err := resolveProject(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	count, err := documentReader.WordCount(cmd.Context(), project.ID)
	if err != nil {
		return fmt.Errorf("counting words: %w", err)
	}
	cmd.Printf("%d\n", count)
	return nil
}
