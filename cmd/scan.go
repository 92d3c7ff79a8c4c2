package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/meysamhadeli/codesense/code_analyzer/models"
	"github.com/meysamhadeli/codesense/constants/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type scanReport struct {
	ScanID string                `json:"scan_id" yaml:"scan_id"`
	Root   string                `json:"root" yaml:"root"`
	Files  []models.FileAnalysis `json:"files" yaml:"files"`
}

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Analyze every recognized source file under a directory",
	Long: `The 'scan' command walks a directory (the working directory by default), skipping
VCS, tool and build directories and anything listed in '.codesense-ignore', and
analyzes each file whose extension maps to a supported language.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleScanCommand(cmd, args)
	},
}

func init() {
	scanCmd.Flags().IntP("workers", "w", 0, "Number of files analyzed in parallel (default: configured value or CPU count)")

	rootCmd.AddCommand(scanCmd)
}

func handleScanCommand(cmd *cobra.Command, args []string) error {
	rootDependencies, err := handleRootCommand(cmd)
	if err != nil {
		return err
	}
	cfg := rootDependencies.Config

	root := rootDependencies.Cwd
	if len(args) == 1 {
		root = args[0]
	}

	workers := cfg.Workers
	if cmd.Flags().Changed("workers") {
		workers, _ = cmd.Flags().GetInt("workers")
	}

	structuredOutput := cfg.OutputFormat != "text"

	var spinnerInstance *pterm.SpinnerPrinter
	if !structuredOutput {
		spinnerInstance, _ = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
			WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
			WithDelay(100).WithRemoveWhenDone(true).
			Start("Scanning " + root + "...")
	}

	files, err := rootDependencies.Analyzer.ScanDirectory(cmd.Context(), root, workers)
	if spinnerInstance != nil {
		_ = spinnerInstance.Stop()
	}
	if err != nil {
		return err
	}

	report := scanReport{ScanID: uuid.New().String(), Root: root, Files: files}

	out := cmd.OutOrStdout()
	if structured, err := writeStructured(out, cfg.OutputFormat, report); structured || err != nil {
		return err
	}

	if len(files) == 0 {
		fmt.Fprintln(out, lipgloss.Yellow.Render("No supported source files found."))
		return nil
	}
	renderScan(out, report)
	return nil
}

func renderScan(w io.Writer, report scanReport) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Path", "Language", "Complexity", "Purpose", "Warnings"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	failed := 0
	for _, file := range report.Files {
		if file.Result == nil || file.Result.Summary == nil {
			failed++
			table.Append([]string{file.RelativePath, "-", "-", file.Error, "-"})
			continue
		}
		result := file.Result
		table.Append([]string{
			file.RelativePath,
			result.Language.DisplayName(),
			string(result.Summary.Complexity),
			result.Summary.Purpose,
			strconv.Itoa(len(result.Validation.Warnings)),
		})
	}

	table.SetFooter([]string{"", "", "", "Files", strconv.Itoa(len(report.Files))})
	table.Render()

	if failed > 0 {
		fmt.Fprintln(w, lipgloss.Yellow.Render(fmt.Sprintf("%d file(s) could not be analyzed", failed)))
	}
}
