package cmd

import (
	"strings"

	"github.com/meysamhadeli/codesense/code_analyzer/models"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type languageEntry struct {
	Tag        models.LanguageTag `json:"value" yaml:"value"`
	Name       string             `json:"label" yaml:"label"`
	Extensions []string           `json:"extensions" yaml:"extensions"`
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the supported language tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}

		entries := make([]languageEntry, 0, len(models.SupportedLanguages))
		for _, info := range models.SupportedLanguages {
			entries = append(entries, languageEntry{Tag: info.Tag, Name: info.DisplayName, Extensions: info.Extensions})
		}

		out := cmd.OutOrStdout()
		if structured, err := writeStructured(out, rootDependencies.Config.OutputFormat, entries); structured || err != nil {
			return err
		}

		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Tag", "Language", "Extensions"})
		table.SetBorder(false)
		table.SetCenterSeparator("")
		for _, entry := range entries {
			table.Append([]string{string(entry.Tag), entry.Name, "." + strings.Join(entry.Extensions, ", .")})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
