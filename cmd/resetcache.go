package cmd

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/meysamhadeli/codesense/constants/lipgloss"
	"github.com/meysamhadeli/codesense/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// resetCacheCmd represents the reset-cache command
var resetCacheCmd = &cobra.Command{
	Use:   "reset-cache",
	Short: "Reset the analysis cache",
	Long: `The 'reset-cache' command removes every cached analysis result, both the in-memory
entries and the compressed files in the cache directory.
Use this command after upgrading or when experiencing cache-related issues.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		stats, _ := cmd.Flags().GetBool("stats")
		maxAge, _ := cmd.Flags().GetDuration("older-than")

		return handleResetCacheCommand(cmd, force, stats, maxAge)
	},
}

func init() {
	resetCacheCmd.Flags().BoolP("force", "f", false, "Force cache reset without confirmation")
	resetCacheCmd.Flags().BoolP("stats", "s", false, "Show cache statistics instead of resetting")
	resetCacheCmd.Flags().Duration("older-than", 0, "Only remove entries older than this age (e.g. '72h')")

	rootCmd.AddCommand(resetCacheCmd)
}

func handleResetCacheCommand(cmd *cobra.Command, force bool, showStats bool, maxAge time.Duration) error {
	rootDependencies, err := handleRootCommand(cmd)
	if err != nil {
		return err
	}
	analyzer := rootDependencies.Analyzer
	out := cmd.OutOrStdout()

	if showStats {
		cacheStats, err := analyzer.GetCacheStats()
		if err != nil {
			return fmt.Errorf("could not read cache statistics: %w", err)
		}
		printCacheStats(out, cacheStats)
		return nil
	}

	if enabled, _ := analyzer.GetCacheStats(); enabled["cache_enabled"] != true {
		fmt.Fprintln(out, lipgloss.Yellow.Render("Cache is disabled. No cache to reset."))
		return nil
	}

	if !force {
		confirmed, err := utils.Confirm(bufio.NewReader(cmd.InOrStdin()), "Are you sure you want to reset the analysis cache?")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(out, lipgloss.Yellow.Render("Cache reset cancelled."))
			return nil
		}
	}

	spinnerInstance, _ := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgCyan)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true).
		Start("Resetting analysis cache...")

	if maxAge > 0 {
		err = analyzer.CleanExpiredCache(maxAge)
	} else {
		err = analyzer.ClearCache()
	}
	_ = spinnerInstance.Stop()
	if err != nil {
		return fmt.Errorf("error resetting cache: %w", err)
	}

	fmt.Fprintln(out, lipgloss.Green.Render("✓ Analysis cache has been successfully reset!"))
	return nil
}

func printCacheStats(w io.Writer, cacheStats map[string]interface{}) {
	fmt.Fprintln(w, lipgloss.Info.Render("Cache Statistics:"))
	if enabled, ok := cacheStats["cache_enabled"].(bool); !ok || !enabled {
		fmt.Fprintln(w, "  Cache is disabled")
		return
	}

	if entries, ok := cacheStats["memory_entries"].(int); ok {
		fmt.Fprintf(w, "  Memory Entries: %d\n", entries)
	}
	if dir, ok := cacheStats["cache_dir"].(string); ok {
		fmt.Fprintf(w, "  Cache Directory: %s\n", dir)
	}
	if files, ok := cacheStats["cache_files"].(int); ok {
		fmt.Fprintf(w, "  Cached Files: %d\n", files)
	}
	if size, ok := cacheStats["total_size"].(int64); ok {
		fmt.Fprintf(w, "  Total Size: %.2f MB\n", float64(size)/(1024*1024))
	}
	if hitRate, ok := cacheStats["hit_rate_percent"].(float64); ok {
		fmt.Fprintf(w, "  Hit Rate: %.1f%%\n", hitRate)
	}
}
