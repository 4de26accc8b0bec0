package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ZenithArcX/Synapx/internal/export"
	"github.com/ZenithArcX/Synapx/internal/history"
)

var (
	exportOut   string
	exportLimit int
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the routing history to an XLSX workbook",
	Long: `Export renders the recorded routing decisions (newest first) as an
XLSX workbook for adjusters and auditors.

Example:
  synapx export --out history.xlsx
  synapx export --out recent.xlsx --limit 100`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportOut, "out", "routing_history.xlsx", "output XLSX path")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "maximum entries to export (0 = all)")
	exportCmd.Flags().StringVar(&historyPath, "history-path", "", "routing history database path")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := history.NewStore(historyPath)
	if err != nil {
		return fmt.Errorf("open routing history: %w", err)
	}
	defer func() { _ = store.Close() }()

	data, err := export.NewService(store).HistoryXLSX(ctx, exportLimit)
	if err != nil {
		return fmt.Errorf("export history: %w", err)
	}

	if err := os.WriteFile(exportOut, data, 0644); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", exportOut)
	return nil
}
