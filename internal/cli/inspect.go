package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dkorolev/crossfoot/internal/workbook"
)

var (
	inspectPage int
	inspectRows int
)

// inspectCmd groups the read-only workbook viewers
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Read-only workbook viewers",
	Long: `Inspect exposes the workbook without running a reconciliation:
sheet metadata, paged row windows, and single-cell spotlights.

Example:
  crossfoot inspect meta statements.xlsx
  crossfoot inspect page statements.xlsx "P&L" --page 2 --rows 25
  crossfoot inspect cell statements.xlsx "P&L" B5`,
}

var inspectMetaCmd = &cobra.Command{
	Use:   "meta <workbook.xlsx>",
	Short: "List worksheets with their dimensions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meta, err := workbook.Meta(args[0])
		if err != nil {
			return err
		}
		return printJSON(meta)
	},
}

var inspectPageCmd = &cobra.Command{
	Use:   "page <workbook.xlsx> <sheet>",
	Short: "Show a window of rendered rows from one worksheet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := workbook.Page(args[0], args[1], inspectPage, inspectRows)
		if err != nil {
			return err
		}
		return printJSON(page)
	},
}

var inspectCellCmd = &cobra.Command{
	Use:   "cell <workbook.xlsx> <sheet> <ref>",
	Short: "Show one cell with its 3x3 neighborhood",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		spot, err := workbook.Spotlight(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		return printJSON(spot)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.AddCommand(inspectMetaCmd)
	inspectCmd.AddCommand(inspectPageCmd)
	inspectCmd.AddCommand(inspectCellCmd)

	inspectPageCmd.Flags().IntVar(&inspectPage, "page", 1, "1-based page number")
	inspectPageCmd.Flags().IntVar(&inspectRows, "rows", 20, "rows per page")
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
