package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"wellness-analytics/internal/features/report"

	"github.com/spf13/cobra"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Inspect the report audit log",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reports",
	Args:  cobra.NoArgs,
	RunE:  runReportsList,
}

var reportsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsGet,
}

var reportsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsDelete,
}

var reportsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all reports to a file",
	Long: `Export all reports to a file.

Examples:
  analyticsctl reports export                       # CSV in the current directory
  analyticsctl reports export --format xlsx -o r.xlsx`,
	Args: cobra.NoArgs,
	RunE: runReportsExport,
}

var (
	exportFormat string
	exportOutput string
)

func init() {
	rootCmd.AddCommand(reportsCmd)
	reportsCmd.AddCommand(reportsListCmd, reportsGetCmd, reportsDeleteCmd, reportsExportCmd)

	reportsExportCmd.Flags().StringVarP(&exportFormat, "format", "f", report.ExportCSV, "csv or xlsx")
	reportsExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output path (default: generated file name)")
}

func parseReportID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid report id %q", arg)
	}
	return id, nil
}

func printReports(cmd *cobra.Command, reports []report.Report) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCOPE\tDATE\tMETRICS")
	for _, r := range reports {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ReportID, r.Scope, r.GeneratedDate, r.Metrics)
	}
	return w.Flush()
}

func runReportsList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	d, err := newDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close(ctx)

	reports, err := d.reports.ListReports(ctx)
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}
	if len(reports) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No reports found.")
		return nil
	}
	return printReports(cmd, reports)
}

func runReportsGet(cmd *cobra.Command, args []string) error {
	id, err := parseReportID(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	d, err := newDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close(ctx)

	r, err := d.reports.GetReport(ctx, id)
	if err != nil {
		return err
	}
	return printReports(cmd, []report.Report{*r})
}

func runReportsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseReportID(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	d, err := newDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close(ctx)

	if err := d.reports.DeleteReport(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Report deleted successfully")
	return nil
}

func runReportsExport(cmd *cobra.Command, args []string) error {
	if exportFormat != report.ExportCSV && exportFormat != report.ExportXLSX {
		return fmt.Errorf("unsupported format: %s", exportFormat)
	}

	ctx := context.Background()
	d, err := newDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close(ctx)

	data, filename, err := d.reports.ExportReports(ctx, exportFormat)
	if err != nil {
		return fmt.Errorf("failed to export reports: %w", err)
	}

	path := exportOutput
	if path == "" {
		path = filename
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
