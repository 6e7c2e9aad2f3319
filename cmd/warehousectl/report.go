package main

import (
	"fmt"
	"io"
	"os"

	"fruitwarehouse/internal/dto"
	"fruitwarehouse/internal/report"
	"fruitwarehouse/internal/repository"
	"fruitwarehouse/internal/service"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var reportReq dto.ReportRequest
var reportOut string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a delivery report for a date range",
	Example: `  warehousectl report --start 2024-01-01 --end 2024-01-31 --format csv
  warehousectl report --start 2024-01-01 --end 2024-01-31 --detailed --format pdf --out jan.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		svc := service.NewReportService(repository.NewReportRepository(db), report.DefaultRegistry())

		doc, err := svc.Generate(cmd.Context(), reportReq)
		if err != nil {
			return err
		}
		return writeDocument(cmd.OutOrStdout(), doc, reportOut)
	},
}

// writeDocument writes doc to out; "-" means w. An empty out falls back to the
// document's own file name, or w when it has none.
func writeDocument(w io.Writer, doc *report.Document, out string) error {
	if out == "" {
		out = doc.FileName
	}
	if out == "" || out == "-" {
		_, err := w.Write(doc.Body)
		return err
	}
	if err := os.WriteFile(out, doc.Body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	log.Info().Str("file", out).Int("bytes", len(doc.Body)).Msg("report written")
	return nil
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportReq.StartDate, "start", "", "first day of the period (YYYY-MM-DD)")
	f.StringVar(&reportReq.EndDate, "end", "", "last day of the period (YYYY-MM-DD)")
	f.BoolVar(&reportReq.Detailed, "detailed", false, "one row per delivery item instead of grouped totals")
	f.StringVar(&reportReq.Format, "format", "JSON", "output format: JSON, CSV, PDF or XLSX")
	f.StringVarP(&reportOut, "out", "o", "", "output file, - for stdout (default is the report file name)")
	_ = reportCmd.MarkFlagRequired("start")
	_ = reportCmd.MarkFlagRequired("end")
}
