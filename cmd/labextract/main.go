// labextract runs the extraction pipeline over one report text file and
// prints the findings. With -db it also persists the report to an embedded
// sqlite store, and with -xlsx it writes a spreadsheet next to the findings.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joseph-ayodele/bloodwork-analyzer/internal/diagnose"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/export"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/extract"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/ingest"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/interpret"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/pipeline"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/registry"
	repo "github.com/joseph-ayodele/bloodwork-analyzer/internal/repository"
)

func main() {
	var (
		catalogue  = flag.String("catalogue", os.Getenv("NUTRIENT_CATALOGUE"), "optional JSON catalogue override")
		dbPath     = flag.String("db", "", "sqlite database path; empty keeps results in memory")
		xlsxPath   = flag.String("xlsx", "", "write findings to this xlsx file")
		asJSON     = flag.Bool("json", false, "print findings as JSON")
		minResults = flag.Int("min-results", 3, "attach a diagnosis below this many findings")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: labextract [flags] <report.txt>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(flag.Arg(0), *catalogue, *dbPath, *xlsxPath, *asJSON, *minResults, logger); err != nil {
		fmt.Fprintln(os.Stderr, "labextract:", err)
		os.Exit(1)
	}
}

func run(path, catalogue, dbPath, xlsxPath string, asJSON bool, minResults int, logger *slog.Logger) error {
	ctx := context.Background()

	reg, err := registry.Load(catalogue, logger)
	if err != nil {
		return fmt.Errorf("load nutrient catalogue: %w", err)
	}
	extractor := extract.New(reg, extract.WithLogger(logger))

	var (
		reports repo.LabReportRepository
		results repo.NutrientResultRepository
	)
	if dbPath != "" {
		store, err := repo.OpenSQLite(ctx, dbPath, logger)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		reports, results = store, store
	} else {
		mem := repo.NewMemoryStore()
		reports, results = mem, mem
	}

	processor := pipeline.NewProcessor(logger, reg, extractor, reports, results, minResults)
	ingestService := ingest.NewService(reports, syncQueue{processor}, logger)

	res, err := ingestService.IngestFile(ctx, path, true)
	if err != nil {
		return err
	}

	report, err := reports.GetByID(ctx, res.ReportID)
	if err != nil {
		return err
	}
	extraction := extractor.Extract(report.RawText)
	findings := interpret.Classify(reg, extraction)

	if asJSON {
		out := struct {
			Findings  []interpret.Finding `json:"findings"`
			Diagnosis *diagnose.Diagnosis `json:"diagnosis,omitempty"`
		}{Findings: findings}
		if len(findings) < minResults {
			d := diagnose.Run(report.RawText, extraction)
			out.Diagnosis = &d
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(findings) == 0 {
		fmt.Println("no values extracted")
	}
	for _, f := range findings {
		fmt.Printf("%-24s %8.2f %-10s %-6s (normal %g-%g, confidence %.2f, %s)\n",
			f.Name, f.Value, f.Unit, f.Status, f.Normal.Low, f.Normal.High, f.Confidence, f.Strategy)
	}
	if len(findings) < minResults {
		d := diagnose.Run(report.RawText, extraction)
		for _, issue := range d.PotentialIssues {
			fmt.Println("issue:", issue)
		}
		for _, sg := range d.Suggestions {
			fmt.Println("suggestion:", sg)
		}
	}

	if xlsxPath != "" {
		body, err := export.NewService(reports, results, logger).ExportReportXLSX(ctx, res.ReportID)
		if err != nil {
			return fmt.Errorf("export xlsx: %w", err)
		}
		if err := os.WriteFile(xlsxPath, body, 0o644); err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}
		fmt.Println("wrote", xlsxPath)
	}
	return nil
}
