package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/raeesul-erabiz/invoice-extractor/internal/canonical"
	"github.com/raeesul-erabiz/invoice-extractor/internal/config"
	"github.com/raeesul-erabiz/invoice-extractor/internal/domain"
	"github.com/raeesul-erabiz/invoice-extractor/internal/pipeline"
	"github.com/raeesul-erabiz/invoice-extractor/internal/report"
)

var (
	inputDir    string
	outputDir   string
	concurrency int
	reportKind  string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Reconcile every extracted JSON record in a directory",
	Long: `process reads each .json file under --input, runs it through the
reconciliation pipeline, and writes the canonical record to --output under
the same base name. Files are processed concurrently; a failure in one file
does not stop the others.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&inputDir, "input", "", "directory of extracted invoice JSON files (required)")
	processCmd.Flags().StringVar(&outputDir, "output", "", "directory for canonical output files (required)")
	processCmd.Flags().IntVar(&concurrency, "concurrency", 0, "worker count (default from INVREC_BATCH_CONCURRENCY)")
	processCmd.Flags().StringVar(&reportKind, "report", "", "also write a variance summary: csv or xlsx")
	_ = processCmd.MarkFlagRequired("input")
	_ = processCmd.MarkFlagRequired("output")
}

type fileResult struct {
	path    string
	invoice domain.Invoice
	err     error
}

func runProcess(ctx context.Context) error {
	started := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	workers := concurrency
	if workers <= 0 {
		workers = cfg.Batch.Concurrency
	}
	if workers <= 0 {
		workers = 1
	}
	if reportKind != "" && reportKind != "csv" && reportKind != "xlsx" {
		return fmt.Errorf("unknown report kind %q (want csv or xlsx)", reportKind)
	}

	files, err := discoverInputs(inputDir)
	if err != nil {
		return fmt.Errorf("discover inputs: %w", err)
	}
	if len(files) == 0 {
		log.Printf("process: no .json files under %s", inputDir)
		return nil
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	log.Printf("process: %d file(s), concurrency=%d", len(files), workers)

	pipe := pipeline.New(pipeline.Options{StandardTaxRate: cfg.Tax.Rate()})

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	results := make(chan fileResult, len(files))

	for _, path := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()

			inv, err := processFile(ctx, pipe, path)
			results <- fileResult{path: path, invoice: inv, err: err}
		}(path)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var ok, failed int
	var invoices []domain.Invoice
	for res := range results {
		if res.err != nil {
			failed++
			log.Printf("process: %s: %v", filepath.Base(res.path), res.err)
			continue
		}
		ok++
		invoices = append(invoices, res.invoice)
	}

	// Channel order reflects completion order; reports should be stable.
	sort.Slice(invoices, func(i, j int) bool {
		return invoices[i].InvoiceNumber < invoices[j].InvoiceNumber
	})

	if reportKind != "" && len(invoices) > 0 {
		if err := writeReport(reportKind, invoices); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	log.Printf("process: done in %s (%d ok, %d failed)", time.Since(started).Round(time.Millisecond), ok, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(files))
	}
	return nil
}

func processFile(ctx context.Context, pipe *pipeline.Pipeline, path string) (domain.Invoice, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("read: %w", err)
	}

	raw, sup, err := pipeline.DecodeInput(b)
	if err != nil {
		return domain.Invoice{}, err
	}

	inv, run := pipe.Process(ctx, raw, sup)
	for _, ev := range run.Events() {
		log.Printf("process: %s [%s/%s] %s", filepath.Base(path), ev.Stage, ev.Level, ev.Message)
	}

	out, err := canonical.MarshalIndent(inv)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("encode: %w", err)
	}

	dst := filepath.Join(outputDir, filepath.Base(path))
	if err := os.WriteFile(dst, out, 0o644); err != nil {
		return domain.Invoice{}, fmt.Errorf("write: %w", err)
	}
	return inv, nil
}

func discoverInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func writeReport(kind string, invoices []domain.Invoice) error {
	switch kind {
	case "csv":
		path := filepath.Join(outputDir, "variance_summary.csv")
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		if _, err := f.Write(report.BOM); err != nil {
			return err
		}
		w := report.NewWriter(f)
		if err := w.WriteHeader(); err != nil {
			return err
		}
		if err := w.WriteInvoices(invoices); err != nil {
			return err
		}
		w.Flush()
		return w.Error()
	case "xlsx":
		return report.WriteXLSX(filepath.Join(outputDir, "variance_summary.xlsx"), invoices)
	default:
		return fmt.Errorf("unknown report kind %q", kind)
	}
}
