// Command reconcile runs one master/document reconciliation synchronously,
// without Temporal or Postgres: load master rows, extract document records,
// compare, write report artifacts, print counts.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"markrecon/internal/compare"
	"markrecon/internal/config"
	"markrecon/internal/extract"
	"markrecon/internal/master"
	"markrecon/internal/models"
	"markrecon/internal/report"
	"markrecon/internal/util"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()

	masterPath := flag.String("master", "", "path to master spreadsheet export (CSV)")
	documentPath := flag.String("document", "", "path to marksheet/transcript PDF")
	phaseFlag := flag.String("phase", string(models.PhaseMarks), "comparison phase: marks or info")
	outDir := flag.String("out", cfg.DataOutRoot, "report output root")
	flag.Parse()

	phase := models.Phase(*phaseFlag)
	if *masterPath == "" || *documentPath == "" || !phase.Valid() {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*masterPath, *documentPath, phase, *outDir); err != nil {
		log.Fatal(err)
	}
}

func run(masterPath, documentPath string, phase models.Phase, outDir string) error {
	source, err := master.LoadFile(masterPath, phase)
	if err != nil {
		return err
	}

	text, err := extract.DocumentText(documentPath)
	if err != nil {
		return err
	}

	var target []models.Record
	switch phase {
	case models.PhaseInfo:
		target = compare.InfoRecords(extract.Info(text))
	default:
		target = compare.CourseRecords(extract.Marks(text))
	}
	if len(target) == 0 {
		return util.ErrNoRecords
	}

	res := compare.Compare(source, target, phase)
	runID := uuid.NewString()
	paths, err := report.Write(outDir, runID, res)
	if err != nil {
		return err
	}

	docBytes, err := os.ReadFile(documentPath)
	if err != nil {
		return fmt.Errorf("read document for fingerprint: %w", err)
	}

	log.Printf("run %s phase=%s document_sha256=%s", runID, phase, util.SHA256Hex(docBytes))
	log.Printf("source=%d target=%d mismatched=%d missing_in_document=%d extra_in_document=%d",
		len(source), len(target), len(res.Mismatches), len(res.MissingInTarget), len(res.MissingInSource))
	for _, p := range paths {
		log.Printf("wrote %s", p)
	}
	if res.Clean() {
		log.Printf("all records match")
	}
	return nil
}
