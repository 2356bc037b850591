package activities

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"markrecon/internal/compare"
	"markrecon/internal/config"
	"markrecon/internal/extract"
	"markrecon/internal/master"
	"markrecon/internal/models"
	"markrecon/internal/report"
	"markrecon/internal/storage"
	"markrecon/internal/util"
)

type Activities struct {
	cfg     config.Config
	runRepo *storage.RunRepo
}

func New(cfg config.Config, db *storage.DB) *Activities {
	return &Activities{
		cfg:     cfg,
		runRepo: storage.NewRunRepo(db),
	}
}

func (a *Activities) ListDocumentsActivity(ctx context.Context, in ListDocumentsInput) (ListDocumentsOutput, error) {
	_ = ctx
	entries, err := os.ReadDir(in.InputDir)
	if err != nil {
		return ListDocumentsOutput{}, fmt.Errorf("read input dir: %w", err)
	}
	paths := make([]string, 0)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			paths = append(paths, filepath.Join(in.InputDir, e.Name()))
		}
	}
	sort.Strings(paths)
	return ListDocumentsOutput{Paths: paths}, nil
}

func (a *Activities) FingerprintDocumentActivity(ctx context.Context, in FingerprintDocumentInput) (FingerprintDocumentOutput, error) {
	_ = ctx
	f, err := os.Open(in.DocumentPath)
	if err != nil {
		return FingerprintDocumentOutput{}, fmt.Errorf("open document for hash: %w", err)
	}
	defer f.Close()
	sum, err := util.SHA256HexFromReader(f)
	if err != nil {
		return FingerprintDocumentOutput{}, fmt.Errorf("hash document: %w", err)
	}
	return FingerprintDocumentOutput{SHA256: sum}, nil
}

func (a *Activities) LoadMasterActivity(ctx context.Context, in LoadMasterInput) (LoadMasterOutput, error) {
	_ = ctx
	recs, err := master.LoadFile(in.MasterPath, in.Phase)
	if err != nil {
		return LoadMasterOutput{}, err
	}
	return LoadMasterOutput{Records: recs}, nil
}

// ExtractDocumentActivity recovers document text and extracts records for
// the phase. Zero extracted records is the fatal empty-extraction condition;
// a block with no rows inside a non-empty extraction is not.
func (a *Activities) ExtractDocumentActivity(ctx context.Context, in ExtractDocumentInput) (ExtractDocumentOutput, error) {
	_ = ctx
	text, err := extract.DocumentText(in.DocumentPath)
	if err != nil {
		return ExtractDocumentOutput{}, err
	}

	var records []models.Record
	switch in.Phase {
	case models.PhaseInfo:
		records = compare.InfoRecords(extract.Info(text))
	default:
		records = compare.CourseRecords(extract.Marks(text))
	}
	if len(records) == 0 {
		return ExtractDocumentOutput{}, util.ErrNoRecords
	}
	return ExtractDocumentOutput{Records: records}, nil
}

func (a *Activities) CompareActivity(ctx context.Context, in CompareInput) (CompareOutput, error) {
	_ = ctx
	return CompareOutput{Result: compare.Compare(in.Source, in.Target, in.Phase)}, nil
}

func (a *Activities) WriteReportsActivity(ctx context.Context, in WriteReportsInput) (WriteReportsOutput, error) {
	_ = ctx
	paths, err := report.Write(a.cfg.DataOutRoot, in.RunID, in.Result)
	if err != nil {
		return WriteReportsOutput{}, err
	}
	return WriteReportsOutput{Paths: paths}, nil
}

func (a *Activities) UpsertRunActivity(ctx context.Context, in UpsertRunInput) error {
	return a.runRepo.UpsertRun(ctx, in.Run)
}

func (a *Activities) UpdateRunStatusActivity(ctx context.Context, in UpdateRunStatusInput) error {
	return a.runRepo.UpdateRunStatus(ctx, in.RunID, in.Status, in.FailReason)
}
