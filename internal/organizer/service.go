package organizer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/farxc/listagem-empenhos/internal/logger"
	"github.com/farxc/listagem-empenhos/internal/sheet"
	"github.com/farxc/listagem-empenhos/internal/store"
)

const readCacheTTL = 60 * time.Second

// Service runs the upload-process-merge pipeline against the row store and
// serves the browsing view. It holds no global state; construct one per
// process and pass it where needed.
type Service struct {
	storage        *store.Storage
	appLogger      *logger.Logger
	now            func() time.Time
	csvWindows1252 bool
	cache          *readCache
}

func NewService(storage *store.Storage, appLogger *logger.Logger, csvWindows1252 bool) *Service {
	return &Service{
		storage:        storage,
		appLogger:      appLogger,
		now:            time.Now,
		csvWindows1252: csvWindows1252,
		cache:          newReadCache(readCacheTTL),
	}
}

// ProcessResult summarizes one upload-and-process run.
type ProcessResult struct {
	UploadID      uuid.UUID   `json:"upload_id"`
	RowsProcessed int         `json:"rows_processed"`
	RowsTotal     int         `json:"rows_total"`
	Merged        sheet.Table `json:"-"`
}

// ProcessUpload runs the whole pipeline start to finish: decode, extract,
// organize, merge against the persisted dataset and overwrite the store.
// Structural failures abort before anything is written; nothing is ever
// partially persisted.
func (s *Service) ProcessUpload(ctx context.Context, filename string, r io.Reader, username string) (*ProcessResult, error) {
	const component = "Organizer"

	s.appLogger.Info(component, "Processing upload: file=%s user=%s", filename, username)

	result, err := s.process(ctx, filename, r)

	record := &store.UploadRecord{
		ID:          uuid.New(),
		Username:    username,
		Filename:    filename,
		Status:      store.UploadStatusSuccess,
		ProcessedAt: s.now(),
	}
	if err != nil {
		record.Status = store.UploadStatusFailure
	} else {
		record.RowsProcessed = result.RowsProcessed
		record.RowsTotal = result.RowsTotal
		result.UploadID = record.ID
	}
	if histErr := s.storage.UploadHistory.Insert(ctx, record); histErr != nil {
		s.appLogger.Warn(component, "Failed to record upload history: file=%s err=%v", filename, histErr)
	}

	if err != nil {
		s.appLogger.Error(component, "Upload processing failed: file=%s err=%v", filename, err)
		return nil, err
	}

	s.appLogger.Info(component, "Upload processed: file=%s batchRows=%d totalRows=%d", filename, result.RowsProcessed, result.RowsTotal)
	return result, nil
}

func (s *Service) process(ctx context.Context, filename string, r io.Reader) (*ProcessResult, error) {
	df, err := ReadUpload(filename, r, s.csvWindows1252)
	if err != nil {
		return nil, err
	}

	extracted, err := ExtractColumns(df)
	if err != nil {
		return nil, err
	}

	organized, err := Organize(extracted, s.now())
	if err != nil {
		return nil, err
	}
	batch := ToTable(organized)

	existing, err := s.storage.Rows.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading existing dataset: %w", err)
	}

	merged, err := Merge(batch, existing)
	if err != nil {
		return nil, err
	}

	if err := s.storage.Rows.WriteAll(ctx, merged); err != nil {
		return nil, fmt.Errorf("persisting merged dataset: %w", err)
	}

	return &ProcessResult{
		RowsProcessed: batch.Nrow(),
		RowsTotal:     merged.Nrow(),
		Merged:        merged,
	}, nil
}

// Empenhos returns the persisted dataset for browsing, served through the
// short-lived read cache.
func (s *Service) Empenhos(ctx context.Context) (sheet.Table, error) {
	return s.cache.get(s.now(), func() (sheet.Table, error) {
		return s.storage.Rows.ReadAll(ctx)
	})
}

// SaveAnnotation updates the annotation cell of the record with the given
// commitment number. The scan always reads fresh data, not the cache, so
// an edit lands on the row the store currently holds.
func (s *Service) SaveAnnotation(ctx context.Context, empenho, text string) error {
	const component = "Organizer"

	t, err := s.storage.Rows.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	keyIdx, ok := sheet.FindColumn(t.Header, keyColumnTokens...)
	if !ok {
		return &KeyColumnNotFoundError{Side: SideExisting}
	}
	annotationIdx, ok := sheet.FindColumn(t.Header, annotationColumnTokens...)
	if !ok {
		return fmt.Errorf("annotation column not found in persisted dataset")
	}

	for i := range t.Rows {
		if t.CellString(i, keyIdx) == empenho {
			// Sheet coordinates: header is row 1, data starts at row 2.
			if err := s.storage.Rows.UpdateCell(ctx, i+2, annotationIdx+1, text); err != nil {
				return fmt.Errorf("saving annotation: %w", err)
			}
			s.appLogger.Info(component, "Annotation saved: empenho=%s", empenho)
			return nil
		}
	}

	return fmt.Errorf("empenho %q not found", empenho)
}

// ExportCurrent renders the persisted dataset as a downloadable workbook.
func (s *Service) ExportCurrent(ctx context.Context) ([]byte, error) {
	t, err := s.Empenhos(ctx)
	if err != nil {
		return nil, err
	}
	return ExportXLSX(t)
}

// History returns the most recent upload runs.
func (s *Service) History(ctx context.Context, limit int) ([]store.UploadRecord, error) {
	return s.storage.UploadHistory.GetLatest(ctx, limit)
}
