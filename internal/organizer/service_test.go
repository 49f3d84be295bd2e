package organizer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/farxc/listagem-empenhos/internal/logger"
	"github.com/farxc/listagem-empenhos/internal/sheet"
	"github.com/farxc/listagem-empenhos/internal/store"
)

type fakeRows struct {
	table  sheet.Table
	writes int
}

func (f *fakeRows) ReadAll(context.Context) (sheet.Table, error) {
	return f.table, nil
}

func (f *fakeRows) WriteAll(_ context.Context, t sheet.Table) error {
	f.table = t
	f.writes++
	return nil
}

func (f *fakeRows) UpdateCell(_ context.Context, rowNumber, colNumber int, value any) error {
	f.table.Rows[rowNumber-2][colNumber-1] = value
	return nil
}

type fakeHistory struct {
	records []store.UploadRecord
}

func (f *fakeHistory) Insert(_ context.Context, r *store.UploadRecord) error {
	f.records = append(f.records, *r)
	return nil
}

func (f *fakeHistory) GetLatest(_ context.Context, limit int) ([]store.UploadRecord, error) {
	if limit > len(f.records) {
		limit = len(f.records)
	}
	return f.records[:limit], nil
}

func newTestService() (*Service, *fakeRows, *fakeHistory) {
	rows := &fakeRows{}
	hist := &fakeHistory{}
	storage := &store.Storage{Rows: rows, UploadHistory: hist}
	return NewService(storage, logger.New(logger.LevelError), false), rows, hist
}

func findHeader(t *testing.T, table sheet.Table, name string) int {
	t.Helper()
	for i, h := range table.Header {
		if h == name {
			return i
		}
	}
	t.Fatalf("column %q not in %v", name, table.Header)
	return -1
}

func TestProcessUpload_EndToEnd(t *testing.T) {
	t.Parallel()

	svc, rows, hist := newTestService()
	ctx := context.Background()

	first := buildUploadCSV(uploadRow{
		code: "01.02.05", date: "15/01/2024", doc: "D1",
		supplierCode: "111", supplierName: "ACME", saldo: "100.00", empenho: "100",
	})
	result, err := svc.ProcessUpload(ctx, "listagem.csv", strings.NewReader(first), "maria")
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if result.RowsProcessed != 1 || result.RowsTotal != 1 {
		t.Fatalf("first counts = (%d, %d)", result.RowsProcessed, result.RowsTotal)
	}

	// A user annotates the stored record between uploads.
	obsIdx := findHeader(t, rows.table, AnnotationColumn)
	rows.table.Rows[0][obsIdx] = "urgent"

	second := buildUploadCSV(
		uploadRow{code: "01.02.05", date: "15/01/2024", doc: "D1", supplierCode: "111", supplierName: "ACME", saldo: "120.00", empenho: "100"},
		uploadRow{code: "01.02.10", date: "20/01/2024", doc: "D2", supplierCode: "222", supplierName: "Beta", saldo: "50.00", empenho: "200"},
	)
	result, err = svc.ProcessUpload(ctx, "listagem.csv", strings.NewReader(second), "maria")
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if result.RowsProcessed != 2 || result.RowsTotal != 2 {
		t.Fatalf("second counts = (%d, %d)", result.RowsProcessed, result.RowsTotal)
	}

	keyIdx := findHeader(t, rows.table, "Nº Empenho")
	if got := rows.table.CellString(0, keyIdx); got != "100" {
		t.Fatalf("row 0 key = %q", got)
	}
	if got := rows.table.CellString(0, obsIdx); got != "urgent" {
		t.Fatalf("annotation = %q, want preserved across re-upload", got)
	}
	if got := rows.table.CellString(1, obsIdx); got != "" {
		t.Fatalf("new record annotation = %q", got)
	}

	if len(hist.records) != 2 {
		t.Fatalf("history records = %d", len(hist.records))
	}
	for _, r := range hist.records {
		if r.Status != store.UploadStatusSuccess || r.Username != "maria" {
			t.Fatalf("unexpected history record: %+v", r)
		}
	}
	if hist.records[0].ID == hist.records[1].ID {
		t.Fatalf("upload IDs must be unique")
	}
}

func TestProcessUpload_StructuralFailureWritesNothing(t *testing.T) {
	t.Parallel()

	svc, rows, hist := newTestService()

	narrow := "a,b,c\n1,2,3\n"
	_, err := svc.ProcessUpload(context.Background(), "u.csv", strings.NewReader(narrow), "maria")

	var insufficient *InsufficientColumnsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientColumnsError, got %v", err)
	}
	if rows.writes != 0 {
		t.Fatalf("store written %d times on structural failure", rows.writes)
	}
	if len(hist.records) != 1 || hist.records[0].Status != store.UploadStatusFailure {
		t.Fatalf("failed run must be recorded: %+v", hist.records)
	}
}

func TestSaveAnnotation(t *testing.T) {
	t.Parallel()

	svc, rows, _ := newTestService()
	rows.table = sheet.Table{
		Header: []string{"Nº Empenho", AnnotationColumn},
		Rows:   [][]any{{"100", ""}, {"200", "old"}},
	}

	if err := svc.SaveAnnotation(context.Background(), "200", "nova"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := rows.table.CellString(1, 1); got != "nova" {
		t.Fatalf("annotation = %q", got)
	}

	if err := svc.SaveAnnotation(context.Background(), "999", "x"); err == nil {
		t.Fatalf("expected error for unknown empenho")
	}
}

func TestEmpenhos_CachedReads(t *testing.T) {
	t.Parallel()

	svc, rows, _ := newTestService()
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	rows.table = sheet.Table{Header: []string{"Nº Empenho"}, Rows: [][]any{{"100"}}}

	got, err := svc.Empenhos(context.Background())
	if err != nil || got.Nrow() != 1 {
		t.Fatalf("first read: %v rows=%d", err, got.Nrow())
	}

	// A write inside the TTL window is not observed: the cache is
	// invalidated by time only.
	rows.table.Rows = append(rows.table.Rows, []any{"200"})
	now = now.Add(30 * time.Second)
	got, _ = svc.Empenhos(context.Background())
	if got.Nrow() != 1 {
		t.Fatalf("stale window read rows = %d, want 1", got.Nrow())
	}

	now = now.Add(readCacheTTL)
	got, _ = svc.Empenhos(context.Background())
	if got.Nrow() != 2 {
		t.Fatalf("post-TTL read rows = %d, want 2", got.Nrow())
	}
}
