package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	run "MixLab/internal/run"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func upload(t *testing.T, h *Handler, content *bytes.Buffer) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "runs.xlsx")
	require.NoError(t, err)
	_, err = fw.Write(content.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/runs/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Runs(rec, req)
	return rec
}

func TestImport_CreatesRunsAndSkipsBadRows(t *testing.T) {
	st := run.NewMemoryStore()
	h := &Handler{Store: st}

	buf := workbook(t, [][]interface{}{
		{"projectName", "projectSite", "mixId", "castingDate", "fck", "cementGrade", "exposure"},
		{"Plant A", "Chennai", "PA-1", "2026-09-01", 25, "OPC 43", "moderate"},
		{"Plant B", "Chennai", "PB-1", "2026-09-02", "not-a-number", "OPC 43", "severe"},
		{"Plant C", "Chennai", "PC-1", "2026-09-03", 40, "OPC 53", "extreme"},
	})

	rec := upload(t, h, buf)
	require.Equal(t, http.StatusOK, rec.Code)

	var out ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 2, out.Count)
	require.Len(t, out.Runs, 2)
	assert.Equal(t, "Plant A", out.Runs[0].ProjectName)
	assert.Equal(t, "extreme", out.Runs[1].Exposure)
	assert.Equal(t, 2, st.Count())
}

// flakyStore fails every Append after the first, so a mid-import
// storage failure can be simulated.
type flakyStore struct {
	*run.MemoryStore
	appends int
}

func (s *flakyStore) Append(ctx context.Context, r run.Run) (run.Run, error) {
	s.appends++
	if s.appends > 1 {
		return run.Run{}, errors.New("connection reset")
	}
	return s.MemoryStore.Append(ctx, r)
}

// A storage failure mid-import still reports the runs committed before
// it, alongside the error.
func TestImport_StorageFailureReportsPartialResult(t *testing.T) {
	st := &flakyStore{MemoryStore: run.NewMemoryStore()}
	h := &Handler{Store: st}

	buf := workbook(t, [][]interface{}{
		{"projectName", "projectSite", "mixId", "castingDate", "fck", "cementGrade", "exposure"},
		{"Plant A", "Chennai", "PA-1", "2026-09-01", 25, "OPC 43", "moderate"},
		{"Plant B", "Chennai", "PB-1", "2026-09-02", 30, "OPC 43", "severe"},
	})

	rec := upload(t, h, buf)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var out ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Count)
	require.Len(t, out.Runs, 1)
	assert.Equal(t, "Plant A", out.Runs[0].ProjectName)
	assert.NotEmpty(t, out.Error)
	assert.Equal(t, 1, st.MemoryStore.Count(), "the first row stays committed")
}

func TestImport_EmptySheet(t *testing.T) {
	h := &Handler{Store: run.NewMemoryStore()}
	buf := workbook(t, [][]interface{}{
		{"projectName", "projectSite", "mixId", "castingDate", "fck", "cementGrade", "exposure"},
	})
	rec := upload(t, h, buf)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImport_FileMissing(t *testing.T) {
	h := &Handler{Store: run.NewMemoryStore()}
	req := httptest.NewRequest(http.MethodPost, "/api/runs/import", nil)
	rec := httptest.NewRecorder()
	h.Runs(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
