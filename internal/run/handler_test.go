package run

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exposure "MixLab/internal/exposure"
)

func TestNewRun_Defaults(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC)
	rec, err := NewRun(CreateRequest{Fck: json.RawMessage(`25`)}, now)
	require.NoError(t, err)

	assert.Equal(t, "Untitled Project", rec.ProjectName)
	assert.Equal(t, "Not specified", rec.ProjectSite)
	assert.Equal(t, "OPC 43", rec.CementGrade)
	assert.Equal(t, "2026-08-30", rec.CastingDate)
	assert.Equal(t, "MIX-2026-08-30", rec.MixID)
	assert.Equal(t, exposure.Mild, rec.Exposure)
	assert.Equal(t, now, rec.Timestamp)
	assert.Equal(t, 25.0, rec.Fck)
}

func TestNewRun_ProvidedMetadataKept(t *testing.T) {
	now := time.Now()
	rec, err := NewRun(CreateRequest{
		Fck:         json.RawMessage(`30`),
		Exposure:    exposure.Severe,
		ProjectName: "Metro Depot",
		ProjectSite: "Pune",
		MixID:       "MD-7",
		CastingDate: "2026-09-15",
		CementGrade: "OPC 53",
	}, now)
	require.NoError(t, err)

	assert.Equal(t, "Metro Depot", rec.ProjectName)
	assert.Equal(t, "Pune", rec.ProjectSite)
	assert.Equal(t, "MD-7", rec.MixID)
	assert.Equal(t, "2026-09-15", rec.CastingDate)
	assert.Equal(t, "OPC 53", rec.CementGrade)
	assert.Equal(t, exposure.Severe, rec.Exposure)
}

// An unrecognized exposure key is recorded as the resolved class, so
// the fallback is visible in the run log.
func TestNewRun_UnknownExposureRecordedAsMild(t *testing.T) {
	rec, err := NewRun(CreateRequest{
		Fck:      json.RawMessage(`30`),
		Exposure: "unknownXYZ",
	}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, exposure.Mild, rec.Exposure)
	assert.True(t, rec.Design.Checks.GradeOK, "30 >= mild minimum of 20")
}

func TestNewRun_InvalidStrength(t *testing.T) {
	for _, raw := range []string{``, `null`, `0`, `"0"`, `-1`, `"abc"`} {
		_, err := NewRun(CreateRequest{Fck: json.RawMessage(raw)}, time.Now())
		assert.Error(t, err, "fck=%s", raw)
	}
}

func TestCreateHandler(t *testing.T) {
	st := NewMemoryStore()
	h := &Handler{Store: st}

	body := `{"fck": 20, "exposure": "moderate", "projectName": "Bridge A"}`
	req := httptest.NewRequest(http.MethodPost, "/api/runs", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var saved Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, 1, saved.ID)
	assert.Equal(t, "Bridge A", saved.ProjectName)
	assert.Equal(t, exposure.Moderate, saved.Exposure)
	assert.InDelta(t, 26.44, saved.Design.TargetMeanStrength, 1e-9)
	assert.Equal(t, 1, st.Count())
}

func TestCreateHandler_InvalidStrength(t *testing.T) {
	st := NewMemoryStore()
	h := &Handler{Store: st}

	req := httptest.NewRequest(http.MethodPost, "/api/runs", strings.NewReader(`{"fck": 0}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, st.Count(), "no run recorded on failure")
}

func TestListHandler(t *testing.T) {
	st := NewMemoryStore()
	h := &Handler{Store: st}
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second"} {
		_, err := st.Append(context.Background(),
			Run{ProjectName: name, Timestamp: base.Add(time.Duration(i) * time.Minute)})
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var runs []Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 2)
	assert.Equal(t, "second", runs[0].ProjectName)
	assert.Equal(t, "first", runs[1].ProjectName)
}

func TestListHandler_Empty(t *testing.T) {
	h := &Handler{Store: NewMemoryStore()}
	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}
