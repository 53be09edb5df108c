package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/async"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/export"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/extract"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/pipeline"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/registry"
	"github.com/joseph-ayodele/bloodwork-analyzer/internal/repository"
)

// inlineQueue processes jobs synchronously so handler tests can observe
// final report state without polling.
type inlineQueue struct {
	proc *pipeline.Processor
}

func (q inlineQueue) Enqueue(ctx context.Context, job async.Job) error {
	return q.proc.ProcessReport(ctx, job.ReportID)
}

func (q inlineQueue) Shutdown(context.Context) {}

func newTestServer(t *testing.T) (*httptest.Server, *repository.MemoryStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg, err := registry.New(logger)
	require.NoError(t, err)
	store := repository.NewMemoryStore()
	extractor := extract.New(reg, extract.WithLogger(logger))
	proc := pipeline.NewProcessor(logger, reg, extractor, store, store, 3)
	srv := NewServer(logger, reg, extractor, store, store,
		export.NewService(store, store, logger), inlineQueue{proc: proc})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, store
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestExtractEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/v1/extract", map[string]string{
		"text": "Vitamin D: 22 ng/mL\nGlucose: 95 mg/dL\n",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Values     map[string]float64 `json:"values"`
		Confidence map[string]float64 `json:"confidence"`
		Findings   []struct {
			Key    string `json:"nutrient"`
			Status string `json:"status"`
		} `json:"findings"`
	}
	decodeBody(t, resp, &body)

	assert.Equal(t, 22.0, body.Values["vitamin_d"])
	assert.Equal(t, 95.0, body.Values["glucose"])
	assert.InDelta(t, 0.9, body.Confidence["vitamin_d"], 1e-9)
	require.Len(t, body.Findings, 2)
	assert.Equal(t, "glucose", body.Findings[0].Key)
	assert.Equal(t, string(constants.ValueStatusLow), body.Findings[1].Status)
}

func TestExtractEndpoint_BadRequests(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/extract", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/v1/extract", map[string]string{"text": ""})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDiagnoseEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/v1/diagnose", map[string]string{
		"text": "Patient visited the clinic for a routine blood test and lab report review today.",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Extracted int `json:"extracted"`
		Diagnosis struct {
			TextQuality     string   `json:"text_quality"`
			PotentialIssues []string `json:"potential_issues"`
		} `json:"diagnosis"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, 0, body.Extracted)
	assert.Equal(t, string(constants.TextQualityInsufficient), body.Diagnosis.TextQuality)
	assert.NotEmpty(t, body.Diagnosis.PotentialIssues)
}

func TestNutrientsEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/nutrients")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body []struct {
		Key  string `json:"key"`
		Unit string `json:"unit"`
	}
	decodeBody(t, resp, &body)
	require.GreaterOrEqual(t, len(body), 40)

	seen := make(map[string]string, len(body))
	for _, n := range body {
		seen[n.Key] = n.Unit
	}
	assert.Equal(t, "ng/mL", seen["vitamin_d"])
	assert.Equal(t, "g/dL", seen["hemoglobin"])
}

func TestReportLifecycle(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/v1/reports", map[string]any{
		"text":     "Vitamin D: 22 ng/mL\nHemoglobin: 13.5 g/dL\nGlucose: 95 mg/dL\nFerritin: 150 ng/mL\n",
		"filename": "panel.txt",
	})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var created struct {
		ReportID  uuid.UUID `json:"report_id"`
		Duplicate bool      `json:"duplicate"`
		Queued    bool      `json:"queued"`
	}
	decodeBody(t, resp, &created)
	assert.False(t, created.Duplicate)
	assert.True(t, created.Queued)
	require.NotEqual(t, uuid.Nil, created.ReportID)

	// Same content again: deduplicated, not reprocessed.
	resp = postJSON(t, ts.URL+"/v1/reports", map[string]any{
		"text":     "Vitamin D: 22 ng/mL\nHemoglobin: 13.5 g/dL\nGlucose: 95 mg/dL\nFerritin: 150 ng/mL\n",
		"filename": "copy.txt",
	})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	var dup struct {
		ReportID  uuid.UUID `json:"report_id"`
		Duplicate bool      `json:"duplicate"`
		Queued    bool      `json:"queued"`
	}
	decodeBody(t, resp, &dup)
	assert.True(t, dup.Duplicate)
	assert.False(t, dup.Queued)
	assert.Equal(t, created.ReportID, dup.ReportID)

	resp, err := http.Get(ts.URL + "/v1/reports/" + created.ReportID.String())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var detail struct {
		Report struct {
			Status   string `json:"status"`
			Filename string `json:"filename"`
		} `json:"report"`
		Results []struct {
			NutrientKey string  `json:"nutrient_key"`
			Value       float64 `json:"value"`
		} `json:"results"`
	}
	decodeBody(t, resp, &detail)
	assert.Equal(t, string(constants.ReportStatusExtracted), detail.Report.Status)
	assert.Equal(t, "panel.txt", detail.Report.Filename)
	require.Len(t, detail.Results, 4)
	assert.Equal(t, "ferritin", detail.Results[0].NutrientKey)

	resp, err = http.Get(ts.URL + "/v1/reports?limit=10")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []struct {
		ID      uuid.UUID `json:"id"`
		RawText string    `json:"raw_text"`
	}
	decodeBody(t, resp, &listed)
	require.Len(t, listed, 1)
	assert.Empty(t, listed[0].RawText)
}

func TestGetReport_Errors(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/reports/not-a-uuid")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/v1/reports/" + uuid.NewString())
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExportEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/v1/reports", map[string]any{
		"text": "Vitamin D: 22 ng/mL\nGlucose: 95 mg/dL\nHemoglobin: 13.5 g/dL\n",
	})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	var created struct {
		ReportID uuid.UUID `json:"report_id"`
	}
	decodeBody(t, resp, &created)

	resp, err := http.Get(ts.URL + "/v1/reports/" + created.ReportID.String() + "/export")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), created.ReportID.String())

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	// XLSX files are zip archives.
	require.Greater(t, len(body), 4)
	assert.Equal(t, []byte{'P', 'K'}, body[:2])
}
