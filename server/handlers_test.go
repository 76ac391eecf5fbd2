package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/epigraph-tools/lapis/dataset"
	"github.com/epigraph-tools/lapis/render"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	sess := NewSession(dataset.Sample(), "sample")
	return New(sess, render.Plotly{}, "Test Dashboard", zap.NewNop())
}

func doGet(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetSummary(t *testing.T) {
	s := newTestServer(t)
	rec := doGet(t, s, "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	metrics := body["metrics"].(map[string]any)
	assert.Equal(t, "10", metrics["total_records"])
	assert.Equal(t, "10", metrics["unique_people"])
	assert.Equal(t, "80", metrics["year_min"])
	assert.Equal(t, "200", metrics["year_max"])
	assert.Equal(t, "Male", metrics["common_gender"])

	assert.EqualValues(t, 5, body["male"])
	assert.EqualValues(t, 5, body["female"])
	assert.Equal(t, "sample", body["source"])

	// Recent table is the ten newest inscriptions, newest first.
	recent := body["recent"].(map[string]any)
	rows := recent["rows"].([]any)
	require.NotEmpty(t, rows)
	first := rows[0].([]any)
	assert.Equal(t, "4", first[0]) // year 200
}

func TestGetSummaryDegradesWithoutColumns(t *testing.T) {
	ds, err := dataset.Parse([]byte("text\nDis Manibus\n"))
	require.NoError(t, err)
	s := New(NewSession(ds, "upload:min.csv"), render.Plotly{}, "Test", zap.NewNop())

	rec := doGet(t, s, "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	metrics := decode(t, rec)["metrics"].(map[string]any)
	assert.Equal(t, "1", metrics["total_records"])
	assert.Equal(t, "not available", metrics["unique_people"])
	assert.Equal(t, "not available", metrics["year_min"])
	assert.Equal(t, "not available", metrics["common_gender"])
}

func TestGetRecordsFiltering(t *testing.T) {
	s := newTestServer(t)

	rec := doGet(t, s, "/api/records?q=julia")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 1, body["total"])

	rec = doGet(t, s, "/api/records?f=gender:Female&f=age_category:Adult")
	body = decode(t, rec)
	assert.EqualValues(t, 4, body["total"])

	// A filter on an absent column is identity, not an error.
	rec = doGet(t, s, "/api/records?f=location:Rome")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 10, decode(t, rec)["total"])

	// Empty result is a plain 200.
	rec = doGet(t, s, "/api/records?q=nonesuch")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decode(t, rec)["total"])
}

func TestGetRecordsPagination(t *testing.T) {
	s := newTestServer(t)

	rec := doGet(t, s, "/api/records?limit=3&offset=2")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 10, body["total"])

	table := body["table"].(map[string]any)
	rows := table["rows"].([]any)
	require.Len(t, rows, 3)
	assert.Equal(t, "3", rows[0].([]any)[0])

	// Offset past the end pages to empty, still 200.
	rec = doGet(t, s, "/api/records?limit=5&offset=50")
	body = decode(t, rec)
	assert.Empty(t, body["table"].(map[string]any)["rows"])
}

func TestGetRecordsWhereExpression(t *testing.T) {
	s := newTestServer(t)

	rec := doGet(t, s, "/api/records?where="+
		"year+%3E+150+and+gender+%3D%3D+%22Female%22")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, decode(t, rec)["total"]) // years 200, 180, 160

	// Malformed expression is the one 400 on the query path.
	rec = doGet(t, s, "/api/records?where=year+%3E%3E+bogus")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOptions(t *testing.T) {
	s := newTestServer(t)

	rec := doGet(t, s, "/api/options?field=gender")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, []any{"All", "Female", "Male"}, body["options"])

	// Absent field still yields the sentinel-only dropdown.
	rec = doGet(t, s, "/api/options?field=location")
	assert.Equal(t, []any{"All"}, decode(t, rec)["options"])

	// No field: one entry per filterable column.
	rec = doGet(t, s, "/api/options")
	options := decode(t, rec)["options"].(map[string]any)
	assert.Contains(t, options, "gender")
	assert.Contains(t, options, "inscription_type")
	assert.NotContains(t, options, "name")
}

func TestGetStats(t *testing.T) {
	s := newTestServer(t)

	rec := doGet(t, s, "/api/stats?field=inscription_type")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Inscription Type", body["label"])

	buckets := body["buckets"].([]any)
	require.Len(t, buckets, 5)
	top := buckets[0].(map[string]any)
	assert.Equal(t, "Funerary", top["value"])
	assert.EqualValues(t, 4, top["count"])
	assert.EqualValues(t, 40, top["percent"])
	assert.NotNil(t, body["chart"])

	// Absent field degrades: empty buckets, no chart, still 200.
	rec = doGet(t, s, "/api/stats?field=location")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Empty(t, body["buckets"])
	assert.Nil(t, body["chart"])

	rec = doGet(t, s, "/api/stats")
	stats := decode(t, rec)["stats"].([]any)
	assert.NotEmpty(t, stats)
}

func TestGetTimeline(t *testing.T) {
	s := newTestServer(t)
	rec := doGet(t, s, "/api/timeline")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	series := body["series"].([]any)
	require.Len(t, series, 10)
	first := series[0].(map[string]any)
	assert.EqualValues(t, 80, first["year"])
	assert.Equal(t, "120", body["span"])
}

func TestGetExport(t *testing.T) {
	s := newTestServer(t)

	rec := doGet(t, s, "/api/export?f=gender:Male")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "filtered_inscriptions.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 6) // header + 5 Male rows
	assert.True(t, strings.HasPrefix(lines[0], "person_id,"))
}

func TestGetProfile(t *testing.T) {
	s := newTestServer(t)
	rec := doGet(t, s, "/api/profile")
	require.Equal(t, http.StatusOK, rec.Code)

	var profile struct {
		RowCount int `json:"rowCount"`
		Columns  []struct {
			Key  string `json:"key"`
			Kind string `json:"kind"`
		} `json:"columns"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, 10, profile.RowCount)
	assert.Len(t, profile.Columns, 7)
}

func TestPostUploadReplacesDataset(t *testing.T) {
	s := newTestServer(t)

	rec := postUpload(t, s, "new.csv", "person_id,name\n100,Seneca\n101,Cicero\n")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 2, body["rows"])
	assert.Equal(t, "upload:new.csv", body["source"])

	rec = doGet(t, s, "/api/records")
	assert.EqualValues(t, 2, decode(t, rec)["total"])
}

func TestPostUploadRejectsUnparsableKeepingOldData(t *testing.T) {
	s := newTestServer(t)

	rec := postUpload(t, s, "bad.csv", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(t, s, "/api/records")
	assert.EqualValues(t, 10, decode(t, rec)["total"])
}

func TestPostUploadMissingFile(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPagesRender(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/", "/search", "/statistics", "/about", "/static/app.js"} {
		rec := doGet(t, s, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotEmpty(t, rec.Body.String(), path)
	}
}

func postUpload(t *testing.T, s *Server, filename, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}
