package server

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/epigraph-tools/lapis/dataset"
	"github.com/epigraph-tools/lapis/engine"
	"github.com/epigraph-tools/lapis/render"
	"github.com/epigraph-tools/lapis/search"
)

// ============================================================================
// API HANDLERS
// ============================================================================
// Filter parameters shared by /api/records and /api/export:
//   q           free-text search across all columns
//   f           exact field filter, repeatable, "field:value"
//   where       boolean expression (search package)
//   sort        numeric column to order by, descending
//   limit       max rows returned (records only)
//   offset      rows skipped (records only)
//
// Filters that reference absent columns are identity, and empty results are
// plain 200 responses with count 0. The only client error on the query path
// is a malformed where-expression.
// ============================================================================

// filteredView resolves the shared filter parameters against the current
// dataset snapshot.
func (s *Server) filteredView(c echo.Context, st State) (engine.View, error) {
	fields := make(map[string]string)
	for _, f := range c.QueryParams()["f"] {
		field, value, found := strings.Cut(f, ":")
		if !found || field == "" {
			continue
		}
		fields[field] = value
	}

	v := engine.ApplyFilters(st.Dataset, c.QueryParam("q"), fields)

	if expr := c.QueryParam("where"); expr != "" {
		ev, err := search.New(expr)
		if err != nil {
			return nil, err
		}
		v = ev.Filter(v)
	}

	if field := c.QueryParam("sort"); field != "" {
		v = engine.SortByNumericDesc(v, field)
	}

	return v, nil
}

func paginationParams(c echo.Context, total int) (limit, offset int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = total
	}
	offset, err = strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// GetSummary returns the overview metrics for the loaded dataset.
func (s *Server) GetSummary(c echo.Context) error {
	st := s.session.Snapshot()
	summary := engine.SummaryMetrics(st.Dataset)

	maleCount := engine.CountWhere(st.Dataset, engine.ColGender, "Male")
	femaleCount := engine.CountWhere(st.Dataset, engine.ColGender, "Female")

	recent := engine.Head(engine.SortByNumericDesc(st.Dataset, engine.ColYear), 10)

	return c.JSON(http.StatusOK, map[string]any{
		"metrics": summary.Map(),
		"cards":   render.Metrics(summary),
		"male":    maleCount,
		"female":  femaleCount,
		"recent":  render.Table("Recent Inscriptions", recent, st.Profile),
		"source":  st.Source,
		"loaded":  st.LoadedAt,
		"notice":  st.Notice,
	})
}

// GetRecords returns the filtered result table.
func (s *Server) GetRecords(c echo.Context) error {
	st := s.session.Snapshot()
	v, err := s.filteredView(c, st)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	total := v.Len()
	limit, offset := paginationParams(c, total)

	page := slice(v, offset, limit)

	return c.JSON(http.StatusOK, map[string]any{
		"table":  render.Table("Search Results", page, st.Profile),
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// GetOptions returns the dropdown values for a field: the All sentinel plus
// the sorted distinct values. Without a field parameter it returns options
// for every filterable column in the profile.
func (s *Server) GetOptions(c echo.Context) error {
	st := s.session.Snapshot()

	if field := c.QueryParam("field"); field != "" {
		return c.JSON(http.StatusOK, map[string]any{
			"field":   field,
			"options": engine.FilterOptions(st.Dataset, field),
		})
	}

	options := make(map[string][]string)
	for _, col := range st.Profile.Filterable() {
		options[col.Key] = engine.FilterOptions(st.Dataset, col.Key)
	}
	return c.JSON(http.StatusOK, map[string]any{"options": options})
}

// GetStats returns categorical breakdowns. With a field parameter only that
// field is aggregated; otherwise every breakdown column from the profile.
func (s *Server) GetStats(c echo.Context) error {
	st := s.session.Snapshot()

	type stat struct {
		Field   string              `json:"field"`
		Label   string              `json:"label"`
		Buckets []engine.Bucket     `json:"buckets"`
		Chart   *render.ChartConfig `json:"chart,omitempty"`
	}

	build := func(field, label string) stat {
		buckets := engine.CategoricalAggregate(st.Dataset, field)
		return stat{
			Field:   field,
			Label:   label,
			Buckets: buckets,
			Chart:   s.charts.Breakdown(label, buckets),
		}
	}

	if field := c.QueryParam("field"); field != "" {
		label := field
		if col, ok := st.Profile.Column(field); ok {
			label = col.DisplayName
		}
		return c.JSON(http.StatusOK, build(field, label))
	}

	stats := make([]stat, 0)
	for _, col := range st.Profile.Breakdowns() {
		stats = append(stats, build(col.Key, col.DisplayName))
	}
	return c.JSON(http.StatusOK, map[string]any{"stats": stats})
}

// GetTimeline returns the inscriptions-per-year series, its chart, and the
// covered year span.
func (s *Server) GetTimeline(c echo.Context) error {
	st := s.session.Snapshot()
	series := engine.TimeSeriesCounts(st.Dataset, engine.ColYear)

	span := engine.NotAvailable
	if n, ok := engine.SummaryMetrics(st.Dataset).YearSpan(); ok {
		span = strconv.Itoa(n)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"series": series,
		"span":   span,
		"chart":  s.charts.Timeline("Inscriptions Over Time", series),
	})
}

// GetExport streams the filtered view as a CSV download. It accepts the same
// filter parameters as /api/records.
func (s *Server) GetExport(c echo.Context) error {
	st := s.session.Snapshot()
	v, err := s.filteredView(c, st)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	out, err := dataset.Export(v)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="filtered_inscriptions.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", out)
}

// GetProfile returns the column profile of the loaded dataset.
func (s *Server) GetProfile(c echo.Context) error {
	st := s.session.Snapshot()
	return c.JSON(http.StatusOK, st.Profile)
}

// PostUpload replaces the session dataset with an uploaded CSV file. An
// unparsable file is the one hard failure on this path; the previous dataset
// stays loaded in that case.
func (s *Server) PostUpload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing form file \"file\"")
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("failed to open upload: %v", err))
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("failed to read upload: %v", err))
	}

	ds, err := dataset.Parse(data)
	if err != nil {
		s.log.Warn("upload rejected", zap.String("file", fh.Filename), zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unparsable CSV: %v", err))
	}

	s.session.Replace(ds, "upload:"+fh.Filename)
	s.log.Info("dataset replaced by upload",
		zap.String("file", fh.Filename),
		zap.Int("rows", ds.Len()),
		zap.Int("columns", len(ds.Columns())))

	return c.JSON(http.StatusOK, map[string]any{
		"rows":    ds.Len(),
		"columns": ds.Columns(),
		"source":  "upload:" + fh.Filename,
	})
}

// slice pages a view without copying rows.
func slice(v engine.View, offset, limit int) engine.View {
	end := offset + limit
	if end > v.Len() {
		end = v.Len()
	}
	if offset >= end {
		return engine.Head(v, 0)
	}
	return engine.Window(v, offset, end)
}
