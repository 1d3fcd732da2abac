package summary

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoogleCloudPlatform/table-summarizer/internal/table"
)

// newTestTable builds the canonical fixture:
// A = [1, 2, 3, null], B = ["x", "y", "x", "z"].
func newTestTable(t *testing.T) *table.Table {
	t.Helper()
	a, err := table.NewColumn("A", table.Int, []any{int64(1), int64(2), int64(3), nil})
	require.NoError(t, err)
	b, err := table.NewColumn("B", table.String, []any{"x", "y", "x", "z"})
	require.NoError(t, err)
	tbl, err := table.New(a, b)
	require.NoError(t, err)
	return tbl
}

func rowFor(t *testing.T, report *Report, column string) ColumnSummary {
	t.Helper()
	for _, row := range report.Rows {
		if row.Column == column {
			return row
		}
	}
	t.Fatalf("no report row for column %q", column)
	return ColumnSummary{}
}

func TestSummarizeBasic(t *testing.T) {
	tbl := newTestTable(t)

	report, err := Summarize(tbl, DefaultParams())
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)

	// Sorted by null percentage descending: A (25%) before B (0%).
	assert.Equal(t, "A", report.Rows[0].Column)
	assert.Equal(t, "B", report.Rows[1].Column)

	a := rowFor(t, report, "A")
	assert.Equal(t, "int64", a.DataType)
	assert.Equal(t, 1, a.NullCount)
	assert.Equal(t, 25.0, a.NullPercent)
	assert.Equal(t, 3, a.UniqueValues)
	assert.Equal(t, "1, 2, 3", a.SampleValues)
	assert.Nil(t, a.MemoryBytes)
	assert.Nil(t, a.Min)

	b := rowFor(t, report, "B")
	assert.Equal(t, "string", b.DataType)
	assert.Equal(t, 0, b.NullCount)
	assert.Equal(t, 0.0, b.NullPercent)
	assert.Equal(t, 3, b.UniqueValues)
	assert.Equal(t, "x, y, z", b.SampleValues)

	// The duplicate-row count is a table-level metric.
	assert.Equal(t, a.DuplicateRows, b.DuplicateRows)

	assert.Equal(t,
		[]string{"Column", "Data Type", "Null Count", "Null Percent", "Duplicate Rows", "Unique Values", "Sample Values"},
		report.Header())
}

func TestSummarizeNullPercentRounding(t *testing.T) {
	a, err := table.NewColumn("a", table.Int, []any{int64(1), nil, int64(3)})
	require.NoError(t, err)
	tbl, err := table.New(a)
	require.NoError(t, err)

	report, err := Summarize(tbl, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, 33.33, report.Rows[0].NullPercent)
}

func TestSummarizeFullyNullColumn(t *testing.T) {
	a, err := table.NewColumn("a", table.Float, []any{nil, nil, nil})
	require.NoError(t, err)
	tbl, err := table.New(a)
	require.NoError(t, err)

	params := DefaultParams()
	params.IncludeStats = true
	report, err := Summarize(tbl, params)
	require.NoError(t, err)

	row := report.Rows[0]
	assert.Equal(t, 100.0, row.NullPercent)
	assert.Equal(t, 0, row.UniqueValues)
	assert.Equal(t, SampleAllNull, row.SampleValues)
	assert.Nil(t, row.Min)
	assert.Nil(t, row.Max)
	assert.Nil(t, row.Mean)
}

func TestSummarizeIncludeStats(t *testing.T) {
	tbl := newTestTable(t)

	params := DefaultParams()
	params.IncludeStats = true
	report, err := Summarize(tbl, params)
	require.NoError(t, err)

	a := rowFor(t, report, "A")
	require.NotNil(t, a.Min)
	require.NotNil(t, a.Max)
	require.NotNil(t, a.Mean)
	assert.Equal(t, 1.0, *a.Min)
	assert.Equal(t, 3.0, *a.Max)
	assert.Equal(t, 2.0, *a.Mean)

	b := rowFor(t, report, "B")
	assert.Nil(t, b.Min)
	assert.Nil(t, b.Max)
	assert.Nil(t, b.Mean)

	assert.Equal(t,
		[]string{"Column", "Data Type", "Null Count", "Null Percent", "Duplicate Rows", "Unique Values", "Sample Values", "Min", "Max", "Mean"},
		report.Header())
}

func TestSummarizeStatsRounding(t *testing.T) {
	a, err := table.NewColumn("a", table.Float, []any{1.0, 2.0, 2.0006})
	require.NoError(t, err)
	tbl, err := table.New(a)
	require.NoError(t, err)

	params := DefaultParams()
	params.IncludeStats = true
	report, err := Summarize(tbl, params)
	require.NoError(t, err)

	row := report.Rows[0]
	assert.Equal(t, 1.0, *row.Min)
	assert.Equal(t, 2.001, *row.Max)
	assert.Equal(t, 1.667, *row.Mean)
}

func TestSummarizeIncludeMemoryUsage(t *testing.T) {
	tbl := newTestTable(t)

	params := DefaultParams()
	params.IncludeMemoryUsage = true
	report, err := Summarize(tbl, params)
	require.NoError(t, err)

	for _, row := range report.Rows {
		require.NotNil(t, row.MemoryBytes)
		assert.Positive(t, *row.MemoryBytes)
	}
	assert.Contains(t, report.Header(), "Memory Bytes")
}

func TestSummarizeColumnSelection(t *testing.T) {
	tbl := newTestTable(t)

	params := DefaultParams()
	params.Columns = []string{"B"}
	report, err := Summarize(tbl, params)
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "B", report.Rows[0].Column)
}

func TestSummarizeSampleSize(t *testing.T) {
	tbl := newTestTable(t)

	params := DefaultParams()
	params.SampleSize = 2
	report, err := Summarize(tbl, params)
	require.NoError(t, err)
	assert.Equal(t, "x, y", rowFor(t, report, "B").SampleValues)
}

func TestSampleStringDowngradesPanics(t *testing.T) {
	// A failure while building one column's sample must not abort the whole
	// report; it renders the error sentinel instead.
	assert.Equal(t, SampleError, sampleString(nil, 5))

	col, err := table.NewColumn("ok", table.String, []any{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, "x, y", sampleString(col, 5))
}

func TestSummarizeTieKeepsColumnOrder(t *testing.T) {
	a, err := table.NewColumn("first", table.Int, []any{int64(1)})
	require.NoError(t, err)
	b, err := table.NewColumn("second", table.String, []any{"x"})
	require.NoError(t, err)
	c, err := table.NewColumn("third", table.Float, []any{1.5})
	require.NoError(t, err)
	tbl, err := table.New(a, b, c)
	require.NoError(t, err)

	report, err := Summarize(tbl, DefaultParams())
	require.NoError(t, err)
	require.Len(t, report.Rows, 3)
	assert.Equal(t, "first", report.Rows[0].Column)
	assert.Equal(t, "second", report.Rows[1].Column)
	assert.Equal(t, "third", report.Rows[2].Column)
}

func TestSummarizeIdempotent(t *testing.T) {
	tbl := newTestTable(t)

	params := DefaultParams()
	params.IncludeMemoryUsage = true
	params.IncludeStats = true
	first, err := Summarize(tbl, params)
	require.NoError(t, err)
	second, err := Summarize(tbl, params)
	require.NoError(t, err)
	assert.True(t, reflect.DeepEqual(first, second), "repeated calls must produce identical reports")
}

func TestSummarizeErrors(t *testing.T) {
	tbl := newTestTable(t)
	emptyCol, err := table.NewColumn("a", table.Int, nil)
	require.NoError(t, err)
	emptyTbl, err := table.New(emptyCol)
	require.NoError(t, err)

	t.Run("nil table", func(t *testing.T) {
		_, err := Summarize(nil, DefaultParams())
		var typeErr *ErrInvalidType
		require.ErrorAs(t, err, &typeErr)
	})

	t.Run("empty table", func(t *testing.T) {
		_, err := Summarize(emptyTbl, DefaultParams())
		var valueErr *ErrInvalidValue
		require.ErrorAs(t, err, &valueErr)
	})

	t.Run("missing columns are all reported", func(t *testing.T) {
		params := DefaultParams()
		params.Columns = []string{"A", "missing", "also_missing"}
		_, err := Summarize(tbl, params)
		var valueErr *ErrInvalidValue
		require.ErrorAs(t, err, &valueErr)
		assert.Contains(t, err.Error(), "missing")
		assert.Contains(t, err.Error(), "also_missing")
	})

	t.Run("sample size zero", func(t *testing.T) {
		params := DefaultParams()
		params.SampleSize = 0
		_, err := Summarize(tbl, params)
		var valueErr *ErrInvalidValue
		require.ErrorAs(t, err, &valueErr)
	})
}

func TestTopIssues(t *testing.T) {
	tbl := newTestTable(t)

	t.Run("top one is the worst column", func(t *testing.T) {
		report, err := TopIssues(tbl, 1)
		require.NoError(t, err)
		require.Len(t, report.Rows, 1)
		assert.Equal(t, "A", report.Rows[0].Column)
		assert.NotNil(t, report.Rows[0].MemoryBytes, "top-issues always includes memory usage")
	})

	t.Run("oversized keeps everything", func(t *testing.T) {
		report, err := TopIssues(tbl, 100)
		require.NoError(t, err)
		assert.Len(t, report.Rows, 2)
	})

	t.Run("non-positive yields no rows", func(t *testing.T) {
		report, err := TopIssues(tbl, 0)
		require.NoError(t, err)
		assert.Empty(t, report.Rows)

		report, err = TopIssues(tbl, -3)
		require.NoError(t, err)
		assert.Empty(t, report.Rows)
	})

	t.Run("propagates summarize errors", func(t *testing.T) {
		_, err := TopIssues(nil, 1)
		var typeErr *ErrInvalidType
		require.ErrorAs(t, err, &typeErr)
	})
}

func TestErrorKindsAreDistinct(t *testing.T) {
	typeErr := error(&ErrInvalidType{Msg: "boom"})
	valueErr := error(&ErrInvalidValue{Msg: "boom"})

	var asType *ErrInvalidType
	assert.False(t, errors.As(valueErr, &asType))
	assert.True(t, errors.As(typeErr, &asType))
	assert.Contains(t, typeErr.Error(), "invalid type")
	assert.Contains(t, valueErr.Error(), "invalid value")
}
