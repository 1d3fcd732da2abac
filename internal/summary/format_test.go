package summary

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestReport() *Report {
	memory := int64(128)
	min, max, mean := 1.0, 3.0, 2.0
	return &Report{
		IncludeMemoryUsage: true,
		IncludeStats:       true,
		Rows: []ColumnSummary{
			{
				Column:        "A",
				DataType:      "int64",
				NullCount:     1,
				NullPercent:   25.0,
				DuplicateRows: 0,
				UniqueValues:  3,
				SampleValues:  "1, 2, 3",
				MemoryBytes:   &memory,
				Min:           &min,
				Max:           &max,
				Mean:          &mean,
			},
			{
				Column:        "B",
				DataType:      "string",
				NullCount:     0,
				NullPercent:   0.0,
				DuplicateRows: 0,
				UniqueValues:  3,
				SampleValues:  "x, y, z",
				MemoryBytes:   &memory,
			},
		},
	}
}

func TestFormatReportAsText(t *testing.T) {
	out := FormatReportAsText(newTestReport())

	assert.Contains(t, out, "Column")
	assert.Contains(t, out, "Null Percent")
	assert.Contains(t, out, "Memory Bytes")
	assert.Contains(t, out, "Mean")
	assert.Contains(t, out, "25.00")
	assert.Contains(t, out, "1, 2, 3")
	// Non-numeric column renders not-applicable statistics.
	assert.Contains(t, out, NotApplicable)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3, "header plus one line per row")
}

func TestFormatReportAsTextEmpty(t *testing.T) {
	assert.Equal(t, "No columns summarized.\n", FormatReportAsText(&Report{}))
	assert.Equal(t, "No columns summarized.\n", FormatReportAsText(nil))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(newTestReport(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Column", "Data Type", "Null Count", "Null Percent", "Duplicate Rows", "Unique Values", "Sample Values", "Memory Bytes", "Min", "Max", "Mean"}, records[0])
	assert.Equal(t, "A", records[1][0])
	assert.Equal(t, "25.00", records[1][3])
	assert.Equal(t, "2", records[1][10])
	assert.Equal(t, NotApplicable, records[2][8])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(newTestReport(), &buf))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Rows, 2)
	assert.Equal(t, "A", decoded.Rows[0].Column)
	require.NotNil(t, decoded.Rows[0].Mean)
	assert.Equal(t, 2.0, *decoded.Rows[0].Mean)
	// Optional stats stay absent for the non-numeric column.
	assert.Nil(t, decoded.Rows[1].Mean)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(newTestReport(), &buf))

	var decoded Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Rows, 2)
	assert.Equal(t, "B", decoded.Rows[1].Column)
	assert.Equal(t, "x, y, z", decoded.Rows[1].SampleValues)
}
