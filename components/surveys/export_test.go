package surveys

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteSummaryWorkbook(t *testing.T) {
	svc := newTestPageService(t, &stubBackend{summary: summaryResult(testSummaryJSON)}, signedIn(), nil)
	req := testRequest("en")
	req.Query = map[string][]string{"region": {"north"}}
	data, err := svc.SummaryExport(context.Background(), req)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSummaryWorkbook(&buf, testMessages(t, "en"), data))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{"Tracon 2025", "Feedback"}, rows[0])
	assert.Equal(t, []string{"Showing summary of 4 responses out of 10."}, rows[1])
	assert.Equal(t, []string{"region", "north"}, rows[2])

	header := -1
	for i, row := range rows {
		if len(row) == 4 && row[0] == "Field" {
			header = i
			break
		}
	}
	require.Positive(t, header)
	assert.Equal(t, []string{"Field", "Type", "Answer", "Count"}, rows[header])

	body := rows[header+1:]
	assert.Contains(t, body, []string{"Name", "SingleLineText", "Alice"})
	assert.Contains(t, body, []string{"Rating", "SingleSelect", "Good", "3"})
	assert.Contains(t, body, []string{"Grid", "RadioMatrix", "Food / No", "1"})
	assert.Contains(t, body, []string{"Photos", "FileUpload", "https://cdn.example.com/uploads/cat%20photo.jpg"})
	assert.Contains(t, body, []string{"Photos", "FileUpload", "Missing responses", "3"})
	for _, row := range body {
		require.NotEmpty(t, row)
		assert.NotEqual(t, "Unanswered", row[0])
		assert.NotEqual(t, "intro", row[0])
	}
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "tracon2025-feedback-summary.xlsx", ExportFilename(testScope))
}
