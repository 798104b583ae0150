package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderPrependsBOMAndQuotes(t *testing.T) {
	exporter := NewCSVExporter()

	data, err := exporter.Render(Dataset{
		Headers: []string{"Subject", "Room"},
		Rows: []map[string]string{
			{"Subject": "Databases, Advanced", "Room": "R101"},
			{"Subject": "Networks"},
		},
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, utf8BOM))
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[1]), `"Databases, Advanced"`)
	// Missing cells render empty, not dropped.
	assert.Equal(t, "Networks,", string(lines[2]))
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFRenderProducesDocument(t *testing.T) {
	exporter := NewPDFExporter()

	data, err := exporter.Render(Dataset{
		Headers: []string{"Date", "Day", "Time", "Subject", "Faculty", "Room"},
		Rows: []map[string]string{
			{"Date": "2026-02-02", "Day": "Monday", "Time": "09:00-10:00", "Subject": "Databases", "Faculty": "Asha Nair", "Room": "R101"},
		},
	}, "Weekly Roster")
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
