package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSheet() DocumentSheet {
	return DocumentSheet{
		Name:      "My first Document",
		TypeName:  "Personal Info",
		CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
		Fields: []FieldLine{
			{Name: "First name", Content: "Nicolas", RelID: 1},
			{Name: "Last name", Content: "Dupont", RelID: 2},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	payload, err := NewCSVExporter().Render(sampleSheet())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,content,rel_id", lines[0])
	assert.Equal(t, "First name,Nicolas,1", lines[1])
	assert.Equal(t, "Last name,Dupont,2", lines[2])
}

func TestCSVExporterRenderEmptySheet(t *testing.T) {
	payload, err := NewCSVExporter().Render(DocumentSheet{Name: "Empty"})
	require.NoError(t, err)
	assert.Equal(t, "name,content,rel_id\n", string(payload))
}

func TestPDFExporterRender(t *testing.T) {
	payload, err := NewPDFExporter().Render(sampleSheet())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}
