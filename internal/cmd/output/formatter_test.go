package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/marksync/internal/cmd/table"
)

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"table", "JSON", "yaml", ""} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestTableFormatter(t *testing.T) {
	data := table.Data{
		Headers:         table.Headers("outcome", "count"),
		Rows:            [][]string{{"created", "3"}, {"failed", "1"}},
		ColumnAlignment: []table.Align{table.AlignLeft, table.AlignRight},
	}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))
	out := buf.String()
	assert.Contains(t, out, "created")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "3")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, map[string]int{"created": 2}))
	assert.JSONEq(t, `{"created": 2}`, buf.String())
}

func TestStructuredFormatters(t *testing.T) {
	v := struct {
		Name  string `json:"name" yaml:"name"`
		Count int    `json:"count" yaml:"count"`
	}{"Work", 4}

	var js bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&js, v))
	assert.JSONEq(t, `{"name":"Work","count":4}`, js.String())

	var ym bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&ym, v))
	assert.Equal(t, "name: Work\ncount: 4\n", ym.String())
}
