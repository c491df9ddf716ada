package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_String(t *testing.T) {
	tbl := NewTable("CATALOG", "WEIGHT", "TITLE").
		Row("templates-hosted.json", "10", "Dask").
		FlaggedRow("templates-hosted.json", "20", "RAPIDS")

	out := tbl.String()

	assert.Equal(t, 2, tbl.Len())
	assert.GreaterOrEqual(t, len(strings.Split(out, "\n")), 4)
	assert.Contains(t, out, "CATALOG")
	assert.Less(t, strings.Index(out, "Dask"), strings.Index(out, "RAPIDS"))
}

func TestTable_Empty(t *testing.T) {
	out := NewTable("A", "B").String()
	assert.Contains(t, out, "A")
	assert.Equal(t, 0, NewTable("A").Len())
}
