package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sijil-app/sijil/internal/records"
)

func TestPrisoners_RendersRows(t *testing.T) {
	var buf bytes.Buffer
	list := []records.Prisoner{
		{Name: "أحمد", Charge: "رأي", Prison: "صنعاء", Phone: "777", NationalID: "123"},
		{Name: "سالم", Charge: "سياسي", Prison: "عدن"},
	}

	require.NoError(t, Prisoners(&buf, list, "صنعاء"))
	out := buf.String()

	assert.Contains(t, out, `dir="rtl"`)
	assert.Contains(t, out, "كشف السجناء")
	assert.Contains(t, out, "نتائج البحث عن: صنعاء")
	assert.Contains(t, out, "أحمد")
	assert.Contains(t, out, "سالم")
	assert.Contains(t, out, "window.print()")
	assert.Equal(t, 2, strings.Count(out, "<tr>")-1, "one header row plus one row per record")
}

func TestPrisoners_EscapesStoredMarkup(t *testing.T) {
	var buf bytes.Buffer
	list := []records.Prisoner{
		{Name: `<script>alert("x")</script>`, Charge: "<b>bold</b>"},
	}

	require.NoError(t, Prisoners(&buf, list, ""))
	out := buf.String()

	assert.NotContains(t, out, `<script>alert`)
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<b>bold</b>")
}

func TestReleased_RendersReleaseDateColumn(t *testing.T) {
	var buf bytes.Buffer
	list := []records.ReleasedPrisoner{
		{Name: "خالد", ReleaseDate: "2024-05-01"},
	}

	require.NoError(t, Released(&buf, list, ""))
	out := buf.String()

	assert.Contains(t, out, "كشف المفرج عنهم")
	assert.Contains(t, out, "تاريخ الإفراج")
	assert.Contains(t, out, "2024-05-01")
}
