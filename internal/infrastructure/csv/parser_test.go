package csv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Basic(t *testing.T) {
	table, err := Parse("fullName,phone\nPriya Sharma,9876543210\nArjun Mehta,9123456780")

	require.NoError(t, err)
	assert.Equal(t, []string{"fullName", "phone"}, table.Headers)
	assert.Equal(t, 2, table.RawRowCount)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Priya Sharma", table.Rows[0].Get("fullName"))
	assert.Equal(t, "9123456780", table.Rows[1].Get("phone"))
}

func TestParse_EmptyPayload(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\n"} {
		table, err := Parse(raw)
		assert.Nil(t, table, "raw %q", raw)
		assert.Equal(t, ErrMissingHeader, err, "raw %q", raw)
	}
}

func TestParse_LineNumbers(t *testing.T) {
	table, err := Parse("fullName\nPriya\n\nArjun")

	require.NoError(t, err)
	// The blank line keeps its slot: the header is line 1 and the row after
	// the blank is line 4.
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 2, table.Rows[0].LineNumber)
	assert.Equal(t, 4, table.Rows[1].LineNumber)
	assert.Equal(t, 3, table.RawRowCount)
}

func TestParse_ShortRowsPadded(t *testing.T) {
	table, err := Parse("fullName,email,phone\nPriya,priya@example.com")

	require.NoError(t, err)
	row := table.Rows[0]
	assert.Equal(t, "priya@example.com", row.Get("email"))
	assert.Equal(t, "", row.Get("phone"))
	assert.False(t, row.Has("phone"))
}

func TestParse_TrimsCells(t *testing.T) {
	table, err := Parse(" fullName , phone \n Priya Sharma , 9876543210 ")

	require.NoError(t, err)
	assert.Equal(t, []string{"fullName", "phone"}, table.Headers)
	assert.Equal(t, "Priya Sharma", table.Rows[0].Get("fullName"))
}

func TestTable_MissingHeaders(t *testing.T) {
	table, err := Parse("fullName,email\nPriya,priya@example.com")
	require.NoError(t, err)

	assert.True(t, table.HasHeader("email"))
	assert.False(t, table.HasHeader("phone"))
	assert.Equal(t, []string{"phone"}, table.MissingHeaders([]string{"fullName", "phone"}))
	assert.Nil(t, table.MissingHeaders([]string{"fullName", "email"}))
}

func TestRow_IsEmpty(t *testing.T) {
	table, err := Parse("fullName,phone\n,\nPriya,")
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.True(t, table.Rows[0].IsEmpty())
	assert.False(t, table.Rows[1].IsEmpty())
}
