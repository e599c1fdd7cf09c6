package interpolation

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand_QuotesDelimiters(t *testing.T) {
	d := Default()
	expr := d.Expand(`${start}\s*'([^']*)'\s*${end}`)
	assert.Equal(t, `\{\{\s*'([^']*)'\s*\}\}`, expr)

	re := regexp.MustCompile(expr)
	m := re.FindStringSubmatch(`<p>{{ 'HELLO' }}</p>`)
	require.Len(t, m, 2)
	assert.Equal(t, "HELLO", m[1])
}

func TestExpand_CustomDelimiters(t *testing.T) {
	d := Delimiters{Start: "[[", End: "]]"}
	re := regexp.MustCompile(d.Expand(`${start}(.*?)${end}`))
	m := re.FindStringSubmatch(`a [[ x.y ]] b`)
	require.Len(t, m, 2)
	assert.Equal(t, " x.y ", m[1])
}

func TestStrip(t *testing.T) {
	tests := []struct {
		name  string
		delim Delimiters
		in    string
		want  string
	}{
		{"default", Default(), "{{ ok ? 'A' : 'B' }}", " ok ? 'A' : 'B' "},
		{"nothing to strip", Default(), "plain", "plain"},
		{"custom", Delimiters{Start: "<%", End: "%>"}, "<%x%><%y%>", "xy"},
		{"empty delimiters", Delimiters{}, "{{x}}", "{{x}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.delim.Strip(tt.in))
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())
	assert.ErrorIs(t, Delimiters{Start: "{{"}.Validate(), ErrEmptyDelimiter)
}
