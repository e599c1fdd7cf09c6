package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"i18nextract/internal/keystore"
)

const menuJSON = `{
  "myLevel1": [
    {"val": "myVal1", "label": "MyLabel1"},
    {"val": "myVal2", "label": "MyLabel2"}
  ],
  "myLevel12": {"new": {"label": "MyLabel3", "title": "Title1"}},
  "count": {"label": 3},
  "label": " Top "
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLabelsJSON_DefaultField(t *testing.T) {
	labels, err := New().LabelsJSON([]byte(menuJSON))
	require.NoError(t, err)
	assert.Equal(t, []string{"MyLabel1", "MyLabel2", "MyLabel3", " Top "}, labels)
}

func TestLabelsJSON_ExtraFields(t *testing.T) {
	labels, err := New("title").LabelsJSON([]byte(menuJSON))
	require.NoError(t, err)
	assert.Equal(t, []string{"MyLabel1", "MyLabel2", "MyLabel3", "Title1", " Top "}, labels)
}

func TestLabelsJSON_Invalid(t *testing.T) {
	_, err := New().LabelsJSON([]byte(`{"label": `))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestLabelsJSON_ArrayIndexesAreNotFields(t *testing.T) {
	labels, err := New("0").LabelsJSON([]byte(`["zero", {"0": "field"}]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"field"}, labels)
}

func TestLabelsYAML(t *testing.T) {
	doc := `
menu:
  - label: Open
    action: open
  - label: Close
    caption: Shut
base: &base
  label: Shared
copy: *base
count:
  label: 3
`
	labels, err := New("caption").LabelsYAML([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"Open", "Close", "Shut", "Shared", "Shared"}, labels)
}

func TestImportFile_MergesWithoutOverwriting(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "menu.json", menuJSON)

	s := keystore.New()
	s.Set("MyLabel1", "Existing default")

	added, err := New().ImportFile(p, s)
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	assert.Equal(t, map[string]string{
		"MyLabel1": "Existing default",
		"MyLabel2": "",
		"MyLabel3": "",
		"Top":      "",
	}, s.Map())
}

func TestImportFiles_YAMLAndJSON(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"items": [{"label": "A"}, {"label": "B"}]}`)
	b := writeFile(t, dir, "b.yml", "label: C\nnested:\n  label: A\n")

	s := keystore.New()
	added, err := New().ImportFiles([]string{a, b}, s)
	require.NoError(t, err)
	assert.Equal(t, 3, added)
	assert.Equal(t, []string{"A", "B", "C"}, s.Keys())
}

func TestImportFile_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := New().ImportFile(filepath.Join(dir, "missing.json"), keystore.New())
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.json", `{not json`)
	_, err = New().ImportFile(bad, keystore.New())
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestFields(t *testing.T) {
	assert.Equal(t, []string{"caption", "label"}, New("caption", " ", "label").Fields())
}
