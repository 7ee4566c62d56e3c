package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"focusnav/internal/focus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
name: window
children:
  - name: toolbar
    children:
      - name: open
        focusable: true
      - name: save
        focusable: true
        visible: false
  - name: editor
    focusable: true
`

func names(nodes []focus.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.(Handle).Name()
	}
	return out
}

func TestDecode_YAML(t *testing.T) {
	tr, err := Decode(strings.NewReader(sampleYAML), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 5, tr.Len())
	assert.Equal(t, "window", tr.Name(tr.Root()))

	save, ok := tr.Lookup("save")
	require.True(t, ok)
	assert.False(t, tr.IsVisible(save))
	assert.True(t, tr.IsFocusable(save))

	assert.Equal(t, []string{"open", "editor"}, names(focus.Order(tr.RootNode())))
}

func TestDecode_JSON(t *testing.T) {
	src := `{"name":"root","children":[{"name":"a","focusable":true},{"name":"b","focusable":true}]}`
	tr, err := Decode(strings.NewReader(src), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names(focus.Order(tr.RootNode())))
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		format  Format
		wantErr error
	}{
		{"empty root", `children: []`, FormatYAML, ErrEmptyName},
		{"empty document", "", FormatYAML, ErrEmptyName},
		{"empty child", "name: r\nchildren:\n  - focusable: true\n", FormatYAML, ErrEmptyName},
		{"duplicate", "name: r\nchildren:\n  - name: x\n  - name: x\n", FormatYAML, ErrDuplicateName},
		{"unknown format", `{}`, Format("toml"), ErrUnknownFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src), tt.format)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := Decode(strings.NewReader(`{"name":"r","bogus":true}`), FormatJSON)
	assert.ErrorContains(t, err, "decode scene json")

	_, err = Decode(strings.NewReader("name: [unclosed"), FormatYAML)
	assert.ErrorContains(t, err, "decode scene yaml")
}

func TestDecode_UnknownKeyRejectedInBothFormats(t *testing.T) {
	yamlSrc := "name: r\nchildren:\n  - name: a\n    focussable: true\n"
	_, err := Decode(strings.NewReader(yamlSrc), FormatYAML)
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode scene yaml")
	assert.ErrorContains(t, err, "focussable")

	jsonSrc := `{"name":"r","children":[{"name":"a","focussable":true}]}`
	_, err = Decode(strings.NewReader(jsonSrc), FormatJSON)
	require.Error(t, err)
	assert.ErrorContains(t, err, "focussable")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	tr, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, tr.Len())

	_, err = Load(filepath.Join(dir, "scene.txt"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSpec_RoundTrip(t *testing.T) {
	tr, err := Decode(strings.NewReader(sampleYAML), FormatYAML)
	require.NoError(t, err)

	again, err := Build(tr.Spec())
	require.NoError(t, err)
	assert.Equal(t, tr.Spec(), again.Spec())
	assert.Equal(t, names(focus.Order(tr.RootNode())), names(focus.Order(again.RootNode())))
}
