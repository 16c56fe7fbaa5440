package jsonvalue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"jsonview/internal/viewer"
)

func render(t *testing.T, v viewer.Value) []string {
	t.Helper()
	vw := viewer.New(v)
	vw.ExpandAll()
	return strings.Split(vw.AsWidget().Render(viewer.DefaultHints()).Plain(), "\n")
}

func TestParse(t *testing.T) {
	v, err := Parse([]byte(`{"name": "a\"b", "n": 1.50, "ok": true, "nil": null, "list": [1, "two", {}]}`))
	require.NoError(t, err)

	want := []string{
		"{ [-]",
		"  list: [ [-]",
		"    1,",
		"    two,",
		"    { [-]",
		"    },",
		"  ] <-3/3 >,",
		`  n: 1.50,`,
		`  name: a"b,`,
		"  nil: null,",
		"  ok: true,",
		"}",
	}
	if diff := cmp.Diff(want, render(t, v)); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestParseScalarsAndErrors(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: `42`, want: "42"},
		{in: ` "xé" `, want: "xé"},
		{in: `false`, want: "false"},
		{in: `null`, want: "null"},
		{in: `1e400`, want: "1e400"},
		{in: `-0.10E+2`, want: "-0.10E+2"},
		{in: `"\ud800"`, want: "\ufffd"},
		{in: `"\ud83d\ude00"`, want: "😀"},
		{in: ``, wantErr: true},
		{in: `{"a": tru}`, wantErr: true},
		{in: `{"a": 1`, wantErr: true},
		{in: `{"a": 1} trailing`, wantErr: true},
		{in: `[1, 2]]`, wantErr: true},
		{in: `{"a":1}{"b":2}`, wantErr: true},
		{in: `{"a":1,}`, wantErr: true},
		{in: `[1,]`, wantErr: true},
		{in: `01`, wantErr: true},
		{in: `[1.]`, wantErr: true},
		{in: "\v1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := Parse([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, viewer.Scalar(tt.want), v.Visit())
		})
	}
}

func TestParseErrorsCarryOffset(t *testing.T) {
	_, err := Parse([]byte("\n  {\"a\": 1} trailing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offset 13")

	_, err = Parse([]byte(`{"a": [1, 2,]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offset")
}

func TestParseDuplicateKeysLastWins(t *testing.T) {
	v, err := Parse([]byte(`{"a": 1, "a": 2}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"{ [-]", "  a: 2,", "}"}, render(t, v))
}

func TestFromAny(t *testing.T) {
	var decoded any
	require.NoError(t, json.Unmarshal([]byte(`{"f": 2.5, "i": 10, "s": "str", "b": false, "z": null, "a": [1]}`), &decoded))

	want := []string{
		"{ [-]",
		"  a: [ [-]",
		"    1,",
		"  ] <-1/1 >,",
		"  b: false,",
		"  f: 2.5,",
		"  i: 10,",
		"  s: str,",
		"  z: null,",
		"}",
	}
	if diff := cmp.Diff(want, render(t, FromAny(decoded))); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, viewer.Scalar("7"), FromAny(json.Number("7")).Visit())
	assert.Equal(t, viewer.Scalar("3"), FromAny(3).Visit())
	assert.Equal(t, viewer.Scalar("txt"), FromAny(viewer.Text("txt")).Visit())
}

func TestFromAnyFloatSpelling(t *testing.T) {
	tests := map[float64]string{
		0:       "0",
		2.5:     "2.5",
		-100:    "-100",
		1e20:    "100000000000000000000",
		1e21:    "1e+21",
		1e300:   "1e+300",
		0.00001: "0.00001",
		1e-7:    "1e-7",
	}
	for in, want := range tests {
		assert.Equal(t, viewer.Scalar(want), FromAny(in).Visit(), "%v", in)
	}
	assert.Equal(t, viewer.Scalar("1e+30"), FromAny(float32(1e30)).Visit())
}

func TestParseYAML(t *testing.T) {
	doc := `
base: &base
  port: 80
server:
  <<: *base
  hosts: [a, b]
  empty: ~
tagged: !custom
  x: 1
copy: *base
`
	v, err := ParseYAML([]byte(doc))
	require.NoError(t, err)

	want := []string{
		"{ [-]",
		"  base: { [-]",
		"    port: 80,",
		"  },",
		"  copy: { [-]",
		"    port: 80,",
		"  },",
		"  server: { [-]",
		"    <<: { [-]",
		"      port: 80,",
		"    },",
		"    empty: null,",
		"    hosts: [ [-]",
		"      a,",
		"      b,",
		"    ] <-2/2 >,",
		"  },",
		"  tagged: !custom { [-]",
		"    x: 1,",
		"  },",
		"}",
	}
	if diff := cmp.Diff(want, render(t, v)); diff != "" {
		t.Errorf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestFromYAMLNode(t *testing.T) {
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("list: !pair [1, 2]\n"), &doc))

	root := FromYAMLNode(&doc).Visit()
	require.Equal(t, viewer.KindMap, root.Kind)
	require.Len(t, root.Members, 1)

	list := root.Members[0].Value.Visit()
	assert.Equal(t, viewer.KindArray, list.Kind)
	d, ok := list.Description()
	assert.True(t, ok)
	assert.Equal(t, "!pair", d)

	_, ok = root.Description()
	assert.False(t, ok, "default tags are not shown")
}

func TestParseYAMLErrors(t *testing.T) {
	_, err := ParseYAML([]byte(""))
	assert.Error(t, err)

	_, err = ParseYAML([]byte("a: [1, 2"))
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatAuto, f)

	f, err = ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("toml")
	assert.Error(t, err)

	assert.Equal(t, FormatYAML, FormatAuto.Resolve("x/config.yml"))
	assert.Equal(t, FormatJSON, FormatAuto.Resolve("data.json"))
	assert.Equal(t, FormatJSON, FormatAuto.Resolve("-"))
	assert.Equal(t, FormatYAML, FormatYAML.Resolve("data.json"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "a.json")
	yamlPath := filepath.Join(dir, "b.yaml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[1]`), 0o644))
	require.NoError(t, os.WriteFile(yamlPath, []byte("k: v\n"), 0o644))

	v, err := Load(jsonPath, FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, viewer.KindArray, v.Visit().Kind)

	v, err = Load(yamlPath, FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, viewer.KindMap, v.Visit().Kind)

	_, err = Load(filepath.Join(dir, "missing.json"), FormatAuto)
	assert.Error(t, err)

	v, err = Read(strings.NewReader(`"s"`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, viewer.Scalar("s"), v.Visit())
}
