// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package format

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestYAML_DecodeNestedObjectAndList(t *testing.T) {
	s := testSchema(t, testSchemaYAML)
	path := writeFixture(t, "config.yml", `
server:
  motd: Hi
  max-players: "15"
  unknown: 1
world:
  settings:
    pvp: true
    name: My World
    difficulty: 2.0
`)

	rec, err := newYAMLAdapter(testLogger()).Decode(path, s)
	require.NoError(t, err)

	want := schema.Record{
		"server": {"motd": "Hi", "max-players": int64(15)},
		"world":  {"settings": []string{"pvp=true", `name="My World"`, "difficulty=2.0"}},
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestYAML_DecodeListPassesThrough(t *testing.T) {
	s := testSchema(t, testSchemaYAML)
	path := writeFixture(t, "config.yml", "world:\n  settings: [a=1, b=2]\n")

	rec, err := newYAMLAdapter(testLogger()).Decode(path, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"a=1", "b=2"}, rec["world"]["settings"])
}

func TestDocument_StructuredPlainFieldDecodesToMaps(t *testing.T) {
	s := testSchema(t, `
meta:
  config_file: settings.yml
sections:
  - fields:
      - name: extra
      - name: tags
`)
	want := map[string]any{"a": int64(1), "b": "two", "c": []any{"x", map[string]any{"d": int64(2)}}}

	for _, tc := range []struct {
		adapter Adapter
		doc     string
	}{
		{newYAMLAdapter(testLogger()), "extra:\n  a: 1\n  b: two\n  c: [x, {d: 2}]\ntags: [red, {k: v}]\n"},
		{newJSONAdapter(testLogger()), `{"extra": {"a": 1, "b": "two", "c": ["x", {"d": 2}]}, "tags": ["red", {"k": "v"}]}`},
	} {
		t.Run(tc.adapter.ID(), func(t *testing.T) {
			rec, err := tc.adapter.Decode(writeFixture(t, "settings", tc.doc), s)
			require.NoError(t, err)
			assert.Equal(t, want, rec["default"]["extra"])
			assert.Equal(t, []any{"red", map[string]any{"k": "v"}}, rec["default"]["tags"])

			out, err := json.Marshal(rec)
			require.NoError(t, err)
			assert.Equal(t, "two", gjson.GetBytes(out, "default.extra.b").String())
			assert.Equal(t, int64(2), gjson.GetBytes(out, "default.extra.c.1.d").Int())
		})
	}
}

func TestYAML_EmptyAndNonMapping(t *testing.T) {
	s := testSchema(t, testSchemaYAML)
	a := newYAMLAdapter(testLogger())

	rec, err := a.Decode(writeFixture(t, "empty.yml", ""), s)
	require.NoError(t, err)
	assert.Equal(t, schema.Record{"server": {}, "world": {}}, rec)

	_, err = a.Decode(writeFixture(t, "list.yml", "- a\n- b\n"), s)
	assert.ErrorIs(t, err, ErrNotAMapping)
}

func TestYAML_EncodeKeepsSchemaOrder(t *testing.T) {
	s := testSchema(t, testSchemaYAML)
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, newYAMLAdapter(testLogger()).Encode(path, fullRecord(), s))

	out := readFile(t, path)
	assert.Less(t, strings.Index(out, "motd:"), strings.Index(out, "max-players:"))
	assert.Less(t, strings.Index(out, "max-players:"), strings.Index(out, "pvp:"))
	assert.Less(t, strings.Index(out, "server:"), strings.Index(out, "world:"))
	assert.Contains(t, out, "name: Creative World")
}

func TestJSON_PreservesMemberOrder(t *testing.T) {
	s := testSchema(t, testSchemaYAML)
	path := writeFixture(t, "config.json", `{
  "world": {"settings": {"pvp": false, "difficulty": 1, "name": "Z"}},
  "server": {"ratio": 1, "motd": "x"}
}`)

	rec, err := newJSONAdapter(testLogger()).Decode(path, s)
	require.NoError(t, err)

	want := schema.Record{
		"server": {"motd": "x", "ratio": float64(1)},
		"world":  {"settings": []string{"pvp=false", "difficulty=1", `name="Z"`}},
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestJSON_EncodeNestedAsObject(t *testing.T) {
	s := testSchema(t, testSchemaYAML)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, newJSONAdapter(testLogger()).Encode(path, fullRecord(), s))

	doc := readFile(t, path)
	require.True(t, gjson.Valid(doc))
	assert.Equal(t, "Creative World", gjson.Get(doc, "world.settings.name").String())
	assert.Equal(t, int64(2), gjson.Get(doc, "world.settings.difficulty").Int())
	assert.True(t, gjson.Get(doc, "world.settings.pvp").Bool())
	assert.Equal(t, "Hello World", gjson.Get(doc, "server.motd").String())
	assert.Equal(t, int64(12), gjson.Get(doc, `server.max-players`).Int())
}

func TestJSON_InvalidDocument(t *testing.T) {
	s := testSchema(t, testSchemaYAML)
	a := newJSONAdapter(testLogger())

	_, err := a.Decode(writeFixture(t, "bad.json", "{not json"), s)
	assert.Error(t, err)

	_, err = a.Decode(writeFixture(t, "list.json", "[1,2]"), s)
	assert.ErrorIs(t, err, ErrNotAMapping)
}

func TestJSON_RootCollisionLaterSectionWins(t *testing.T) {
	s := testSchema(t, collisionSchemaYAML)
	path := filepath.Join(t.TempDir(), "settings.json")
	rec := schema.Record{
		"server":  {"motd": "hi"},
		"default": {"difficulty": int64(2), "server": "flat"},
	}
	require.NoError(t, newJSONAdapter(testLogger()).Encode(path, rec, s))

	doc := readFile(t, path)
	assert.Equal(t, "flat", gjson.Get(doc, "server").String())
	assert.Equal(t, int64(2), gjson.Get(doc, "difficulty").Int())
}

func TestJSON_SpecialMemberNames(t *testing.T) {
	s := testSchema(t, `
meta:
  config_file: x.json
sections:
  - fields:
      - name: a.b
      - name: "42"
`)
	path := filepath.Join(t.TempDir(), "x.json")
	want := schema.Record{"default": {"a.b": "dot", "42": "digits"}}
	a := newJSONAdapter(testLogger())
	require.NoError(t, a.Encode(path, want, s))

	got, err := a.Decode(path, s)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTOML_NestedUsesDeclaredOrder(t *testing.T) {
	s := testSchema(t, testSchemaYAML)
	path := writeFixture(t, "config.toml", `
[server]
motd = "Hi"
pvp = true

[world.settings]
zeta = "last"
pvp = false
difficulty = 3
name = "Overworld"
`)

	rec, err := newTOMLAdapter(testLogger()).Decode(path, s)
	require.NoError(t, err)

	want := schema.Record{
		"server": {"motd": "Hi", "pvp": true},
		"world":  {"settings": []string{`name="Overworld"`, "difficulty=3", "pvp=false", "zeta=last"}},
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestHOCON_DecodeNative(t *testing.T) {
	s := testSchema(t, testSchemaYAML)
	path := writeFixture(t, "application.conf", `
server {
  motd = "Hello there"
  max-players = 32
  pvp = false
}
world.settings {
  name = Nether
  difficulty = 4
}
`)

	rec, err := newHOCONAdapter(testLogger()).Decode(path, s)
	require.NoError(t, err)

	want := schema.Record{
		"server": {"motd": "Hello there", "max-players": int64(32), "pvp": false},
		"world":  {"settings": []string{`name="Nether"`, "difficulty=4"}},
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestHOCON_EncodeWritesKeyedJSON(t *testing.T) {
	s := testSchema(t, rootSchemaYAML)
	path := filepath.Join(t.TempDir(), "application.conf")
	rec := schema.Record{"default": {"difficulty": int64(3)}}

	a := newHOCONAdapter(testLogger())
	require.NoError(t, a.Encode(path, rec, s))

	doc := readFile(t, path)
	require.True(t, gjson.Valid(doc))
	assert.Equal(t, int64(3), gjson.Get(doc, "default.difficulty").Int())

	got, err := a.Decode(path, s)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got["default"]["difficulty"])
}

func TestHOCON_EmptyFile(t *testing.T) {
	s := testSchema(t, testSchemaYAML)
	rec, err := newHOCONAdapter(testLogger()).Decode(writeFixture(t, "empty.conf", "  \n"), s)
	require.NoError(t, err)
	assert.Equal(t, schema.Record{"server": {}, "world": {}}, rec)
}
