// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package format

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperties_Decode(t *testing.T) {
	s := testSchema(t, testSchemaYAML)
	path := writeFixture(t, "server.properties", "\xef\xbb\xbf# comment\n"+
		"! bang comment\n"+
		"\n"+
		"motd = A Server=Fun\n"+
		"max-players=7\n"+
		"pvp=yes\n"+
		"this line is broken\n"+
		"unknown=1\n"+
		"ratio=abc\n")

	rec, err := newPropertiesAdapter(testLogger()).Decode(path, s)
	require.NoError(t, err)

	want := schema.Record{"server": {
		"motd":        "A Server=Fun",
		"max-players": int64(7),
		"pvp":         true,
		"ratio":       "abc",
	}}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestProperties_DecodeNonFiniteKeepsText(t *testing.T) {
	s := testSchema(t, testSchemaYAML)
	path := writeFixture(t, "server.properties", "max-players=nan\nratio=Infinity\n")

	rec, err := newPropertiesAdapter(testLogger()).Decode(path, s)
	require.NoError(t, err)
	assert.Equal(t, schema.Record{"server": {"max-players": "nan", "ratio": "Infinity"}}, rec)

	_, err = json.Marshal(rec)
	assert.NoError(t, err)
}

func TestProperties_DecodeOnlyFirstSection(t *testing.T) {
	s := testSchema(t, testSchemaYAML)
	path := writeFixture(t, "server.properties", "settings=(a=1)\nmotd=x\n")

	rec, err := newPropertiesAdapter(testLogger()).Decode(path, s)
	require.NoError(t, err)
	assert.Equal(t, schema.Record{"server": {"motd": "x"}}, rec)
}

func TestProperties_DecodeMissingFile(t *testing.T) {
	s := testSchema(t, testSchemaYAML)
	_, err := newPropertiesAdapter(testLogger()).Decode(filepath.Join(t.TempDir(), "nope"), s)
	assert.Error(t, err)
}

func TestProperties_EncodeLayout(t *testing.T) {
	s := testSchema(t, `
meta:
  game_name: Minecraft
  config_file: server.properties
sections:
  - fields:
      - name: difficulty
        display: Difficulty
        type: number
        default: 1
        description: "World\ndifficulty"
      - name: pvp
        type: boolean
      - name: level-name
`)
	path := filepath.Join(t.TempDir(), "server.properties")
	rec := schema.Record{"default": {
		"level-name": "world",
		"difficulty": int64(2),
		"pvp":        1,
	}}
	require.NoError(t, newPropertiesAdapter(testLogger()).Encode(path, rec, s))

	want := "# Minecraft Configuration\n" +
		"# Generated by gameconf\n\n" +
		"# Difficulty: World difficulty\n" +
		"difficulty=2\n\n" +
		"pvp=true\n\n" +
		"level-name=world\n\n"
	assert.Equal(t, want, readFile(t, path))
}

func TestProperties_NoSections(t *testing.T) {
	s := &schema.Schema{}
	a := newPropertiesAdapter(testLogger())

	_, err := a.Decode(writeFixture(t, "x.properties", "a=b\n"), s)
	assert.ErrorIs(t, err, ErrNoSections)
	assert.ErrorIs(t, a.Encode(filepath.Join(t.TempDir(), "x"), schema.Record{}, s), ErrNoSections)
}
