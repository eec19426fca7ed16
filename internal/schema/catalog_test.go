// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func writeSchemaFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestCatalog_List(t *testing.T) {
	dir := t.TempDir()
	writeSchemaFile(t, dir, "minecraft.yml", minecraftSchema)
	writeSchemaFile(t, dir, "palworld.yaml", "meta:\n  config_file: PalWorldSettings.ini\nsections: []\n")
	writeSchemaFile(t, dir, "broken.yml", "meta: [unterminated")
	writeSchemaFile(t, dir, "nometa.yml", "sections: []\n")
	writeSchemaFile(t, dir, "notes.txt", "meta: {}")

	entries := NewCatalog(dir).List()
	require.Len(t, entries, 2)

	assert.Equal(t, Entry{ID: "minecraft", Name: "Minecraft", ConfigFile: "server.properties", Filename: "minecraft.yml"}, entries[0])
	assert.Equal(t, "palworld", entries[1].ID)
	assert.Equal(t, "palworld.yaml", entries[1].Name, "name falls back to the file name")
}

func TestCatalog_ListMissingDir(t *testing.T) {
	entries := NewCatalog(filepath.Join(t.TempDir(), "absent")).List()
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestCatalog_Get(t *testing.T) {
	dir := t.TempDir()
	writeSchemaFile(t, dir, "minecraft.yaml", minecraftSchema)
	c := NewCatalog(dir)

	s, err := c.Get("minecraft")
	require.NoError(t, err)
	assert.Equal(t, "server.properties", s.Meta.ConfigFile)

	_, err = c.Get("terraria")
	assert.ErrorIs(t, err, ErrSchemaNotFound)

	_, err = c.Get("../minecraft")
	assert.ErrorIs(t, err, ErrInvalidSchemaID)
}

func TestCatalog_GetWithoutMeta(t *testing.T) {
	dir := t.TempDir()
	writeSchemaFile(t, dir, "nometa.yml", "sections: []\n")

	_, err := NewCatalog(dir).Get("nometa")
	assert.ErrorIs(t, err, ErrMissingMeta)
}

func TestCatalog_DocumentKeepsUnmodelledAttributes(t *testing.T) {
	dir := t.TempDir()
	writeSchemaFile(t, dir, "ark.yml", `
meta:
  game_name: ARK
  config_file: GameUserSettings.ini
sections:
  - key: ServerSettings
    fields:
      - name: DifficultyOffset
        type: number
        min: 0
        max: 1
`)
	doc, err := NewCatalog(dir).Document("ark")
	require.NoError(t, err)

	sections := doc["sections"].([]any)
	fields := sections[0].(map[string]any)["fields"].([]any)
	field := fields[0].(map[string]any)
	assert.Equal(t, 1, field["max"])
}

func TestCatalog_DocumentStringifiesMappingKeys(t *testing.T) {
	dir := t.TempDir()
	writeSchemaFile(t, dir, "valheim.yml", `
meta:
  config_file: valheim.json
sections:
  - fields:
      - name: preset
        options:
          1: easy
          2: hard
        labels:
          - {true: on, false: off}
`)
	doc, err := NewCatalog(dir).Document("valheim")
	require.NoError(t, err)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":"easy","2":"hard"}`, gjson.GetBytes(out, "sections.0.fields.0.options").Raw)
	assert.JSONEq(t, `[{"true":"on","false":"off"}]`, gjson.GetBytes(out, "sections.0.fields.0.labels").Raw)
}
