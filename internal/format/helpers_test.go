// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package format

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testSchemaYAML = `
meta:
  game_name: Test Game
  config_file: test.cfg
sections:
  - key: server
    fields:
      - name: motd
        type: string
        default: hello
        description: Message of the day
      - name: max-players
        type: number
        default: 20
      - name: pvp
        type: boolean
        default: true
      - name: ratio
        type: number
        default: 0.5
  - key: world
    fields:
      - name: settings
        type: nested
        nested_fields:
          - name: name
            type: string
          - name: difficulty
            type: number
          - name: pvp
            type: boolean
`

const rootSchemaYAML = `
meta:
  config_file: settings.json
sections:
  - key: server
    fields:
      - name: motd
  - fields:
      - name: difficulty
        type: number
        default: 1
`

// collisionSchemaYAML declares a root field with the same name as a keyed section.
const collisionSchemaYAML = `
meta:
  config_file: settings.json
sections:
  - key: server
    fields:
      - name: motd
  - fields:
      - name: difficulty
        type: number
        default: 1
      - name: server
`

func testSchema(t *testing.T, doc string) *schema.Schema {
	t.Helper()
	s, err := schema.Parse([]byte(doc))
	require.NoError(t, err)
	return s
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func fullRecord() schema.Record {
	return schema.Record{
		"server": {
			"motd":        "Hello World",
			"max-players": int64(12),
			"pvp":         false,
			"ratio":       0.75,
		},
		"world": {
			"settings": []string{`name="Creative World"`, "difficulty=2", "pvp=true"},
		},
	}
}
