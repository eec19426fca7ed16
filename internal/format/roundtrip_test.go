// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package format

import (
	"path/filepath"
	"testing"

	"github.com/ManuGH/gameconf/internal/schema"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip_AllFormats(t *testing.T) {
	r := NewRegistry()
	s := testSchema(t, testSchemaYAML)

	for _, id := range []string{ConfigObj, YAML, JSON, TOML, HOCON} {
		t.Run(id, func(t *testing.T) {
			a, err := r.Lookup(id)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "config")
			want := fullRecord()
			require.NoError(t, a.Encode(path, want, s))

			got, err := a.Decode(path, s)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s\nfile:\n%s", diff, readFile(t, path))
			}
		})
	}
}

func TestRoundTrip_Properties(t *testing.T) {
	a := newPropertiesAdapter(testLogger())
	s := testSchema(t, testSchemaYAML)

	path := filepath.Join(t.TempDir(), "server.properties")
	want := schema.Record{"server": fullRecord()["server"]}
	require.NoError(t, a.Encode(path, want, s))

	got, err := a.Decode(path, s)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTrip_RootSections(t *testing.T) {
	s := testSchema(t, rootSchemaYAML)
	want := schema.Record{
		"server":  {"motd": "hi"},
		"default": {"difficulty": int64(3)},
	}

	for _, a := range []Adapter{newYAMLAdapter(testLogger()), newJSONAdapter(testLogger()), newTOMLAdapter(testLogger())} {
		t.Run(a.ID(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config")
			require.NoError(t, a.Encode(path, want, s))

			got, err := a.Decode(path, s)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s\nfile:\n%s", diff, readFile(t, path))
			}
		})
	}
}
