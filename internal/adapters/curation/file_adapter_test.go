package curation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOverrides(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overrides.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileAdapter_Overrides(t *testing.T) {
	path := writeOverrides(t, `[
		{"key":"badger animal hospital|1 regent st","phone":"(608) 555-0199","hours":"Mon-Fri 8am-6pm"}
	]`)

	overrides, err := NewFileAdapter(path).Overrides(context.Background())
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	assert.Equal(t, "badger animal hospital|1 regent st", overrides[0].Key)
	assert.Equal(t, "(608) 555-0199", overrides[0].Phone)
	assert.Equal(t, "Mon-Fri 8am-6pm", overrides[0].Hours)
}

func TestFileAdapter_MissingFileMeansNoOverrides(t *testing.T) {
	overrides, err := NewFileAdapter(filepath.Join(t.TempDir(), "absent.json")).Overrides(context.Background())
	require.NoError(t, err)
	assert.Nil(t, overrides)
}

func TestFileAdapter_MalformedPayload(t *testing.T) {
	path := writeOverrides(t, `{"key":"not-an-array"}`)

	_, err := NewFileAdapter(path).Overrides(context.Background())
	assert.Error(t, err)
}
