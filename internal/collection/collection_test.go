package collection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleFile = `
collections:
  media:
    storage:
      type: akamai
      options:
        host: example-nsu.akamaihd.net
        cpCode: "123456"
        restrictedDirectory: example
        workingDirectory: storage
    target:
      type: s3
      options:
        region: eu-central-1
        bucket: example-target
  documents:
    storage:
      type: akamai
      options:
        workingDirectory: storage
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collections.yaml")
	require.NoError(t, os.WriteFile(path, []byte(exampleFile), 0o644))

	registry, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"documents", "media"}, registry.Names())

	spec, exists := registry.Get("media")
	require.True(t, exists)
	require.NotNil(t, spec.Storage)
	assert.Equal(t, "akamai", spec.Storage.Type)
	assert.Equal(t, "123456", spec.Storage.Options["cpCode"])
	require.NotNil(t, spec.Target)
	assert.Equal(t, "s3", spec.Target.Type)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestParseRejectsInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("collections: [not a map"))
	require.Error(t, err)
}

func TestParseRequiresBackendType(t *testing.T) {
	_, err := Parse([]byte(`
collections:
  media:
    storage:
      options:
        host: h
`))
	require.Error(t, err)
}

func TestParseRequiresAtLeastOneRole(t *testing.T) {
	_, err := Parse([]byte(`
collections:
  media: {}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "media")
}

func TestGetUnknownCollection(t *testing.T) {
	registry, err := Parse([]byte(exampleFile))
	require.NoError(t, err)

	_, exists := registry.Get("nope")
	assert.False(t, exists)
}
