package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
version: "1"
defaults:
  identity: ID
  concurrency_token: Version
  mode: upsert
  keep_on_removed: false
  exclude: CreatedAt
types:
  - type: warehouse.Tag
    keep_on_removed: true
pairs:
  - source: store.Order
    target: warehouse.Order
    mode: update
    exclude: [Notes, Number]
    properties:
      Tags: { keep_on_removed: true }
`

func TestParse(t *testing.T) {
	mf, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	require.NotNil(t, mf)

	assert.Equal(t, "1", mf.Version)
	assert.Equal(t, "ID", mf.Defaults.Identity)
	assert.Equal(t, "upsert", mf.Defaults.Mode)
	require.NotNil(t, mf.Defaults.KeepOnRemoved)
	assert.False(t, *mf.Defaults.KeepOnRemoved)
	assert.Nil(t, mf.Defaults.ThrowOnRedundant)
	assert.Equal(t, StringOrArray{"CreatedAt"}, mf.Defaults.Exclude)

	require.Len(t, mf.Types, 1)
	assert.Equal(t, "warehouse.Tag", mf.Types[0].Type)
	assert.True(t, *mf.Types[0].KeepOnRemoved)

	require.Len(t, mf.Pairs, 1)
	pair := mf.Pairs[0]
	assert.Equal(t, "store.Order", pair.Source)
	assert.Equal(t, "warehouse.Order", pair.Target)
	assert.Equal(t, "update", pair.Mode)
	assert.Equal(t, StringOrArray{"Notes", "Number"}, pair.Exclude)
	require.Contains(t, pair.Properties, "Tags")
	assert.True(t, *pair.Properties["Tags"].KeepOnRemoved)
}

func TestParse_DefaultVersion(t *testing.T) {
	mf, err := Parse([]byte("pairs: []\n"))
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, mf.Version)

	mf, err = Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, mf.Version)
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse([]byte("defaults:\n  keep_on_remove: true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keep_on_remove")
}

func TestParse_BadExclude(t *testing.T) {
	_, err := Parse([]byte("defaults:\n  exclude: {a: b}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected string or array")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestNormalizeAndWrite(t *testing.T) {
	mf := &MappingFile{
		Version: CurrentVersion,
		Pairs: []PairSettings{
			{Source: "store.Tag", Target: "warehouse.Tag", Mode: " Insert "},
			{Source: "store.Order", Target: "warehouse.Order", Exclude: StringOrArray{"Notes", "ID", "Notes"}},
		},
		Types: []TypeSettings{{Type: "warehouse.Tag"}, {Type: "warehouse.Address"}},
	}

	Normalize(mf)

	assert.Equal(t, "store.Order", mf.Pairs[0].Source)
	assert.Equal(t, StringOrArray{"ID", "Notes"}, mf.Pairs[0].Exclude)
	assert.Equal(t, "insert", mf.Pairs[1].Mode)
	assert.Equal(t, "warehouse.Address", mf.Types[0].Type)

	path := filepath.Join(t.TempDir(), "mapping.yaml")
	require.NoError(t, WriteFile(mf, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, mf, loaded)
}

func TestMarshal_SingleExclude(t *testing.T) {
	data, err := Marshal(&MappingFile{
		Version:  CurrentVersion,
		Defaults: Defaults{Exclude: StringOrArray{"CreatedAt"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "version: \"1\"\ndefaults:\n  exclude: CreatedAt\n", string(data))
}
