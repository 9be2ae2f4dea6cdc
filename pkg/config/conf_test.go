package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOrCreate_CreatesDefault(t *testing.T) {
	dir := t.TempDir()

	c, err := ReadOrCreate(dir)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "json", c.Format)
	assert.False(t, c.LegacyHardware)
}

func TestConfig_SaveRoundtrip(t *testing.T) {
	dir := t.TempDir()

	c1, err := ReadOrCreate(dir)
	require.NoError(t, err)

	c1.Format = "yaml"
	c1.LegacyHardware = true
	require.NoError(t, Save(dir, c1))

	c2, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, c1.Format, c2.Format)
	assert.Equal(t, c1.LegacyHardware, c2.LegacyHardware)
}

func TestReadOrCreate_EmptyDir(t *testing.T) {
	_, err := ReadOrCreate("")
	assert.Error(t, err)
}

func TestSave_NilConfig(t *testing.T) {
	err := Save(t.TempDir(), nil)
	assert.Error(t, err)
}
