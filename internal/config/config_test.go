package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LAYOUT_PORT", "9090")
	t.Setenv("LAYOUT_SHEET", "Planilha1")
	t.Setenv("LAYOUT_HEADER_WINDOW", "40")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", s.Port)
	assert.Equal(t, "Planilha1", s.Sheet)
	assert.Equal(t, 40, s.HeaderWindow)
	// demais campos mantêm o padrão
	assert.Equal(t, 35000, s.SerialMin)
}
