package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileFallsBackToDefault(t *testing.T) {
	proj, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), proj)
}

func TestLoadEmptyPathFallsBackToDefault(t *testing.T) {
	proj, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), proj)
}

func TestLoadDecodesProjectFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "compiscript.toml")
	contents := `
[project]
name = "myapp"
entry = "main.csc"

[output]
emit-tac = true
tac-path = "out.tac"
warnings-as-errors = true
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	proj, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "myapp", proj.Project.Name)
	assert.Equal(t, "main.csc", proj.Project.Entry)
	assert.True(t, proj.Output.EmitTac)
	assert.Equal(t, "out.tac", proj.Output.TacPath)
	assert.True(t, proj.Output.WarningsAsErrors)
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "compiscript.toml")
	require.NoError(t, os.WriteFile(path, []byte("not valid = = toml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
