package load

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geosemantic/skosload/internal/conf"
)

func TestValidateRequiresFileAndName(t *testing.T) {
	settings := &conf.Settings{}

	err := validate(settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--file")

	settings.Import.File = "gemet.rdf"
	err = validate(settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--name")

	settings.Import.Name = "gemet"
	assert.NoError(t, validate(settings))
}

func TestCommandFlagDefaults(t *testing.T) {
	settings := &conf.Settings{}
	cmd := Command(settings)

	require.NoError(t, cmd.ParseFlags([]string{"--file", "gemet.rdf", "--name", "gemet"}))

	assert.Equal(t, "gemet.rdf", settings.Import.File)
	assert.Equal(t, "gemet", settings.Import.Name)
	assert.Equal(t, "en", settings.Import.DefaultLang)
	assert.Empty(t, settings.Import.Languages)
	assert.False(t, settings.Import.DryRun)
	assert.Equal(t, 10, settings.Import.SampleSize)
}
