package logging

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel(" INFO ")
	require.NoError(t, err)
	assert.Equal(t, jww.LevelInfo, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewThreshold(t *testing.T) {
	var out, logOut bytes.Buffer
	n := New(&out, &logOut, jww.LevelWarn)

	n.INFO.Println("hidden")
	n.WARN.Println("shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown")
	assert.Contains(t, logOut.String(), "shown")
}

func TestSetupLogFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	closer, err := Setup(fs, "debug", "/var/log/darwinsheet.log")
	require.NoError(t, err)

	Log.DEBUG.Println("checking log.xlsx")
	require.NoError(t, closer.Close())

	data, err := afero.ReadFile(fs, "/var/log/darwinsheet.log")
	require.NoError(t, err)
	assert.Contains(t, string(data), "checking log.xlsx")

	_, err = Setup(fs, "nope", "")
	assert.Error(t, err)
}
