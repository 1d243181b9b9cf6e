package logging

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depeter/tvhero/internal/config"
)

func resetLogger(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetFormatter(&logrus.TextFormatter{})
	})
}

func TestSetupLevel(t *testing.T) {
	resetLogger(t)

	_, err := Setup(afero.NewMemMapFs(), config.LogConfig{Level: "debug"})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	_, err = Setup(afero.NewMemMapFs(), config.LogConfig{Level: "chatty"})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestSetupWritesToFile(t *testing.T) {
	resetLogger(t)
	fs := afero.NewMemMapFs()

	closer, err := Setup(fs, config.LogConfig{Level: "info", JSON: true, File: "/logs/tvhero.log"})
	require.NoError(t, err)

	logrus.WithField("hero", "abc").Info("opened")
	require.NoError(t, closer.Close())

	data, err := afero.ReadFile(fs, "/logs/tvhero.log")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"hero":"abc"`)
	assert.Contains(t, string(data), `"msg":"opened"`)
}
