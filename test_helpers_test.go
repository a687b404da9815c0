package messageplugin

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func testConfig(values map[string]any) *viper.Viper {
	v := viper.New()
	setConfigDefaults(v)

	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

// newTestApplication fills in config and a null logger so tests never touch
// the real environment
func newTestApplication(t *testing.T, options Options) *Application {
	t.Helper()

	if options.Config == nil {
		options.Config = testConfig(nil)
	}

	if options.Logger == nil {
		options.Logger, _ = test.NewNullLogger()
	}

	app, err := NewApplication(options)
	require.NoError(t, err)

	return app
}

func nullLogger() *logrus.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}
