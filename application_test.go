package messageplugin

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/golly-go/messageplugin/errors"
	"github.com/golly-go/messageplugin/utils"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplication_Defaults(t *testing.T) {
	var out bytes.Buffer
	app := newTestApplication(t, Options{Output: &out})

	assert.Equal(t, defaultName, app.Name)
	assert.Equal(t, Version(), app.Version)
	assert.True(t, utils.IsValidUUID(app.ID))
	assert.Equal(t, StateInitialized, app.State())
	assert.Equal(t, []string{"message"}, app.Plugins().Names())

	require.NoError(t, app.Log("hello"))
	assert.Equal(t, "Plugin Message: hello\n", out.String())
}

func TestNewApplication_LogsWithInstanceFields(t *testing.T) {
	logger, hook := test.NewNullLogger()
	app := newTestApplication(t, Options{Name: "host", Version: "v9.9.9", Logger: logger, Output: &bytes.Buffer{}})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "application initialized", entry.Message)
	assert.Equal(t, "host", entry.Data["service"])
	assert.Equal(t, "v9.9.9", entry.Data["version"])
	assert.Equal(t, app.ID, entry.Data["instance"])
}

func TestApplication_LogTo(t *testing.T) {
	a, b := &recordingPlugin{name: "a"}, &recordingPlugin{name: "b"}
	app := newTestApplication(t, Options{Plugins: []Plugin{a, b}})

	require.NoError(t, app.LogTo("a", "only a"))
	assert.Equal(t, []any{"only a"}, a.messages)
	assert.Empty(t, b.messages)

	assert.True(t, errors.Is(app.LogTo("c", "nobody"), errors.ErrorPluginNotFound))
}

func TestApplication_PluginErrorsPropagate(t *testing.T) {
	app := newTestApplication(t, Options{Output: failingWriter{}})

	err := app.Log("hello")
	assert.ErrorIs(t, err, errSinkClosed)
}

func TestNewApplication_PluginInitializeFailure(t *testing.T) {
	cause := stderrors.New("no connection")
	logger, _ := test.NewNullLogger()

	app, err := NewApplication(Options{
		Config:  testConfig(nil),
		Logger:  logger,
		Plugins: []Plugin{&recordingPlugin{name: "broken", initErr: cause}},
	})

	assert.Nil(t, app)
	assert.True(t, errors.Is(err, errors.ErrorPluginInitialize))
	assert.ErrorIs(t, err, cause)
}

func TestNewApplication_DuplicatePlugins(t *testing.T) {
	logger, _ := test.NewNullLogger()

	_, err := NewApplication(Options{
		Config:  testConfig(nil),
		Logger:  logger,
		Plugins: []Plugin{&recordingPlugin{name: "a"}, &recordingPlugin{name: "a"}},
	})

	assert.True(t, errors.Is(err, errors.ErrorPluginDuplicate))
}

func TestApplication_ShutdownIsIdempotent(t *testing.T) {
	var calls []string
	app := newTestApplication(t, Options{Plugins: []Plugin{&recordingPlugin{name: "a", calls: &calls}}})

	require.NoError(t, app.Shutdown())
	require.NoError(t, app.Shutdown())

	assert.Equal(t, StateShutdown, app.State())
	assert.Equal(t, []string{"init:a", "deinit:a"}, calls)
}

func TestApplication_Sinks(t *testing.T) {
	t.Run("log sink writes entries", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		app := newTestApplication(t, Options{
			Config: testConfig(map[string]any{ConfigOutputSink: SinkLog}),
			Logger: logger,
		})

		require.NoError(t, app.Log("hello"))

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, logrus.InfoLevel, entry.Level)
		assert.Equal(t, "Plugin Message: hello", entry.Message)
		assert.Equal(t, "plugin", entry.Data["sink"])
	})

	t.Run("file sink appends lines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "messages.log")
		require.NoError(t, os.WriteFile(path, []byte("existing\n"), 0o644))

		app := newTestApplication(t, Options{
			Config: testConfig(map[string]any{ConfigOutputSink: SinkFile, ConfigOutputPath: path}),
		})

		require.NoError(t, app.Log("hello"))
		require.NoError(t, app.Log(42))
		require.NoError(t, app.Shutdown())

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "existing\nPlugin Message: hello\nPlugin Message: 42\n", string(b))
	})

	t.Run("stdout and stderr", func(t *testing.T) {
		assert.Equal(t, os.Stdout, newTestApplication(t, Options{}).Output())
		assert.Equal(t, os.Stderr, newTestApplication(t, Options{
			Config: testConfig(map[string]any{ConfigOutputSink: SinkStderr}),
		}).Output())
	})

	t.Run("explicit output wins over config", func(t *testing.T) {
		var out bytes.Buffer
		app := newTestApplication(t, Options{
			Config: testConfig(map[string]any{ConfigOutputSink: SinkStderr}),
			Output: &out,
		})

		assert.Equal(t, &out, app.Output())
	})
}

func TestOpenSink_Errors(t *testing.T) {
	entry := logrus.NewEntry(logrus.New())

	tests := []struct {
		name   string
		values map[string]any
	}{
		{name: "unknown sink", values: map[string]any{ConfigOutputSink: "pigeon"}},
		{name: "file without path", values: map[string]any{ConfigOutputSink: SinkFile}},
		{name: "file in missing directory", values: map[string]any{
			ConfigOutputSink: SinkFile,
			ConfigOutputPath: filepath.Join(t.TempDir(), "missing", "out.log"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := OpenSink(testConfig(tt.values), entry)
			assert.True(t, errors.Is(err, errors.ErrorInvalidOutput), "got %v", err)
		})
	}
}

func TestLogWriter_SplitsLines(t *testing.T) {
	logger, hook := test.NewNullLogger()
	w, err := newLogWriter(logrus.NewEntry(logger))
	require.NoError(t, err)

	n, err := w.Write([]byte("one\ntwo\n"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	require.Len(t, hook.AllEntries(), 2)
	assert.Equal(t, "one", hook.AllEntries()[0].Message)
	assert.Equal(t, "two", hook.AllEntries()[1].Message)
}

type failingCloser struct{ err error }

func (c failingCloser) Close() error { return c.err }

func TestNewApplication_BareConfig(t *testing.T) {
	var out bytes.Buffer

	app, err := NewApplication(Options{Config: viper.New(), Output: &out})
	require.NoError(t, err)

	assert.Equal(t, SinkStdout, app.Config().GetString(ConfigOutputSink))
	assert.Equal(t, "info", app.Config().GetString(ConfigLogLevel))

	require.NoError(t, app.Log("hello"))
	assert.Equal(t, "Plugin Message: hello\n", out.String())
}

func TestNewApplication_SuppliedConfigKeepsValues(t *testing.T) {
	v := viper.New()
	v.Set(ConfigLogLevel, "debug")

	app := newTestApplication(t, Options{Config: v, Output: &bytes.Buffer{}})
	assert.Equal(t, "debug", app.Config().GetString(ConfigLogLevel))
}

func TestApplication_LogSinkNeedsInfoLevel(t *testing.T) {
	t.Run("rejected when info is disabled", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		logger.SetLevel(logrus.WarnLevel)

		app, err := NewApplication(Options{
			Config: testConfig(map[string]any{ConfigOutputSink: SinkLog}),
			Logger: logger,
		})

		assert.Nil(t, app)
		assert.True(t, errors.Is(err, errors.ErrorInvalidOutput), "got %v", err)
		assert.Empty(t, hook.AllEntries())
	})

	t.Run("writes fail once info is disabled", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		app := newTestApplication(t, Options{
			Config: testConfig(map[string]any{ConfigOutputSink: SinkLog}),
			Logger: logger,
		})
		hook.Reset()

		logger.SetLevel(logrus.ErrorLevel)

		err := app.Log("hello")
		assert.True(t, errors.Is(err, errors.ErrorInvalidOutput), "got %v", err)
		assert.Empty(t, hook.AllEntries())
	})
}

func TestNewApplication_ClosesSinkOnFailure(t *testing.T) {
	closeErr := stderrors.New("close failed")

	orig := openSink
	openSink = func(*viper.Viper, *logrus.Entry) (io.Writer, io.Closer, error) {
		return io.Discard, failingCloser{err: closeErr}, nil
	}
	defer func() { openSink = orig }()

	t.Run("initialize failure", func(t *testing.T) {
		cause := stderrors.New("no connection")

		_, err := NewApplication(Options{
			Config:  testConfig(nil),
			Logger:  nullLogger(),
			Plugins: []Plugin{&recordingPlugin{name: "broken", initErr: cause}},
		})

		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, closeErr)
		assert.True(t, errors.Is(err, errors.ErrorPluginInitialize))
	})

	t.Run("register failure", func(t *testing.T) {
		_, err := NewApplication(Options{
			Config:  testConfig(nil),
			Logger:  nullLogger(),
			Plugins: []Plugin{&recordingPlugin{name: "a"}, &recordingPlugin{name: "a"}},
		})

		assert.ErrorIs(t, err, closeErr)
		assert.True(t, errors.Is(err, errors.ErrorPluginDuplicate))
	})
}
