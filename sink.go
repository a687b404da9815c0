package messageplugin

import (
	"io"
	"os"
	"strings"

	"github.com/golly-go/messageplugin/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	SinkStdout = "stdout"
	SinkStderr = "stderr"
	SinkFile   = "file"
	SinkLog    = "log"
)

// Sinks lists the output sink names understood by OpenSink
var Sinks = []string{SinkStdout, SinkStderr, SinkFile, SinkLog}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenSink resolves output.sink into the writer plugins write to. The returned
// closer must be closed on shutdown; it is a no-op for the standard streams.
func OpenSink(v *viper.Viper, entry *log.Entry) (io.Writer, io.Closer, error) {
	sink := strings.ToLower(v.GetString(ConfigOutputSink))

	switch sink {
	case SinkStdout, "":
		return os.Stdout, nopCloser{}, nil
	case SinkStderr:
		return os.Stderr, nopCloser{}, nil
	case SinkLog:
		w, err := newLogWriter(entry)
		if err != nil {
			return nil, nil, err
		}
		return w, nopCloser{}, nil
	case SinkFile:
		path := v.GetString(ConfigOutputPath)
		if path == "" {
			return nil, nil, errors.SetData(
				errors.Errorf(errors.ErrorInvalidOutput, "%s requires %s", SinkFile, ConfigOutputPath),
				"sink", sink,
			)
		}

		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, errors.SetData(errors.Wrap(errors.ErrorInvalidOutput, err), "path", path)
		}
		return f, f, nil
	}

	return nil, nil, errors.SetData(
		errors.Errorf(errors.ErrorInvalidOutput, "unknown sink %q, expected one of %s", sink, strings.Join(Sinks, ", ")),
		"sink", sink,
	)
}
