package messageplugin

import (
	"bytes"
	"io"
	"strings"

	"github.com/golly-go/messageplugin/env"
	"github.com/golly-go/messageplugin/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// NewLogger configures a logrus logger from config: level from log.level,
// format from log.format falling back to text in development and json elsewhere.
func NewLogger(v *viper.Viper, out io.Writer) (*log.Logger, error) {
	logger := log.New()

	if out != nil {
		logger.SetOutput(out)
	}

	name := v.GetString(ConfigLogLevel)
	if name == "" {
		name = log.InfoLevel.String()
	}

	level, err := log.ParseLevel(name)
	if err != nil {
		return nil, errors.SetData(errors.Wrap(errors.ErrorConfig, err), "key", ConfigLogLevel)
	}
	logger.SetLevel(level)

	switch format := strings.ToLower(v.GetString(ConfigLogFormat)); format {
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	case "text":
		logger.SetFormatter(&log.TextFormatter{})
	case "":
		if !env.Current().IsDevelopment() {
			logger.SetFormatter(&log.JSONFormatter{})
		}
	default:
		return nil, errors.SetData(errors.Errorf(errors.ErrorConfig, "unknown log format %q", format), "key", ConfigLogFormat)
	}

	return logger, nil
}

// logWriter turns every line written to it into an Info entry. It refuses
// writes while Info is disabled instead of dropping them.
type logWriter struct {
	entry *log.Entry
}

func newLogWriter(entry *log.Entry) (*logWriter, error) {
	w := &logWriter{entry: entry.WithField("sink", "plugin")}
	if err := w.enabled(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *logWriter) enabled() error {
	if w.entry.Logger.IsLevelEnabled(log.InfoLevel) {
		return nil
	}

	return errors.SetData(
		errors.Errorf(errors.ErrorInvalidOutput, "%s sink needs log level info or more verbose, got %s", SinkLog, w.entry.Logger.GetLevel()),
		"sink", SinkLog,
	)
}

func (w *logWriter) Write(p []byte) (int, error) {
	if err := w.enabled(); err != nil {
		return 0, err
	}

	for _, line := range bytes.Split(bytes.TrimSuffix(p, []byte("\n")), []byte("\n")) {
		w.entry.Info(string(line))
	}
	return len(p), nil
}
