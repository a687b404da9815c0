package messageplugin

import (
	"io"
	"sync"
	"time"

	"github.com/golly-go/messageplugin/env"
	"github.com/golly-go/messageplugin/errors"
	"github.com/golly-go/messageplugin/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const defaultName = "messageplugin"

// openSink is swapped in tests to inject sinks that fail on close
var openSink = OpenSink

type ApplicationState string

const (
	StateStarting    ApplicationState = "starting"
	StateInitialized ApplicationState = "initialized"
	StateShutdown    ApplicationState = "shutdown"
	StateErrored     ApplicationState = "errored"
)

// Options configures NewApplication. Zero values fall back to configuration.
type Options struct {
	Name    string
	Version string

	// ConfigFile is read instead of searching for config.json
	ConfigFile string

	// Config replaces configuration loading entirely
	Config *viper.Viper

	// Logger replaces the logger built from config
	Logger *log.Logger

	// Output replaces the sink named by output.sink
	Output io.Writer

	// Plugins defaults to a single MessagePlugin bound to the output sink
	Plugins []Plugin
}

// Application owns the configuration, logger, output sink and plugins of a
// running host.
type Application struct {
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Env       env.Name  `json:"env"`

	config  *viper.Viper
	logger  *log.Entry
	plugins *PluginManager

	out    io.Writer
	closer io.Closer

	mu    sync.Mutex
	state ApplicationState
}

func (a *Application) Config() *viper.Viper    { return a.config }
func (a *Application) Logger() *log.Entry      { return a.logger }
func (a *Application) Plugins() *PluginManager { return a.plugins }
func (a *Application) Output() io.Writer       { return a.out }

func (a *Application) State() ApplicationState {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.state
}

// NewApplication loads configuration, builds the logger, opens the output
// sink and initializes every plugin.
func NewApplication(options Options) (*Application, error) {
	a := &Application{
		Name:      options.Name,
		Version:   options.Version,
		ID:        utils.NewInstanceID(),
		StartedAt: time.Now(),
		Env:       env.Current(),
		config:    options.Config,
		state:     StateStarting,
	}

	if a.Name == "" {
		a.Name = defaultName
	}

	if a.Version == "" {
		a.Version = Version()
	}

	if a.config == nil {
		v, err := NewConfig(a.Name, options.ConfigFile)
		if err != nil {
			return nil, err
		}
		a.config = v
	} else {
		setConfigDefaults(a.config)
	}

	logger := options.Logger
	if logger == nil {
		l, err := NewLogger(a.config, nil)
		if err != nil {
			return nil, err
		}
		logger = l
	}

	a.logger = logger.WithFields(log.Fields{
		"service":  a.Name,
		"version":  a.Version,
		"env":      a.Env,
		"instance": a.ID,
	})

	a.out, a.closer = options.Output, nopCloser{}
	if a.out == nil {
		out, closer, err := openSink(a.config, a.logger)
		if err != nil {
			return nil, err
		}
		a.out, a.closer = out, closer
	}

	plugins := options.Plugins
	if len(plugins) == 0 {
		plugins = []Plugin{NewMessagePlugin(a.out)}
	}

	a.plugins = NewPluginManager()
	for _, p := range plugins {
		if err := a.plugins.Register(p); err != nil {
			return nil, a.closeOnError(err)
		}
		a.logger.WithField("plugin", PluginName(p)).Debug("plugin registered")
	}

	if err := a.plugins.initialize(a); err != nil {
		a.state = StateErrored
		return nil, a.closeOnError(err)
	}

	a.state = StateInitialized
	a.logger.WithField("plugins", a.plugins.Names()).Info("application initialized")

	return a, nil
}

// closeOnError closes the sink of an application that failed to start
func (a *Application) closeOnError(err error) error {
	if cerr := a.closer.Close(); cerr != nil {
		return errors.Join(err, cerr)
	}
	return err
}

// Log broadcasts message to every registered plugin
func (a *Application) Log(message any) error {
	return a.plugins.Broadcast(message)
}

// LogTo sends message to the plugin registered under name
func (a *Application) LogTo(name string, message any) error {
	return a.plugins.Log(name, message)
}

// Shutdown deinitializes plugins and closes the output sink. Calling it more
// than once is a no-op.
func (a *Application) Shutdown() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == StateShutdown {
		return nil
	}
	a.state = StateShutdown

	err := a.plugins.deinitialize(a)
	if cerr := a.closer.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}

	if err != nil {
		a.logger.WithError(err).Error("application shutdown with errors")
		return err
	}

	a.logger.WithField("uptime", time.Since(a.StartedAt).String()).Info("application shutdown")
	return nil
}
