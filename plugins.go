package messageplugin

import (
	"fmt"
	"sync"

	"github.com/golly-go/messageplugin/errors"
)

// PluginManager holds the registered plugins in registration order and
// dispatches messages to them through the Plugin capability.
type PluginManager struct {
	mu      sync.RWMutex
	order   []string
	plugins map[string]Plugin
}

// NewPluginManager creates a new manager. Plugins that cannot be registered
// (nil or duplicate names) are skipped; use Register to see the error.
func NewPluginManager(plugins ...Plugin) *PluginManager {
	pm := &PluginManager{plugins: make(map[string]Plugin, len(plugins))}

	for pos := range plugins {
		_ = pm.Register(plugins[pos])
	}

	return pm
}

// PluginName returns the name a plugin is registered under
func PluginName(p Plugin) string {
	if n, ok := p.(PluginNamer); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", p)
}

func (pm *PluginManager) Register(p Plugin) error {
	if p == nil {
		return errors.Errorf(errors.ErrorInvalidPlugin, "nil plugin")
	}

	name := PluginName(p)

	pm.mu.Lock()
	defer pm.mu.Unlock()

	if _, exists := pm.plugins[name]; exists {
		return errors.SetData(
			errors.Errorf(errors.ErrorPluginDuplicate, "plugin %q already registered", name),
			"plugin", name,
		)
	}

	pm.plugins[name] = p
	pm.order = append(pm.order, name)

	return nil
}

// Get returns the plugin registered under name or nil
func (pm *PluginManager) Get(name string) Plugin {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	return pm.plugins[name]
}

// Names returns plugin names in registration order
func (pm *PluginManager) Names() []string {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	return append([]string(nil), pm.order...)
}

func (pm *PluginManager) Len() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	return len(pm.order)
}

func (pm *PluginManager) list() []Plugin {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	ret := make([]Plugin, 0, len(pm.order))
	for _, name := range pm.order {
		ret = append(ret, pm.plugins[name])
	}
	return ret
}

// Log sends message to a single plugin. The plugin's error is returned unchanged.
func (pm *PluginManager) Log(name string, message any) error {
	p := pm.Get(name)
	if p == nil {
		return errors.SetData(
			errors.Errorf(errors.ErrorPluginNotFound, "plugin %q not registered", name),
			"plugin", name,
		)
	}

	return p.Log(message)
}

// Broadcast sends message to every plugin in registration order. A failing
// plugin does not stop the rest; failures are joined unchanged.
func (pm *PluginManager) Broadcast(message any) error {
	var errs []error

	for _, p := range pm.list() {
		if err := p.Log(message); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// initialize stops at the first plugin that fails and deinitializes the
// plugins started before it
func (pm *PluginManager) initialize(app *Application) error {
	plugins := pm.list()

	for pos, p := range plugins {
		pi, ok := p.(PluginInitializer)
		if !ok {
			continue
		}

		if err := pi.Initialize(app); err != nil {
			err = errors.SetData(
				errors.Wrap(errors.ErrorPluginInitialize, err),
				"plugin", PluginName(p),
			)
			if derr := deinitializePlugins(app, plugins[:pos]); derr != nil {
				err = errors.Join(err, derr)
			}
			return err
		}

		app.logger.WithField("plugin", PluginName(p)).Debug("plugin initialized")
	}
	return nil
}

// deinitialize runs in reverse registration order and collects every failure
func (pm *PluginManager) deinitialize(app *Application) error {
	return deinitializePlugins(app, pm.list())
}

func deinitializePlugins(app *Application, plugins []Plugin) error {
	var deinitErrors []error

	for pos := len(plugins) - 1; pos >= 0; pos-- {
		pd, ok := plugins[pos].(PluginDeinitializer)
		if !ok {
			continue
		}

		if err := pd.Deinitialize(app); err != nil {
			deinitErrors = append(deinitErrors, fmt.Errorf("failed to deinitialize plugin %s: %w", PluginName(plugins[pos]), err))
		}
	}

	return errors.Join(deinitErrors...)
}

// GetPlugin retrieves a plugin by name with type safety, returning the zero
// value when it is missing or of another type.
//
// Usage:
//
//	mp := messageplugin.GetPlugin[*messageplugin.MessagePlugin](app.Plugins(), "message")
//	if mp != nil {
//	    mp.Log("hello")
//	}
func GetPlugin[T Plugin](pm *PluginManager, name string) T {
	var zero T

	if pm == nil {
		return zero
	}

	if plugin, ok := pm.Get(name).(T); ok {
		return plugin
	}

	return zero
}
