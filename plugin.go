package messageplugin

// Plugin is the capability every plugin must provide. A host holds plugins as
// Plugin and calls Log without knowing the concrete type.
type Plugin interface {
	// Log hands message to the plugin. Errors from the plugin's sink are
	// returned as-is.
	Log(message any) error
}

// PluginNamer lets a plugin pick the name it is registered under.
// Unnamed plugins are registered under their Go type name.
type PluginNamer interface {
	Name() string
}

// PluginInitializer is called once when the owning application starts
type PluginInitializer interface {
	Initialize(app *Application) error
}

// PluginDeinitializer is called when the owning application shuts down
type PluginDeinitializer interface {
	Deinitialize(app *Application) error
}

type PluginList []Plugin
