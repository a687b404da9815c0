/*
Package messageplugin is a small plugin host built around one capability: Log.

# Overview

Every plugin implements Plugin, a single Log(message any) error method. The
host holds plugins only as Plugin and dispatches to them by name or to all of
them at once. Optional behaviour (naming, initialization, shutdown) is picked
up through the PluginNamer, PluginInitializer and PluginDeinitializer
interfaces when a plugin implements them.

MessagePlugin is the bundled plugin. It writes each message to an injected
io.Writer as one line:

	Plugin Message: <message>

# Usage

	app, err := messageplugin.NewApplication(messageplugin.Options{Name: "my-app"})
	if err != nil {
		log.Fatal(err)
	}
	defer app.Shutdown()

	app.Log("hello") // Plugin Message: hello

# Configuration

Configuration is loaded with viper from config.json in $HOME/<name> or the
working directory, or from the file given with --config. Keys can be set
through the environment with dots replaced by underscores (OUTPUT_SINK).

  - output.sink: stdout, stderr, file or log
  - output.path: file written to by the file sink
  - log.level: logrus level, info by default
  - log.format: text or json; json outside development when unset
*/
package messageplugin
