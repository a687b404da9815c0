package messageplugin

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/golly-go/messageplugin/errors"
	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type CLICommand func(*Application, *cobra.Command, []string) error

type pluginInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Run builds the root command and executes it against os.Args
func Run(options Options) {
	if err := NewRootCommand(options).Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand returns the CLI for a host built from options
func NewRootCommand(options Options) *cobra.Command {
	if options.Name == "" {
		options.Name = defaultName
	}
	name := options.Name

	flags := viper.New()

	root := &cobra.Command{
		Use:          name,
		Short:        "Send messages through registered plugins",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default searches $HOME/"+name+"/config.json and ./config.json)")
	pf.String("output", "", "output sink: "+strings.Join(Sinks, ", "))
	pf.String("output-path", "", "file written to by the file sink")
	pf.String("log-level", "", "log level (trace, debug, info, warn, error)")
	pf.String("log-format", "", "log format (text, json)")

	_ = flags.BindPFlag("config", pf.Lookup("config"))
	_ = flags.BindPFlag(ConfigOutputSink, pf.Lookup("output"))
	_ = flags.BindPFlag(ConfigOutputPath, pf.Lookup("output-path"))
	_ = flags.BindPFlag(ConfigLogLevel, pf.Lookup("log-level"))
	_ = flags.BindPFlag(ConfigLogFormat, pf.Lookup("log-format"))

	command := func(fn CLICommand) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			app, err := newCLIApplication(options, flags)
			if err != nil {
				return err
			}

			err = fn(app, cmd, args)
			if serr := app.Shutdown(); serr != nil {
				err = errors.Join(err, serr)
			}
			return err
		}
	}

	logCmd := &cobra.Command{
		Use:   "log [message...]",
		Short: "Send a message to every plugin (arguments are joined with spaces)",
		Args:  cobra.ArbitraryArgs,
		RunE:  command(logCommand),
	}
	logCmd.Flags().String("plugin", "", "only send to the named plugin")
	logCmd.Flags().Int("repeat", 1, "number of times to send the message")

	pluginsCmd := &cobra.Command{
		Use:   "plugins",
		Short: "List all registered plugins",
		Args:  cobra.NoArgs,
		RunE:  command(listPluginsCommand),
	}
	pluginsCmd.Flags().Bool("json", false, "print the list as JSON")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", name, versionOf(options))
		},
	}

	root.AddCommand(logCmd, pluginsCmd, versionCmd)

	return root
}

// newCLIApplication layers changed flags over the loaded configuration
func newCLIApplication(options Options, flags *viper.Viper) (*Application, error) {
	if options.Config == nil {
		v, err := NewConfig(options.Name, flags.GetString("config"))
		if err != nil {
			return nil, err
		}

		for _, key := range []string{ConfigOutputSink, ConfigOutputPath, ConfigLogLevel, ConfigLogFormat} {
			if val := flags.GetString(key); val != "" {
				v.Set(key, val)
			}
		}
		options.Config = v
	}

	return NewApplication(options)
}

func logCommand(app *Application, cmd *cobra.Command, args []string) error {
	target, _ := cmd.Flags().GetString("plugin")
	repeat, _ := cmd.Flags().GetInt("repeat")

	if repeat < 1 {
		return fmt.Errorf("--repeat must be at least 1, got %d", repeat)
	}

	message := strings.Join(args, " ")

	for i := 0; i < repeat; i++ {
		var err error
		if target != "" {
			err = app.LogTo(target, message)
		} else {
			err = app.Log(message)
		}

		if err != nil {
			return err
		}
	}
	return nil
}

func listPluginsCommand(app *Application, cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	names := app.Plugins().Names()
	infos := make([]pluginInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, pluginInfo{Name: name, Type: fmt.Sprintf("%T", app.Plugins().Get(name))})
	}

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), infos)
	}

	out := cmd.OutOrStdout()
	color.New(color.FgCyan, color.Bold).Fprintf(out, "Listing all plugins:\n")

	for pos, info := range infos {
		fmt.Fprintf(out, "\t %d. %s (%s)\n", pos+1, info.Name, info.Type)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

func versionOf(options Options) string {
	if options.Version != "" {
		return options.Version
	}
	return Version()
}
