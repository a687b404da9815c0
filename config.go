package messageplugin

import (
	"fmt"
	"strings"

	"github.com/golly-go/messageplugin/errors"
	"github.com/spf13/viper"
)

const (
	ConfigOutputSink = "output.sink"
	ConfigOutputPath = "output.path"
	ConfigLogLevel   = "log.level"
	ConfigLogFormat  = "log.format"
)

// NewConfig builds the viper configuration for an application. Without an
// explicit file it looks for config.json in $HOME/<name> and the working
// directory and carries on when none is found; an explicit file must exist.
func NewConfig(name, file string) (*viper.Viper, error) {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigType("json")
		v.AddConfigPath(fmt.Sprintf("$HOME/%s", name))
		v.AddConfigPath(".")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setConfigDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && file == "" {
			return v, nil
		}
		return nil, errors.Wrap(errors.ErrorConfig, err)
	}

	return v, nil
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault(ConfigOutputSink, SinkStdout)
	v.SetDefault(ConfigLogLevel, "info")
}
