package cli

import (
	"flag"
)

type Options struct {
	ConfigDir  string
	ConfigName string
	PrintHelp  bool
}

var opts = Options{}

var EnvMessage = `If you don't set -config-dir and -config-name on the command line,
this requires the following environment vars:

APP_CONFIG_DIR - Path to the directory containing the .env settings file.

APP_ENV - Name of the configuration to load. For example:
    test - Loads .env.test from APP_CONFIG_DIR
    prod - Loads .env.prod from APP_CONFIG_DIR

Any setting in the .env file can be overridden by an environment
variable of the same name.
`

func Init() {
	flag.StringVar(&opts.ConfigDir, "config-dir", "", "Directory containing the .env settings file")
	flag.StringVar(&opts.ConfigName, "config-name", "", "Name of the config to load. For example, 'dev' loads .env.dev")
	flag.BoolVar(&opts.PrintHelp, "help", false, "Print help message")
}

func ParseOpts() Options {
	flag.Parse()
	return opts
}

// ParseArgs parses args with a private flag set. It's for tests, which
// can't call flag.Parse more than once.
func ParseArgs(args []string) (Options, error) {
	options := Options{}
	flags := flag.NewFlagSet("disaster_upload_server", flag.ContinueOnError)
	flags.StringVar(&options.ConfigDir, "config-dir", "", "")
	flags.StringVar(&options.ConfigName, "config-name", "", "")
	flags.BoolVar(&options.PrintHelp, "help", false, "")
	err := flags.Parse(args)
	return options, err
}

// HasConfig returns true if both -config-dir and -config-name were set.
func (o Options) HasConfig() bool {
	return o.ConfigDir != "" && o.ConfigName != ""
}

func PrintDefaults() {
	flag.PrintDefaults()
}
