package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/vitwit/inkcall"
	"github.com/vitwit/inkcall/types"
	"github.com/vitwit/inkcall/utils"
)

var app = &cli.App{
	Name:    "inkcall",
	Usage:   "build, dispatch and decode typed contract calls",
	Version: inkcall.Version,
	Flags: []cli.Flag{
		configFlag,
		logLevelFlag,
	},
	Commands: []*cli.Command{
		commandEncode,
		commandDecode,
		commandDemo,
		commandSelectors,
	},
}

// Commonly used command line flags.
var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML config file",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "log level (debug, info, warn, error), overrides the config",
	}
	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "output JSON instead of human-readable format",
	}
)

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the --config file, or the defaults without one, and
// applies --log-level on top.
func loadConfig(ctx *cli.Context) (*types.Config, error) {
	cfg := inkcall.DefaultConfig()
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = inkcall.LoadConfig(path); err != nil {
			return nil, err
		}
	}

	if level := ctx.String(logLevelFlag.Name); level != "" {
		cfg.LogLevel = level
		if err := utils.ValidateConfig(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func printJSON(v any) error {
	out, err := utils.NormalizeJSON(v)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
