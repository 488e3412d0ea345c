package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                      "iosconfig",
		Usage:                     "generate IOS device configuration from NetJSON",
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "log level (debug|info|warn|error)",
				EnvVars: []string{"IOSCONFIG_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			renderCommand(),
			optionsCommand(),
		},
	}
}

// 两个子命令共用的选项来源。
func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "NetJSON input (repeat to layer files; default: stdin)",
			EnvVars: []string{"IOSCONFIG_INPUT"},
		},
		&cli.StringFlag{
			Name:    "profile",
			Aliases: []string{"p"},
			Usage:   "option profile (.toml, .yaml, .hcl)",
			EnvVars: []string{"IOSCONFIG_PROFILE"},
		},
		&cli.StringSliceFlag{
			Name:    "set",
			Usage:   "option override as name=value (repeatable)",
			EnvVars: []string{"IOSCONFIG_SET"},
		},
	}
}

func renderCommand() *cli.Command {
	flags := append(sourceFlags(),
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output path (default: stdout)",
			EnvVars: []string{"IOSCONFIG_OUTPUT"},
		},
		&cli.StringFlag{
			Name:    "diff",
			Usage:   "compare the generated text with an existing configuration instead of writing it",
			EnvVars: []string{"IOSCONFIG_DIFF"},
		},
		&cli.StringFlag{
			Name:    "files-dir",
			Usage:   "directory for additional files",
			EnvVars: []string{"IOSCONFIG_FILES_DIR"},
		},
		&cli.StringFlag{
			Name:    "tag",
			Usage:   "generation tag written to the header",
			EnvVars: []string{"IOSCONFIG_TAG"},
		},
		&cli.StringFlag{
			Name:    "identity",
			Usage:   "tool identity shown in the banner",
			EnvVars: []string{"IOSCONFIG_IDENTITY"},
		},
		&cli.StringFlag{
			Name:    "trailer",
			Value:   "end",
			Usage:   "line emitted after the last block (empty to disable)",
			EnvVars: []string{"IOSCONFIG_TRAILER"},
		},
		&cli.BoolFlag{
			Name:    "strict",
			Usage:   "validate option values against their types",
			EnvVars: []string{"IOSCONFIG_STRICT"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "maximum render time",
			EnvVars: []string{"IOSCONFIG_TIMEOUT"},
		},
	)
	return &cli.Command{
		Name:   "render",
		Usage:  "render NetJSON into an IOS startup configuration",
		Flags:  flags,
		Action: runRender,
	}
}

func optionsCommand() *cli.Command {
	flags := append(sourceFlags(),
		&cli.BoolFlag{
			Name:    "json",
			Usage:   "print the registry as JSON",
			EnvVars: []string{"IOSCONFIG_JSON"},
		},
	)
	return &cli.Command{
		Name:   "options",
		Usage:  "list the option registry by group",
		Flags:  flags,
		Action: runOptions,
	}
}
