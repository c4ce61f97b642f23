//
//  Copyright © Manetu Inc. All rights reserved.
//

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Chavda-Mitul/AI-Logger/cmd/ailog/subcommands/batch"
	"github.com/Chavda-Mitul/AI-Logger/cmd/ailog/subcommands/send"
	"github.com/Chavda-Mitul/AI-Logger/cmd/ailog/subcommands/serve"
	"github.com/Chavda-Mitul/AI-Logger/internal/logging"
	"github.com/Chavda-Mitul/AI-Logger/internal/version"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/config"
	"github.com/urfave/cli/v3"
)

var logger = logging.GetLogger("ailog.cli")

func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if err := config.Load(); err != nil {
		return ctx, err
	}
	if cmd.Bool("debug") {
		if err := logging.UpdateLogLevels(".:debug"); err != nil {
			return ctx, err
		}
		logger.SysDebugf("debug logging enabled")
	}
	return ctx, nil
}

func main() {
	cmd := &cli.Command{
		Name:    "ailog",
		Usage:   "A CLI application for logging AI interactions to the compliance API",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Enable debug logging to stderr",
				Value:   logger.IsDebugEnabled(),
			},
		},
		Before: before,
		Commands: []*cli.Command{
			send.Command(),
			batch.Command(),
			serve.Command(),
			{
				Name:  "version",
				Usage: "Prints the version of the SDK",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					_, err := fmt.Fprintln(cmd.Root().Writer, version.GetVersion())
					return err
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
