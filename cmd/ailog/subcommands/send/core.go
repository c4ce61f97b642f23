//
//  Copyright © Manetu Inc. All rights reserved.
//

package send

import (
	"context"

	"github.com/Chavda-Mitul/AI-Logger/cmd/ailog/common"
	pcommon "github.com/Chavda-Mitul/AI-Logger/pkg/common"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/types"
	"github.com/urfave/cli/v3"
)

// Command returns the definition of the send command.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "send",
		Usage: "Logs one AI interaction immediately and prints the server's response",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "prompt",
				Usage:    "The prompt sent to the model",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "output",
				Usage:    "The output returned by the model",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "model",
				Aliases:  []string{"m"},
				Usage:    "The model name, e.g. gpt-4o",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "user-id",
				Usage: "Hashed end-user identifier",
			},
			&cli.Int64Flag{
				Name:  "latency-ms",
				Usage: "Response latency in milliseconds",
			},
			&cli.StringMapFlag{
				Name:  "meta",
				Usage: "Extra metadata as `KEY=VALUE`.  Can be specified multiple times.",
			},
		}, common.ConnectionFlags()...),
		Action: Execute,
	}
}

// Execute runs the send command.
func Execute(ctx context.Context, cmd *cli.Command) error {
	out := cmd.Root().Writer

	in := types.Interaction{
		Prompt: cmd.String("prompt"),
		Output: cmd.String("output"),
		Model:  cmd.String("model"),
	}
	if cmd.IsSet("user-id") {
		in.UserIdentifier = types.String(cmd.String("user-id"))
	}
	if cmd.IsSet("latency-ms") {
		in.LatencyMs = types.Int64(cmd.Int64("latency-ms"))
	}
	if meta := cmd.StringMap("meta"); len(meta) > 0 {
		in.Metadata = make(map[string]interface{}, len(meta))
		for k, v := range meta {
			in.Metadata[k] = v
		}
	}

	logger, err := core.NewAILogger(common.LoggerOptions(cmd, out)...)
	if err != nil {
		return err
	}

	resp, err := logger.Log(ctx, in)
	if err != nil {
		return err
	}

	pcommon.PrettyPrint(out, resp)
	return nil
}
