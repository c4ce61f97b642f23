//
//  Copyright © Manetu Inc. All rights reserved.
//

package common

import (
	"io"

	"github.com/Chavda-Mitul/AI-Logger/pkg/core/options"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/transport"
	"github.com/urfave/cli/v3"
)

// Names of the flags shared by the commands that talk to the logging API.
const (
	FlagAPIKey    = "api-key"
	FlagProjectID = "project-id"
	FlagBaseURL   = "base-url"
	FlagTimeout   = "timeout"
	FlagDryRun    = "dry-run"
)

// ConnectionFlags returns the flags that override the API settings from the
// environment and the configuration file.
func ConnectionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  FlagAPIKey,
			Usage: "API key sent in the x-api-key header (default: $AILOG_API_KEY)",
		},
		&cli.StringFlag{
			Name:  FlagProjectID,
			Usage: "Project ID sent in the x-project-id header (default: $AILOG_PROJECT_ID)",
		},
		&cli.StringFlag{
			Name:  FlagBaseURL,
			Usage: "Override the API base URL, e.g. http://localhost:9000 for 'ailog serve'",
		},
		&cli.DurationFlag{
			Name:  FlagTimeout,
			Usage: "HTTP request timeout",
		},
		&cli.BoolFlag{
			Name:  FlagDryRun,
			Usage: "Print requests to stdout instead of sending them",
		},
	}
}

// LoggerOptions converts the connection flags that were set on cmd into
// logger options. When --dry-run is set, requests are written to out.
func LoggerOptions(cmd *cli.Command, out io.Writer) []options.LoggerOptionsFunc {
	var opts []options.LoggerOptionsFunc
	if cmd.IsSet(FlagAPIKey) {
		opts = append(opts, options.WithAPIKey(cmd.String(FlagAPIKey)))
	}
	if cmd.IsSet(FlagProjectID) {
		opts = append(opts, options.WithProjectID(cmd.String(FlagProjectID)))
	}
	if cmd.IsSet(FlagBaseURL) {
		opts = append(opts, options.WithBaseURL(cmd.String(FlagBaseURL)))
	}
	if cmd.IsSet(FlagTimeout) {
		opts = append(opts, options.WithTimeout(cmd.Duration(FlagTimeout)))
	}
	if cmd.Bool(FlagDryRun) {
		opts = append(opts, options.WithTransport(
			transport.NewWriterTransport(out, transport.WriterOptions{PrettyPrint: true})))
	}
	return opts
}
