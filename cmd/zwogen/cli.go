package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/hpungsan/zwogen/internal/config"
	"github.com/hpungsan/zwogen/internal/errors"
	"github.com/hpungsan/zwogen/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "zwogen",
		Usage:   "Convert recorded rides into Zwift workout files",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "Enable debug logging"},
		},
		Before: func(c *cli.Context) error {
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
			if c.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.WarnLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			convertCmd(db, cfg),
			inspectCmd(db, cfg),
			previewCmd(db, cfg),
			profileCmd(db),
			historyCmd(db),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// ftpFlags are shared by the commands that resolve a rider FTP.
func ftpFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "profile", Aliases: []string{"p"}, Usage: "Stored profile name to take FTP from"},
		&cli.IntFlag{Name: "ftp", Usage: "Rider FTP in watts"},
	}
}

// convertCmd creates the convert command.
func convertCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert a ride (.json or .fit) into a Zwift workout (.zwo) file",
		ArgsUsage: "<source>",
		Flags: append(ftpFlags(),
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output .zwo path (default: source with .zwo extension)"},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Workout name (default: source filename)"},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Workout description"},
		),
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("source path is required"))
			}

			output, err := ops.Convert(c.Context, db, cfg, ops.ConvertInput{
				SourcePath:  c.Args().First(),
				OutputPath:  c.String("output"),
				Profile:     c.String("profile"),
				FTPWatts:    c.Int("ftp"),
				Name:        c.String("name"),
				Description: c.String("description"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// inspectCmd creates the inspect command.
func inspectCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show the segment list a conversion would produce (writes nothing)",
		ArgsUsage: "<source>",
		Flags: append(ftpFlags(),
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Workout name (default: source filename)"},
		),
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("source path is required"))
			}

			output, err := ops.Inspect(c.Context, db, cfg, ops.InspectInput{
				SourcePath: c.Args().First(),
				Profile:    c.String("profile"),
				FTPWatts:   c.Int("ftp"),
				Name:       c.String("name"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// previewCmd creates the preview command.
func previewCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "preview",
		Usage:     "Render an HTML page with the workout's target power chart",
		ArgsUsage: "<source>",
		Flags: append(ftpFlags(),
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output .html path (default: source with .html extension)"},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Workout name (default: source filename)"},
			&cli.StringFlag{Name: "notes", Usage: "Markdown notes rendered below the chart"},
		),
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("source path is required"))
			}

			output, err := ops.Preview(c.Context, db, cfg, ops.PreviewInput{
				SourcePath: c.Args().First(),
				OutputPath: c.String("output"),
				Profile:    c.String("profile"),
				FTPWatts:   c.Int("ftp"),
				Name:       c.String("name"),
				Notes:      c.String("notes"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// profileCmd creates the profile command group.
func profileCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Manage rider profiles",
		Subcommands: []*cli.Command{
			{
				Name:      "set",
				Usage:     "Create a profile or update its FTP",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "ftp", Required: true, Usage: "Rider FTP in watts"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return outputError(errors.NewInvalidRequest("profile name is required"))
					}
					output, err := ops.ProfileSet(db, ops.ProfileSetInput{
						Name:     c.Args().First(),
						FTPWatts: c.Int("ftp"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "get",
				Usage:     "Show a profile",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return outputError(errors.NewInvalidRequest("profile name is required"))
					}
					output, err := ops.ProfileGet(db, c.Args().First())
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "list",
				Usage: "List all profiles",
				Action: func(c *cli.Context) error {
					output, err := ops.ProfileList(db)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "rm",
				Usage:     "Delete a profile",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return outputError(errors.NewInvalidRequest("profile name is required"))
					}
					output, err := ops.ProfileDelete(db, c.Args().First())
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// historyCmd creates the history command.
func historyCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recent conversions, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum entries to return"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.History(db, ops.HistoryInput{Limit: c.Int("limit")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// outputJSON writes indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if convErr, ok := err.(*errors.ConvertError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", convErr.Code, convErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
