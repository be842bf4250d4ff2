// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles database setup and maintenance.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:   "status",
				Usage:  "Show applied and pending migrations",
				Action: r.SetupStatus,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Action: r.SetupRollback,
			},
		},
	}
}

// boardCommand handles one-shot edits of the saved workspace board.
func boardCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "board",
		Usage: "Show and edit the workspace chart",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the grid and palletes",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.BoardShow,
			},
			{
				Name:   "autofill",
				Usage:  "Fill empty grid slots from the palletes",
				Action: r.BoardAutoFill,
			},
			{
				Name:   "clear",
				Usage:  "Return every grid album to its pallete",
				Action: r.BoardClear,
			},
			{
				Name:  "resize",
				Usage: "Change the grid dimensions (1-10)",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "rows",
						Aliases:  []string{"r"},
						Usage:    "Number of rows",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "columns",
						Aliases:  []string{"c"},
						Usage:    "Number of columns",
						Required: true,
					},
				},
				Action: r.BoardResize,
			},
			{
				Name:  "move",
				Usage: "Drag an album onto another item or container",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "active",
						Usage:    "ID of the album to move",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "over",
						Usage:    "ID of the target item, or a container name",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "below",
						Usage: "Insert after the target instead of before it",
					},
				},
				Action: r.BoardMove,
			},
			{
				Name:  "style",
				Usage: "Set the caption style of an album",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Album ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "color",
						Usage: "Caption text color, e.g. #ffffff",
					},
					&cli.BoolFlag{
						Name:  "background",
						Usage: "Draw a backdrop behind the caption",
					},
				},
				Action: r.BoardStyle,
			},
			{
				Name:  "sort",
				Usage: "Sort the palletes",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "order",
						Usage:    "One of none, playcount, title, subtitle",
						Required: true,
					},
				},
				Action: r.BoardSort,
			},
			{
				Name:  "add",
				Usage: "Add a custom album to the custom pallete",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Album title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "subtitle",
						Usage: "Album artist or subtitle",
					},
					&cli.StringSliceFlag{
						Name:  "image",
						Usage: "Cover image URL (repeatable, in order of preference)",
					},
				},
				Action: r.BoardAdd,
			},
			{
				Name:  "remove",
				Usage: "Delete a custom album from the custom pallete",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Album ID",
						Required: true,
					},
				},
				Action: r.BoardRemove,
			},
			{
				Name:   "reset",
				Usage:  "Discard the workspace board and layout",
				Action: r.BoardReset,
			},
		},
	}
}

// importCommand loads albums from a file into a pallete.
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Load albums from a JSON or YAML file into a pallete",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Path to the import file",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "pallete",
				Aliases: []string{"p"},
				Usage:   "Target pallete (lastfm or custom); defaults to [import] pallete",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Validate and print the albums without loading them",
			},
		},
		Action: r.Import,
	}
}

// exportCommand writes the workspace chart in one of the export formats.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the workspace chart",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format (csv, md, txt, json)",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory; prints to stdout when empty",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "Chart name used in titles and file names",
				Value: "chart",
			},
		},
		Action: r.Export,
	}
}

// chartCommand manages named chart snapshots.
func chartCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "chart",
		Usage: "Save, load and export named charts",
		Commands: []*cli.Command{
			{
				Name:  "save",
				Usage: "Save the workspace chart under a name",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.ChartSave,
			},
			{
				Name:  "load",
				Usage: "Replace the workspace chart with a saved one",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.ChartLoad,
			},
			{
				Name:  "list",
				Usage: "List saved charts",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.IntFlag{
						Name:  "size",
						Usage: "Only charts with this many slots",
					},
				},
				Action: r.ChartList,
			},
			{
				Name:  "delete",
				Usage: "Delete a saved chart",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.ChartDelete,
			},
			{
				Name:      "export",
				Usage:     "Export saved charts concurrently",
				ArgsUsage: "[name...]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Export every saved chart",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, md, txt, json)",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: gridx_export_{timestamp})",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent exports",
						Value: 4,
					},
				},
				Action: r.ChartExport,
			},
		},
	}
}

// serveCommand runs the HTTP API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the chart editor over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (defaults to [server] host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (defaults to [server] port)",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the board in a browser once listening",
			},
			&cli.StringFlag{
				Name:  "watch",
				Usage: "Import file to load now and reload whenever it changes",
			},
			&cli.StringFlag{
				Name:  "pallete",
				Usage: "Pallete the watched file loads into; defaults to [import] pallete",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for interactive chart editing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive chart editor",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Import file loaded on start and reloaded with r",
			},
			&cli.StringFlag{
				Name:  "pallete",
				Usage: "Pallete the import file loads into; defaults to [import] pallete",
			},
		},
		Action: r.TUI,
	}
}
