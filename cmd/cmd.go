// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
	}
}

// setupCommand handles configuration and database setup.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a config file from the built-in template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   defaultConfigPath,
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupRollback,
			},
		},
	}
}

// seedCommand loads lookup and staging data.
func seedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load staging data",
		Commands: []*cli.Command{
			{
				Name:   "search-types",
				Usage:  "Insert the default search type labels",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SeedSearchTypes,
			},
			{
				Name:  "snapshot",
				Usage: "Stage every input table from a JSON snapshot file",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the snapshot JSON file",
						Required: true,
					},
				},
				Action: r.SeedSnapshot,
			},
		},
	}
}

// reconcileCommand runs and inspects reconciliation batches.
func reconcileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "reconcile",
		Aliases: []string{"rec"},
		Usage:   "Reconcile the staged search log",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Reconcile the staged snapshot and write the records",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format (csv, json or text)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: stdout)",
					},
					&cli.BoolFlag{
						Name:  "persist",
						Usage: "Store the records and run bookkeeping in the database",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Partition workers",
					},
					&cli.IntFlag{
						Name:  "partition-size",
						Usage: "Enriched rows per partition",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Abort the batch after this long (0 disables)",
					},
				},
				Action: r.ReconcileRun,
			},
			{
				Name:  "runs",
				Usage: "List previous reconciliation runs",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of runs to return",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ReconcileRuns,
			},
			{
				Name:  "records",
				Usage: "Print the persisted records of a run",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "run-id",
						Usage:    "Reconciliation run ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format (csv, json or text)",
					},
				},
				Action: r.ReconcileRecords,
			},
		},
	}
}
