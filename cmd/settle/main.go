package main

import (
	"context"
	"log"
	"os"

	"github.com/rxtech-lab/settlement-desk/internal/types"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:   "settle",
		Usage:  "Review pending token settlements and propose new ones",
		Flags:  globalFlags(),
		Action: uiAction,
		Commands: []*cli.Command{
			{
				Name:   "ui",
				Usage:  "Open the interactive trade list (default)",
				Action: uiAction,
			},
			{
				Name:  "trades",
				Usage: "Inspect and manage stored trades",
				Commands: []*cli.Command{
					{
						Name:  "list",
						Usage: "Print pending and other trades",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:    "group",
								Aliases: []string{"g"},
								Usage:   "Only print one group: pending or other",
							},
							&cli.StringFlag{
								Name:    "query",
								Aliases: []string{"q"},
								Usage:   "Case-insensitive search over id, addresses and status",
							},
							&cli.BoolFlag{
								Name:  "all",
								Usage: "Ignore list.fetch_limit and load every trade",
							},
						},
						Action: listAction,
					},
					{
						Name:   "create",
						Usage:  "Propose a settlement without the wizard",
						Flags:  createFlags(),
						Action: createAction,
					},
					{
						Name:  "seed",
						Usage: "Load demo trades from a YAML file",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "file",
								Aliases:  []string{"f"},
								Usage:    "Seed file `PATH`",
								Required: true,
							},
						},
						Action: seedAction,
					},
					{
						Name:   "settle",
						Usage:  "Mark a trade as settled",
						Flags:  []cli.Flag{idFlag()},
						Action: statusAction(types.TradeStatusSettled),
					},
					{
						Name:   "reject",
						Usage:  "Mark a trade as rejected",
						Flags:  []cli.Flag{idFlag()},
						Action: statusAction(types.TradeStatusRejected),
					},
				},
			},
			{
				Name:  "serve",
				Usage: "Serve the trade API over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address, overrides server.addr",
					},
				},
				Action: serveAction,
			},
			{
				Name:  "config",
				Usage: "Configuration helpers",
				Commands: []*cli.Command{
					{
						Name:   "schema",
						Usage:  "Print the JSON schema of the config file",
						Action: schemaAction,
					},
					{
						Name:  "init",
						Usage: "Write a sample config and its schema",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "dir",
								Usage: "Output directory",
								Value: ".",
							},
						},
						Action: initConfigAction,
					},
				},
			},
			{
				Name:   "version",
				Usage:  "Print the version",
				Action: versionAction,
			},
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file `PATH`; optional unless set explicitly",
			Value:   "settle.yaml",
		},
		&cli.StringFlag{
			Name:  "account",
			Usage: "Address that proposes trades, overrides account.address",
		},
		&cli.StringFlag{
			Name:  "driver",
			Usage: "Store driver (duckdb or sqlite), overrides store.driver",
		},
		&cli.StringFlag{
			Name:  "db",
			Usage: "Store `PATH`, overrides store.path",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error, overrides log.level",
		},
		&cli.StringFlag{
			Name:  "log-output",
			Usage: "stdout, stderr or a file `PATH`, overrides log.output",
		},
	}
}

func idFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "id",
		Usage:    "Trade `ID`",
		Required: true,
	}
}

func createFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "buyer", Usage: "Counterparty address", Required: true},
		&cli.StringFlag{Name: "sell-token", Usage: "Token you give", Required: true},
		&cli.StringFlag{Name: "sell-amount", Usage: "Amount you give", Required: true},
		&cli.StringFlag{Name: "buy-token", Usage: "Token you receive", Required: true},
		&cli.StringFlag{Name: "buy-amount", Usage: "Amount you receive", Required: true},
		&cli.StringFlag{Name: "date", Usage: "Expiry date in `YYYY-MM-DD` format", Required: true},
		&cli.StringFlag{Name: "time", Usage: "Expiry time in `HH:MM` format", Value: "23:59"},
	}
}
