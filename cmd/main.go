package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"tradejournal/cmd/importer"
	"tradejournal/src/database"
	"tradejournal/src/server"
)

var Version string

func main() {
	app := cli.NewApp()
	app.Name = "Trading Journal CMD"
	app.Usage = "The trading journal command line interface"

	app.Commands = []cli.Command{
		serverCMD,
		importCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	serverCMD = cli.Command{
		Name:        "server",
		Usage:       "run the journal API server",
		Action:      serverAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Run the HTTP API until interrupted`,
	}
	importCMD = cli.Command{
		Name:      "import",
		Usage:     "bulk-import trades from a JSON file",
		Action:    importAction,
		ArgsUsage: "",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "file",
				Usage: "JSON file holding an array of trade payloads",
			},
		},
		Description: `Import trades through the running API`,
	}
)

func serverAction(_ *cli.Context) error {
	logrus.Info("Starting journal API server")

	if err := database.InitDB(); err != nil {
		logrus.WithError(err).Error("Failed to connect to database")
		return err
	}

	server.StartServer(os.Getenv("SERVER_PORT"))
	return nil
}

func importAction(c *cli.Context) error {
	logrus.Info("Starting trade import CMD")

	imp := &importer.Importer{}
	if err := imp.Start(context.Background(), c.String("file")); err != nil {
		logrus.WithError(err).Error("Import failed")
		return err
	}

	return nil
}
