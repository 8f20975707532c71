// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/vaultstore/configuration"
	"github.com/bitmark-inc/vaultstore/fault"
	"github.com/bitmark-inc/vaultstore/gatewayhttp"
	"github.com/bitmark-inc/vaultstore/session"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "vault-cli"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: "vault-cli.json",
			Usage: " configuration `FILE`",
		},
		cli.StringFlag{
			Name:  "datastore-id, d",
			Value: "",
			Usage: " single reader/writer datastore `ID`",
		},
		cli.StringFlag{
			Name:  "blockchain-id, b",
			Value: "",
			Usage: " multi-reader blockchain `ID`",
		},
		cli.StringFlag{
			Name:  "app-name, a",
			Value: "",
			Usage: " multi-reader application `NAME`",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:   "generate",
			Usage:  "generate a device key pair, will not store in config file",
			Action: runGenerate,
		},
		{
			Name:      "setup",
			Usage:     "initialise vault-cli configuration",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "connect, H",
					Value: "",
					Usage: "*gateway host `HOST`",
				},
				cli.IntFlag{
					Name:  "port, P",
					Value: 443,
					Usage: " gateway port `PORT`",
				},
				cli.StringFlag{
					Name:  "scheme, s",
					Value: "https",
					Usage: " gateway scheme `SCHEME`",
				},
				cli.StringFlag{
					Name:  "private-key, k",
					Value: "",
					Usage: " use existing device private key `HEX`",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "put",
			Usage:     "store a local file under a datastore path name",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "device-id, i",
					Value: "",
					Usage: "*this device's `ID`",
				},
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*datastore path `NAME`",
				},
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*local `FILE` to upload",
				},
				cli.StringFlag{
					Name:  "readers, r",
					Value: "",
					Usage: " comma separated reader device `IDS`",
				},
				cli.StringFlag{
					Name:  "drivers",
					Value: "",
					Usage: " comma separated preferred storage `DRIVERS`",
				},
			},
			Action: runPut,
		},
		{
			Name:      "get",
			Usage:     "fetch a file's contents to stdout or a local file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "device-id, i",
					Value: "",
					Usage: "*this device's `ID`",
				},
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*datastore path `NAME`",
				},
				cli.StringFlag{
					Name:  "output, o",
					Value: "",
					Usage: " write to `FILE` instead of stdout",
				},
			},
			Action: runGet,
		},
		{
			Name:      "urls",
			Usage:     "list the backing storage URLs for a file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "device-id, i",
					Value: "",
					Usage: "*this device's `ID`",
				},
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*datastore path `NAME`",
				},
			},
			Action: runURLs,
		},
		{
			Name:      "delete",
			Usage:     "tombstone a file across every device sharing the datastore",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "device-id, i",
					Value: "",
					Usage: "*this device's `ID`",
				},
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*datastore path `NAME`",
				},
				cli.StringFlag{
					Name:  "readers, r",
					Value: "",
					Usage: " comma separated reader device `IDS`",
				},
			},
			Action: runDelete,
		},
		{
			Name:      "list",
			Usage:     "list the files recorded in a device's root",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "device-id, i",
					Value: "",
					Usage: "*this device's `ID`",
				},
			},
			Action: runList,
		},
		{
			Name:  "version",
			Usage: "display vault-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		command := c.Args().Get(0)
		if "version" == command || "generate" == command || "setup" == command {
			return nil
		}

		configFile := c.GlobalString("config")
		if "" == configFile {
			return ErrMissingConfig
		}

		config, err := configuration.Parse(configFile)
		if nil != err {
			return err
		}

		if err := fault.Initialise(); nil != err {
			return err
		}
		fault.PanicIfError("logger initialise", logger.Initialise(config.Logging))
		log := logger.New("main")

		client := gatewayhttp.New(config.Gateway.Scheme, config.Gateway.Host, config.Gateway.Port, log)

		store := session.NewFileStore(configFile+".state.json", nil)
		mgr := session.NewManager(store, log)

		c.App.Metadata["app"] = &appContext{
			config:     config,
			configFile: configFile,
			client:     client,
			mgr:        mgr,
			log:        log,
			w:          c.App.Writer,
			e:          c.App.ErrWriter,
		}

		return nil
	}

	app.After = func(c *cli.Context) error {
		command := c.Args().Get(0)
		if "version" == command || "generate" == command || "setup" == command {
			return nil
		}
		logger.Finalise()
		fault.Finalise()
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
