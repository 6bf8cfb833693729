package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	configFlag := &cli.StringFlag{
		Name:  "config",
		Usage: "The path of the configuration file",
		Value: "config.toml",
	}

	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "admin-backend"
	app.Usage = "The backend of the cleanup admin dashboard"
	app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start the api server",
			Flags:       []cli.Flag{configFlag},
			Category:    "Api",
			Description: `Serves every dashboard api on a single port.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate database tables",
			Flags:       []cli.Flag{configFlag},
			Category:    "Database",
			Description: `Creates or updates the tables the api server reads and writes.`,
		},
		{
			Action:   s.startToken,
			Name:     "token",
			Usage:    "Mint an operator access token",
			Category: "Auth",
			Flags: []cli.Flag{
				configFlag,
				&cli.StringFlag{
					Name:     "id",
					Usage:    "The operator id embedded in the token",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "name",
					Usage: "The operator display name",
				},
			},
			Description: `Signs a token the dashboard can present as a Bearer credential.`,
		},
	}

	s.app = app
}
