package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/urfave/cli/v2"
)

const (
	operatorRPCKey     = "operator_rpcserver"
	traderRPCKey       = "trader_rpcserver"
	tlsCertKey         = "tls_cert_path"
	noTLSKey           = "no_tls"
	credentialKey      = "credential"
	credentialTypeKey  = "credential_type"
	credentialClassKey = "credential_class"
)

var (
	operatorRPCFlag = cli.StringFlag{
		Name:  "operator_rpcserver",
		Usage: "colosseumd operator interface address host:port",
		Value: "localhost:9000",
	}
	traderRPCFlag = cli.StringFlag{
		Name:  "trader_rpcserver",
		Usage: "colosseumd trader interface address host:port",
		Value: "localhost:9945",
	}
	tlsCertFlag = cli.StringFlag{
		Name:  "tls_cert_path",
		Usage: "the path of the TLS certificate of the operator interface",
		Value: filepath.Join(
			btcutil.AppDataDir("colosseumd", false), "tls", "cert.pem",
		),
	}
	noTLSFlag = cli.BoolFlag{
		Name:  "no_tls",
		Usage: "used to connect to an operator interface with TLS disabled",
		Value: false,
	}
)

var config = cli.Command{
	Name:   "config",
	Usage:  "Print local configuration of the colosseum CLI",
	Action: configAction,
	Subcommands: []*cli.Command{
		{
			Name:      "set",
			Usage:     "set a <key> <value> in the local state",
			ArgsUsage: "<key> <value>",
			Action:    configSetAction,
		},
		{
			Name:   "init",
			Usage:  "initialize the local state with flags",
			Action: configInitAction,
			Flags: []cli.Flag{
				&operatorRPCFlag,
				&traderRPCFlag,
				&tlsCertFlag,
				&noTLSFlag,
			},
		},
	},
}

func configAction(ctx *cli.Context) error {
	state, err := getState()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(state))
	for key := range state {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Println(key + ": " + state[key])
	}

	return nil
}

func configInitAction(c *cli.Context) error {
	return setState(map[string]string{
		operatorRPCKey: c.String(operatorRPCFlag.Name),
		traderRPCKey:   c.String(traderRPCFlag.Name),
		tlsCertKey:     c.String(tlsCertFlag.Name),
		noTLSKey:       strconv.FormatBool(c.Bool(noTLSFlag.Name)),
	})
}

func configSetAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return &invalidUsageError{c, "set"}
	}

	key := c.Args().Get(0)
	value := c.Args().Get(1)

	if err := setState(map[string]string{key: value}); err != nil {
		return err
	}

	fmt.Printf("%s %s has been set\n", key, value)
	return nil
}
