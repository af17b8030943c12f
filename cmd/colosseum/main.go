package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/btcsuite/btcd/btcutil"
	pb "github.com/colosseum-network/colosseumd/api-spec/colosseum/v1"
	"github.com/urfave/cli/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

var (
	// maxMsgRecvSize is the largest message our client will receive. We
	// set this to 200MiB atm.
	maxMsgRecvSize = grpc.MaxCallRecvMsgSize(1 * 1024 * 1024 * 200)

	colosseumDataDir = btcutil.AppDataDir("colosseum-cli", false)
	statePath        = filepath.Join(colosseumDataDir, "state.json")
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "colosseum CLI"
	app.Usage = "Command line interface for colosseumd operators and participants"
	app.Commands = append(
		app.Commands,
		&config,
		&credential,
		&price,
		&asset,
		&competition,
		&webhook,
		&register,
		&quote,
		&trade,
		&balance,
		&trades,
		&leaderboard,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("invalid config state: %w", err)
	}

	return data, nil
}

func setState(data map[string]string) error {
	if _, err := os.Stat(colosseumDataDir); os.IsNotExist(err) {
		if err := os.MkdirAll(colosseumDataDir, os.ModeDir|0755); err != nil {
			return err
		}
	}

	currentData, err := getState()
	if err != nil {
		currentData = map[string]string{}
	}

	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath, jsonString, 0600); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string, 0)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

func printRespJSON(resp interface{}) {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}

	fmt.Println(string(jsonBytes))
}

func getOperatorClient() (*pb.OperatorClient, func(), error) {
	state, err := getState()
	if err != nil {
		return nil, nil, err
	}
	address, ok := state[operatorRPCKey]
	if !ok {
		return nil, nil, fmt.Errorf(
			"set operator rpcserver with `config set %s`", operatorRPCKey,
		)
	}

	var creds credentials.TransportCredentials
	if noTLS, _ := strconv.ParseBool(state[noTLSKey]); noTLS {
		creds = insecure.NewCredentials()
	} else {
		certPath, ok := state[tlsCertKey]
		if !ok {
			return nil, nil, fmt.Errorf(
				"set operator TLS certificate with `config set %s`", tlsCertKey,
			)
		}
		creds, err = credentials.NewClientTLSFromFile(certPath, "")
		if err != nil {
			return nil, nil, fmt.Errorf("unable to load TLS certificate: %w", err)
		}
	}

	conn, err := getClientConn(address, creds)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = conn.Close() }

	return pb.NewOperatorClient(conn), cleanup, nil
}

func getTraderClient() (*pb.TraderClient, func(), error) {
	state, err := getState()
	if err != nil {
		return nil, nil, err
	}
	address, ok := state[traderRPCKey]
	if !ok {
		return nil, nil, fmt.Errorf(
			"set trader rpcserver with `config set %s`", traderRPCKey,
		)
	}

	conn, err := getClientConn(address, insecure.NewCredentials())
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = conn.Close() }

	return pb.NewTraderClient(conn), cleanup, nil
}

func getClientConn(
	address string, creds credentials.TransportCredentials,
) (*grpc.ClientConn, error) {
	opts := []grpc.DialOption{
		grpc.WithDefaultCallOptions(maxMsgRecvSize),
		grpc.WithTransportCredentials(creds),
	}

	conn, err := grpc.Dial(address, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to RPC server: %v", err)
	}

	return conn, nil
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[colosseum] %v\n", err)
	}
	os.Exit(1)
}
