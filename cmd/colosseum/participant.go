package main

import (
	"context"

	pb "github.com/colosseum-network/colosseumd/api-spec/colosseum/v1"
	"github.com/urfave/cli/v2"
)

var swapFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "from",
		Usage:    "the asset to trade away",
		Required: true,
	},
	&cli.StringFlag{
		Name:     "to",
		Usage:    "the asset to receive",
		Required: true,
	},
	&cli.StringFlag{
		Name:     "amount",
		Usage:    "the amount of asset to trade away",
		Required: true,
	},
}

var (
	register = cli.Command{
		Name:   "register",
		Usage:  "register for the competition with the stored credential",
		Action: registerAction,
	}
	quote = cli.Command{
		Name:   "quote",
		Usage:  "preview the amount received for a trade",
		Flags:  swapFlags,
		Action: quoteAction,
	}
	trade = cli.Command{
		Name:   "trade",
		Usage:  "convert an amount of asset of the vault into another",
		Flags:  swapFlags,
		Action: tradeAction,
	}
	balance = cli.Command{
		Name:   "balance",
		Usage:  "get the balances of the vault",
		Action: balanceAction,
	}
	trades = cli.Command{
		Name:   "trades",
		Usage:  "list the trades executed by the vault",
		Action: listTradesAction,
	}
)

func registerAction(ctx *cli.Context) error {
	credential, err := getCredential()
	if err != nil {
		return err
	}

	client, cleanup, err := getTraderClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.Register(context.Background(), &pb.RegisterRequest{
		Credential: credential,
	})
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

func quoteAction(ctx *cli.Context) error {
	client, cleanup, err := getTraderClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.Quote(context.Background(), &pb.QuoteRequest{
		FromAsset: ctx.String("from"),
		ToAsset:   ctx.String("to"),
		Amount:    ctx.String("amount"),
	})
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

func tradeAction(ctx *cli.Context) error {
	credential, err := getCredential()
	if err != nil {
		return err
	}

	client, cleanup, err := getTraderClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.Trade(context.Background(), &pb.TradeRequest{
		Credential: credential,
		FromAsset:  ctx.String("from"),
		ToAsset:    ctx.String("to"),
		Amount:     ctx.String("amount"),
	})
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

func balanceAction(ctx *cli.Context) error {
	credential, err := getCredential()
	if err != nil {
		return err
	}

	client, cleanup, err := getTraderClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.GetBalance(context.Background(), &pb.GetBalanceRequest{
		Credential: credential,
	})
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

func listTradesAction(ctx *cli.Context) error {
	credential, err := getCredential()
	if err != nil {
		return err
	}

	client, cleanup, err := getTraderClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.ListTrades(context.Background(), &pb.ListTradesRequest{
		Credential: credential,
	})
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}
