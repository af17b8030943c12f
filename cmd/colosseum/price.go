package main

import (
	"context"

	pb "github.com/colosseum-network/colosseumd/api-spec/colosseum/v1"
	"github.com/urfave/cli/v2"
)

var (
	baseAssetFlag = cli.StringFlag{
		Name:     "base_asset",
		Usage:    "the asset being priced",
		Required: true,
	}
	quoteAssetFlag = cli.StringFlag{
		Name:  "quote_asset",
		Usage: "the asset the price is expressed in",
		Value: "fusd",
	}
)

var price = cli.Command{
	Name:  "price",
	Usage: "manage the prices of the competition assets",
	Subcommands: []*cli.Command{
		{
			Name:  "set",
			Usage: "overwrite the price of a pair",
			Flags: []cli.Flag{
				&baseAssetFlag,
				&quoteAssetFlag,
				&cli.StringFlag{
					Name:     "price",
					Usage:    "the amount of quote asset for one unit of base asset",
					Required: true,
				},
			},
			Action: setPriceAction,
		},
		{
			Name:   "get",
			Usage:  "get the price of a pair",
			Flags:  []cli.Flag{&baseAssetFlag, &quoteAssetFlag},
			Action: getPriceAction,
		},
		{
			Name:   "list",
			Usage:  "list all prices",
			Action: listPricesAction,
		},
	},
}

func setPriceAction(ctx *cli.Context) error {
	client, cleanup, err := getOperatorClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.SetPrice(context.Background(), &pb.SetPriceRequest{
		BaseAsset:  ctx.String(baseAssetFlag.Name),
		QuoteAsset: ctx.String(quoteAssetFlag.Name),
		Price:      ctx.String("price"),
	})
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

func getPriceAction(ctx *cli.Context) error {
	client, cleanup, err := getTraderClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.GetPrice(context.Background(), &pb.GetPriceRequest{
		BaseAsset:  ctx.String(baseAssetFlag.Name),
		QuoteAsset: ctx.String(quoteAssetFlag.Name),
	})
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

func listPricesAction(ctx *cli.Context) error {
	client, cleanup, err := getOperatorClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.ListPrices(context.Background(), &pb.ListPricesRequest{})
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}
