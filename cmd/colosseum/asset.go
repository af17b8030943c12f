package main

import (
	"context"
	"fmt"

	pb "github.com/colosseum-network/colosseumd/api-spec/colosseum/v1"
	"github.com/urfave/cli/v2"
)

var assetIDFlag = cli.StringFlag{
	Name:     "asset",
	Usage:    "the id of the asset",
	Required: true,
}

var asset = cli.Command{
	Name:  "asset",
	Usage: "manage the assets of the competition",
	Subcommands: []*cli.Command{
		{
			Name:  "register",
			Usage: "declare the ticker and precision of an asset",
			Flags: []cli.Flag{
				&assetIDFlag,
				&cli.StringFlag{
					Name:  "ticker",
					Usage: "the ticker of the asset",
				},
				&cli.UintFlag{
					Name:  "precision",
					Usage: "the max number of fractional digits of an amount",
					Value: 18,
				},
			},
			Action: registerAssetAction,
		},
		{
			Name:   "allow",
			Usage:  "add an asset to those that can be traded away",
			Flags:  []cli.Flag{&assetIDFlag},
			Action: allowAssetAction,
		},
		{
			Name:   "list",
			Usage:  "list all known assets",
			Action: listAssetsAction,
		},
	},
}

func registerAssetAction(ctx *cli.Context) error {
	client, cleanup, err := getOperatorClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.RegisterAsset(context.Background(), &pb.RegisterAssetRequest{
		ID:        ctx.String(assetIDFlag.Name),
		Ticker:    ctx.String("ticker"),
		Precision: uint32(ctx.Uint("precision")),
	})
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

func allowAssetAction(ctx *cli.Context) error {
	client, cleanup, err := getOperatorClient()
	if err != nil {
		return err
	}
	defer cleanup()

	assetID := ctx.String(assetIDFlag.Name)
	if _, err := client.AddAllowedAsset(context.Background(), &pb.AddAllowedAssetRequest{
		AssetID: assetID,
	}); err != nil {
		return err
	}

	fmt.Printf("asset %s is allowed\n", assetID)
	return nil
}

func listAssetsAction(ctx *cli.Context) error {
	client, cleanup, err := getTraderClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.ListAssets(context.Background(), &pb.ListAssetsRequest{})
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}
