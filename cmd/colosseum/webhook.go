package main

import (
	"context"
	"fmt"

	pb "github.com/colosseum-network/colosseumd/api-spec/colosseum/v1"
	"github.com/urfave/cli/v2"
)

var webhook = cli.Command{
	Name:  "webhook",
	Usage: "manage the webhooks notified of competition events",
	Subcommands: []*cli.Command{
		{
			Name:  "add",
			Usage: "add a webhook for an event",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name: "event",
					Usage: "the event to be notified of: PARTICIPANT_REGISTERED, " +
						"TRADE_EXECUTED, PRICE_UPDATED or * for all",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "endpoint",
					Usage:    "the url the event is POSTed to",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "secret",
					Usage: "optional secret used to sign requests",
				},
			},
			Action: addWebhookAction,
		},
		{
			Name:  "remove",
			Usage: "remove a webhook",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Usage:    "the id of the webhook",
					Required: true,
				},
			},
			Action: removeWebhookAction,
		},
		{
			Name:  "list",
			Usage: "list the webhooks, optionally filtered by event",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "event",
					Usage: "the event to filter hooks by",
				},
			},
			Action: listWebhooksAction,
		},
	},
}

func addWebhookAction(ctx *cli.Context) error {
	client, cleanup, err := getOperatorClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.AddWebhook(context.Background(), &pb.AddWebhookRequest{
		Event:    ctx.String("event"),
		Endpoint: ctx.String("endpoint"),
		Secret:   ctx.String("secret"),
	})
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

func removeWebhookAction(ctx *cli.Context) error {
	client, cleanup, err := getOperatorClient()
	if err != nil {
		return err
	}
	defer cleanup()

	id := ctx.String("id")
	if _, err := client.RemoveWebhook(context.Background(), &pb.RemoveWebhookRequest{
		ID: id,
	}); err != nil {
		return err
	}

	fmt.Printf("webhook %s removed\n", id)
	return nil
}

func listWebhooksAction(ctx *cli.Context) error {
	client, cleanup, err := getOperatorClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.ListWebhooks(context.Background(), &pb.ListWebhooksRequest{
		Event: ctx.String("event"),
	})
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}
