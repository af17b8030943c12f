package main

import (
	"context"

	pb "github.com/colosseum-network/colosseumd/api-spec/colosseum/v1"
	"github.com/urfave/cli/v2"
)

var timeFlag = cli.StringFlag{
	Name:     "time",
	Usage:    "the time in RFC3339 format, ie. 2024-03-10T00:00:00Z",
	Required: true,
}

var competition = cli.Command{
	Name:   "info",
	Usage:  "get info about the competition and its current phase",
	Action: infoAction,
	Subcommands: []*cli.Command{
		{
			Name:   "setstart",
			Usage:  "change the start time of the competition",
			Flags:  []cli.Flag{&timeFlag},
			Action: setStartAction,
		},
		{
			Name:   "setend",
			Usage:  "change the end time of the competition",
			Flags:  []cli.Flag{&timeFlag},
			Action: setEndAction,
		},
	},
}

var leaderboard = cli.Command{
	Name:   "leaderboard",
	Usage:  "rank participants by the stable value of their vaults",
	Action: leaderboardAction,
}

func infoAction(ctx *cli.Context) error {
	client, cleanup, err := getTraderClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.GetCompetition(context.Background(), &pb.GetCompetitionRequest{})
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

func setStartAction(ctx *cli.Context) error {
	return setCompetitionTime(ctx, true)
}

func setEndAction(ctx *cli.Context) error {
	return setCompetitionTime(ctx, false)
}

func setCompetitionTime(ctx *cli.Context, isStart bool) error {
	t, err := parseTime(ctx.String(timeFlag.Name))
	if err != nil {
		return err
	}

	client, cleanup, err := getOperatorClient()
	if err != nil {
		return err
	}
	defer cleanup()

	req := &pb.SetCompetitionTimeRequest{Time: t}
	var reply *pb.SetCompetitionTimeReply
	if isStart {
		reply, err = client.SetCompetitionStartTime(context.Background(), req)
	} else {
		reply, err = client.SetCompetitionEndTime(context.Background(), req)
	}
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

func leaderboardAction(ctx *cli.Context) error {
	client, cleanup, err := getTraderClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.Leaderboard(context.Background(), &pb.LeaderboardRequest{})
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}
