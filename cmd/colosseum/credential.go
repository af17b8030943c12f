package main

import (
	"fmt"
	"time"

	pb "github.com/colosseum-network/colosseumd/api-spec/colosseum/v1"
	"github.com/colosseum-network/colosseumd/internal/infrastructure/identity"
	"github.com/urfave/cli/v2"
)

var (
	secretFlag = cli.StringFlag{
		Name:     "secret",
		Usage:    "the secret the daemon uses to verify credentials",
		Required: true,
	}
	classFlag = cli.StringFlag{
		Name:  "class",
		Usage: "the class of the credential",
		Value: "contestant",
	}
	idFlag = cli.StringFlag{
		Name:     "id",
		Usage:    "the identity proven by the credential",
		Required: true,
	}
)

var credential = cli.Command{
	Name:  "credential",
	Usage: "issue or set the credential used for participant commands",
	Subcommands: []*cli.Command{
		{
			Name:  "token",
			Usage: "issue a signed bearer token and store it in the local state",
			Flags: []cli.Flag{
				&secretFlag,
				&classFlag,
				&idFlag,
				&cli.DurationFlag{
					Name:  "ttl",
					Usage: "the validity of the token, 0 means it never expires",
				},
			},
			Action: issueTokenAction,
		},
		{
			Name:  "badge",
			Usage: "issue a signed badge and store it in the local state",
			Flags: []cli.Flag{
				&secretFlag,
				&classFlag,
				&idFlag,
			},
			Action: issueBadgeAction,
		},
		{
			Name:  "set",
			Usage: "store an already issued credential in the local state",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "type",
					Usage: "the type of credential, either TOKEN or BADGE",
					Value: "TOKEN",
				},
				&classFlag,
				&cli.StringFlag{
					Name:     "value",
					Usage:    "the credential value",
					Required: true,
				},
			},
			Action: setCredentialAction,
		},
	},
}

func issueTokenAction(ctx *cli.Context) error {
	verifier, err := identity.NewVerifier([]byte(ctx.String(secretFlag.Name)))
	if err != nil {
		return err
	}

	class := ctx.String(classFlag.Name)
	token, err := verifier.NewToken(
		class, ctx.String(idFlag.Name), ctx.Duration("ttl"),
	)
	if err != nil {
		return err
	}

	return storeCredential("TOKEN", class, token)
}

func issueBadgeAction(ctx *cli.Context) error {
	verifier, err := identity.NewVerifier([]byte(ctx.String(secretFlag.Name)))
	if err != nil {
		return err
	}

	class := ctx.String(classFlag.Name)
	badge, err := verifier.NewBadge(class, ctx.String(idFlag.Name))
	if err != nil {
		return err
	}

	return storeCredential("BADGE", class, badge)
}

func setCredentialAction(ctx *cli.Context) error {
	credentialType := ctx.String("type")
	if credentialType != "TOKEN" && credentialType != "BADGE" {
		return fmt.Errorf("unknown credential type %s", credentialType)
	}
	return storeCredential(
		credentialType, ctx.String(classFlag.Name), ctx.String("value"),
	)
}

func storeCredential(credentialType, class, value string) error {
	if err := setState(map[string]string{
		credentialTypeKey:  credentialType,
		credentialClassKey: class,
		credentialKey:      value,
	}); err != nil {
		return err
	}

	fmt.Println(value)
	return nil
}

func getCredential() (*pb.Credential, error) {
	state, err := getState()
	if err != nil {
		return nil, err
	}
	value, ok := state[credentialKey]
	if !ok {
		return nil, fmt.Errorf("missing credential, try 'credential token'")
	}
	return &pb.Credential{
		Type:  state[credentialTypeKey],
		Class: state[credentialClassKey],
		Value: value,
	}, nil
}

func parseTime(value string) (int64, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return 0, fmt.Errorf("time must be in RFC3339 format, ie. %s", time.RFC3339)
	}
	return t.Unix(), nil
}
