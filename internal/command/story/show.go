package story

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"strconv"

	"github.com/InterNutter/instants/internal/command/common"
	"github.com/InterNutter/instants/internal/core/model"
	"github.com/InterNutter/instants/pkg/client"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	flagServer = "server"
	flagFormat = "format"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type storyOutput struct {
	model.Story `yaml:",inline"`
	Tags        []string `json:"tags" yaml:"tags"`
}

func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print a story as JSON",
		ArgsUsage: "<number|last>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagServer,
				Aliases: []string{"s"},
				EnvVars: []string{"INSTANTS_CLI_SERVER"},
				Usage:   "Read the story from a running server instead of the local database",
			},
			&cli.StringFlag{
				Name:    flagFormat,
				Aliases: []string{"f"},
				Value:   formatJSON,
				Usage:   "Output format ('json' or 'yaml')",
			},
		},
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			rawNumber := cCtx.Args().First()
			if rawNumber == "" {
				return errors.New("missing story number")
			}

			if rawServerURL := cCtx.String(flagServer); rawServerURL != "" {
				output, err := fetchRemoteStory(ctx, rawServerURL, rawNumber)
				if err != nil {
					return errors.WithStack(err)
				}

				return printStory(cCtx.App.Writer, cCtx.String(flagFormat), output)
			}

			archive, err := common.GetArchive(cCtx)
			if err != nil {
				return errors.Wrap(err, "could not open archive")
			}

			var story *model.Story

			if rawNumber == "last" {
				story, err = archive.GetLastStory(ctx)
			} else {
				number, parseErr := strconv.ParseInt(rawNumber, 10, 64)
				if parseErr != nil {
					return errors.Wrapf(parseErr, "invalid story number '%s'", rawNumber)
				}

				story, err = archive.GetStory(ctx, model.StoryNumber(number))
			}
			if err != nil {
				return errors.WithStack(err)
			}

			tags, err := archive.GetTags(ctx, story.Number)
			if err != nil {
				return errors.WithStack(err)
			}

			return printStory(cCtx.App.Writer, cCtx.String(flagFormat), storyOutput{Story: *story, Tags: tags})
		},
	}
}

func fetchRemoteStory(ctx context.Context, rawServerURL string, rawNumber string) (storyOutput, error) {
	serverURL, err := url.Parse(rawServerURL)
	if err != nil {
		return storyOutput{}, errors.Wrapf(err, "could not parse server url '%s'", rawServerURL)
	}

	c := client.New(client.WithBaseURL(serverURL))

	var (
		story *model.Story
		tags  []string
	)

	if rawNumber == "last" {
		story, tags, err = c.GetLastStory(ctx)
	} else {
		number, parseErr := strconv.ParseInt(rawNumber, 10, 64)
		if parseErr != nil {
			return storyOutput{}, errors.Wrapf(parseErr, "invalid story number '%s'", rawNumber)
		}

		story, tags, err = c.GetStory(ctx, model.StoryNumber(number))
	}
	if err != nil {
		return storyOutput{}, errors.WithStack(err)
	}

	return storyOutput{Story: *story, Tags: tags}, nil
}

func printStory(w io.Writer, format string, output storyOutput) error {
	switch format {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(output); err != nil {
			return errors.WithStack(err)
		}

	case formatYAML:
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()

		if err := encoder.Encode(output); err != nil {
			return errors.WithStack(err)
		}

	default:
		return errors.Errorf("unknown output format '%s'", format)
	}

	return nil
}
