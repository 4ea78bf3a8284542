package story

import (
	"context"
	"log/slog"
	"os"

	"github.com/InterNutter/instants/internal/command/common"
	"github.com/InterNutter/instants/internal/core/service"
	"github.com/InterNutter/instants/internal/markdown"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const flagContinueOnError = "continue-on-error"

func ImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import stories from markdown files with a front matter",
		ArgsUsage: "<file> [file...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  flagContinueOnError,
				Usage: "Keep importing the remaining files when one fails",
			},
		},
		Action: func(cCtx *cli.Context) error {
			files := cCtx.Args().Slice()
			if len(files) == 0 {
				return errors.New("no file to import")
			}

			archive, err := common.GetArchive(cCtx)
			if err != nil {
				return errors.Wrap(err, "could not open archive")
			}

			continueOnError := cCtx.Bool(flagContinueOnError)

			var failed int

			for _, file := range files {
				ctx := slogx.WithAttrs(cCtx.Context, slog.String("file", file))

				if err := importFile(ctx, archive, file); err != nil {
					if !continueOnError {
						return errors.WithStack(err)
					}

					failed++
					slog.ErrorContext(ctx, "could not import story", slogx.Error(err))
				}
			}

			if failed > 0 {
				return errors.Errorf("%d of %d file(s) could not be imported", failed, len(files))
			}

			return nil
		},
	}
}

func importFile(ctx context.Context, archive *service.Archive, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return errors.Wrapf(err, "could not read file '%s'", file)
	}

	doc, err := markdown.ParseStory(data)
	if err != nil {
		return errors.Wrapf(err, "could not parse file '%s'", file)
	}

	result, err := archive.SaveStory(ctx, doc.Story)
	if err != nil {
		return errors.Wrapf(err, "could not save story from '%s'", file)
	}

	if doc.Tags != nil {
		if err := archive.ReplaceTags(ctx, result.Number, doc.Tags); err != nil {
			return errors.Wrapf(err, "could not replace tags of story %d", result.Number)
		}
	}

	slog.InfoContext(ctx, "story imported", slog.Int64("number", int64(result.Number)), slog.Bool("created", result.Created))

	return nil
}
