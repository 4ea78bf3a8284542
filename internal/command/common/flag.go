package common

import (
	"github.com/InterNutter/instants/internal/config"
	"github.com/InterNutter/instants/internal/core/service"
	"github.com/InterNutter/instants/internal/setup"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

const (
	paramConfig     = "config"
	paramDatabase   = "database"
	paramAtomicTags = "atomic-tags"
)

var (
	flagConfig = &cli.StringFlag{
		Name:    paramConfig,
		Aliases: []string{"c"},
		EnvVars: []string{"INSTANTS_CLI_CONFIG"},
		Usage:   "YAML file providing default values for the flags",
	}
	flagDatabase = altsrc.NewStringFlag(&cli.StringFlag{
		Name:    paramDatabase,
		Aliases: []string{"d"},
		EnvVars: []string{"INSTANTS_STORAGE_DATABASE_DSN"},
		Value:   "story.db",
		Usage:   "Story database DSN",
	})
	flagAtomicTags = altsrc.NewBoolFlag(&cli.BoolFlag{
		Name:    paramAtomicTags,
		EnvVars: []string{"INSTANTS_STORAGE_TAGS_ATOMIC"},
		Usage:   "Replace tag sets in a single transaction",
	})
)

func WithCommonFlags(flags ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		flagConfig,
		flagDatabase,
		flagAtomicTags,
	}, flags...)
}

// LoadFlagsFromConfig reads the YAML file given by the config flag, if any,
// as a source of flag values.
func LoadFlagsFromConfig(flags []cli.Flag) cli.BeforeFunc {
	return altsrc.InitInputSourceWithContext(flags, func(cCtx *cli.Context) (altsrc.InputSourceContext, error) {
		if path := cCtx.String(paramConfig); path != "" {
			return altsrc.NewYamlSourceFromFile(path)
		}

		return altsrc.NewMapInputSource("", map[any]any{}), nil
	})
}

func GetArchive(cCtx *cli.Context) (*service.Archive, error) {
	conf, err := config.Parse()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	conf.Storage.Database.DSN = cCtx.String(paramDatabase)
	conf.Storage.Tags.Atomic = cCtx.Bool(paramAtomicTags)

	archive, err := setup.GetArchiveFromConfig(cCtx.Context, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return archive, nil
}
