package story

import (
	"github.com/InterNutter/instants/internal/command/common"
	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	flags := common.WithCommonFlags()

	return &cli.Command{
		Name:   "story",
		Usage:  "Manage the stories of the archive",
		Flags:  flags,
		Before: common.LoadFlagsFromConfig(flags),
		Subcommands: []*cli.Command{
			ImportCommand(),
			ShowCommand(),
		},
	}
}
