package command

import (
	"github.com/urfave/cli/v2"

	"github.com/plainsight/plainsight-go/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show build information",
		Action: func(c *cli.Context) error {
			st, err := getState(c)
			if err != nil {
				return err
			}
			return st.print(buildinfo.Get())
		},
	}
}
