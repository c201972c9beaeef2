package command

import (
	"github.com/urfave/cli/v2"

	"github.com/plainsight/plainsight-go/internal/imageio"
)

// InspectCommand returns the inspect command.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Show how much an image can hold and whether it carries a message",
		Flags: []cli.Flag{
			imageFlag(),
		},
		Action: func(c *cli.Context) error {
			st, err := getState(c)
			if err != nil {
				return err
			}

			path, err := st.imagePath(c.String("image"))
			if err != nil {
				return err
			}
			raster, format, err := imageio.Load(path)
			if err != nil {
				return err
			}

			report := st.svc.Inspect(c.Context, raster.Pix)
			report.Format = string(format)
			report.Width = raster.Width
			report.Height = raster.Height
			report.Channels = raster.Channels
			return st.print(report)
		},
	}
}
