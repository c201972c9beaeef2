package command

import (
	"github.com/urfave/cli/v2"

	"github.com/plainsight/plainsight-go/internal/cli/output"
	"github.com/plainsight/plainsight-go/internal/imageio"
)

// DecodeCommand returns the decode command.
func DecodeCommand() *cli.Command {
	return &cli.Command{
		Name:    "decode",
		Aliases: []string{"dec"},
		Usage:   "Recover a hidden message from an image",
		Flags: []cli.Flag{
			imageFlag(),
			passkeyFlag(),
		},
		Action: func(c *cli.Context) error {
			st, err := getState(c)
			if err != nil {
				return err
			}
			return runDecode(c, st, decodeOptions{
				Image:   c.String("image"),
				Passkey: c.String("passkey"),
			})
		},
	}
}

type decodeOptions struct {
	Image   string
	Passkey string
}

// DecodeResult holds a recovered message.
type DecodeResult struct {
	Message string `json:"message" yaml:"message"`
}

// Text implements output.Texter. The message is printed verbatim.
func (r *DecodeResult) Text() string {
	return r.Message
}

func runDecode(c *cli.Context, st *state, opts decodeOptions) error {
	path, err := st.imagePath(opts.Image)
	if err != nil {
		return err
	}
	pass, err := st.passkey(opts.Passkey)
	if err != nil {
		return err
	}

	var spinner *output.Spinner
	if st.showProgress() {
		spinner = output.NewSpinner(st.errOut, "Working on it...")
		spinner.Start()
	}

	raster, _, err := imageio.Load(path)
	var message string
	if err == nil {
		message, err = st.svc.Reveal(c.Context, raster.Pix, pass)
	}
	if spinner != nil {
		if err != nil {
			spinner.Fail(Describe(err))
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}

	return st.print(&DecodeResult{Message: message})
}
