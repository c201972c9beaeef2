package command

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/plainsight/plainsight-go/internal/cli/output"
	"github.com/plainsight/plainsight-go/internal/imageio"
)

// EncodeCommand returns the encode command.
func EncodeCommand() *cli.Command {
	return &cli.Command{
		Name:    "encode",
		Aliases: []string{"enc"},
		Usage:   "Encrypt a message and hide it in an image",
		Flags: []cli.Flag{
			imageFlag(),
			&cli.StringFlag{
				Name:    "message",
				Aliases: []string{"m"},
				Usage:   "Message to hide (prompted when omitted)",
			},
			passkeyFlag(),
			&cli.StringFlag{
				Name:  "out",
				Usage: "Output image path (default: <stem>-<hex>.<format> next to the input)",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output image format: png, bmp",
			},
		},
		Action: func(c *cli.Context) error {
			st, err := getState(c)
			if err != nil {
				return err
			}
			return runEncode(c, st, encodeOptions{
				Image:   c.String("image"),
				Message: c.String("message"),
				Passkey: c.String("passkey"),
				Out:     c.String("out"),
				Format:  c.String("format"),
			})
		},
	}
}

func imageFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "image",
		Aliases: []string{"i"},
		Usage:   "Path to the image (prompted when omitted)",
	}
}

func passkeyFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "passkey",
		Aliases: []string{"p"},
		Usage:   "Passkey (prompted when omitted; also read from " + EnvPasskey + ")",
	}
}

type encodeOptions struct {
	Image   string
	Message string
	Passkey string
	Out     string
	Format  string
}

// EncodeResult describes a written image.
type EncodeResult struct {
	Path   string `json:"path" yaml:"path"`
	Format string `json:"format" yaml:"format"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
}

// Text implements output.Texter.
func (r *EncodeResult) Text() string {
	return fmt.Sprintf("Text successfully encoded into the image and saved at %s", r.Path)
}

func runEncode(c *cli.Context, st *state, opts encodeOptions) error {
	path, err := st.imagePath(opts.Image)
	if err != nil {
		return err
	}
	raster, _, err := imageio.Load(path)
	if err != nil {
		return err
	}

	message := opts.Message
	if message == "" {
		if message, err = st.prompt.NonEmpty("Enter the message"); err != nil {
			return err
		}
	}
	pass, err := st.passkey(opts.Passkey)
	if err != nil {
		return err
	}

	format, err := outputFormat(opts.Format, opts.Out, st.cfg.Image.OutputFormat)
	if err != nil {
		return err
	}
	if err := imageio.CheckWritable(raster, format); err != nil {
		return err
	}

	var spinner *output.Spinner
	if st.showProgress() {
		spinner = output.NewSpinner(st.errOut, "Working on it...")
		spinner.Start()
	}
	pix, err := st.svc.Conceal(c.Context, raster.Pix, message, pass)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	out := opts.Out
	if out == "" {
		out = imageio.OutputPath(path, st.cfg.Image.OutputDir, format)
	}
	if err := imageio.Save(out, raster.WithPix(pix), format); err != nil {
		return err
	}
	st.log.Debug("image written", "path", out, "format", format)

	return st.print(&EncodeResult{
		Path:   out,
		Format: string(format),
		Width:  raster.Width,
		Height: raster.Height,
	})
}

// outputFormat picks the format from the flag, then the extension of an
// explicit output path, then the configured default.
func outputFormat(flag, out, fallback string) (imageio.Format, error) {
	if flag != "" {
		return imageio.ParseOutputFormat(flag)
	}
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), "."); ext != "" {
		return imageio.ParseOutputFormat(ext)
	}
	return imageio.ParseOutputFormat(fallback)
}
