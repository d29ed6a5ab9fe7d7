package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jverel/darkroom/pkg/errors"
	"github.com/jverel/darkroom/pkg/geom"
	"github.com/jverel/darkroom/pkg/imgio"
)

// cropCommand creates the headless crop command.
func (c *CLI) cropCommand() *cobra.Command {
	var (
		rectSpec    string
		displaySpec string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "crop <image>",
		Short: "Crop a region out of an image file",
		Long: `Crop a rectangular region out of an image and write the result to a new file.

The region is given as x,y,w,h in source pixels. With --display WxH the
region is interpreted in display coordinates on a surface of that size
and mapped back to source pixels, matching what the studio does when you
drag a selection on a scaled preview.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			sel, err := parseRect(rectSpec)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			d, err := imgio.Decode(args[0])
			if err != nil {
				return err
			}

			srcW, srcH := d.Image.Bounds().Dx(), d.Image.Bounds().Dy()
			if displaySpec != "" {
				dw, dh, err := parseSize(displaySpec)
				if err != nil {
					return err
				}
				sel = geom.MapToSource(sel, dw, dh, float64(srcW), float64(srcH))
			}

			px := sel.ToPixels(srcW, srcH)
			if px.Empty() {
				return errors.New(errors.ErrCodeInvalidRect, "region %s is outside the image (%dx%d)", sel, srcW, srcH)
			}

			if output == "" {
				output = "crop.png"
			}
			if err := imgio.Save(imgio.Crop(d.Image, px), output); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Cropped %dx%d region", px.Dx(), px.Dy()))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&rectSpec, "rect", "r", "", "region as x,y,w,h (required)")
	cmd.Flags().StringVarP(&displaySpec, "display", "d", "", "interpret --rect in display coordinates on a WxH surface")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default crop.png)")
	_ = cmd.MarkFlagRequired("rect")

	return cmd
}

// parseRect parses "x,y,w,h" into a rectangle.
func parseRect(s string) (geom.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Rect{}, errors.New(errors.ErrCodeInvalidInput, "rect must be x,y,w,h, got %q", s)
	}

	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Rect{}, errors.New(errors.ErrCodeInvalidInput, "rect component %q is not a number", p)
		}
		vals[i] = v
	}

	r := geom.Rect{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}
	if r.W <= 0 || r.H <= 0 {
		return geom.Rect{}, errors.New(errors.ErrCodeInvalidRect, "rect %s must have positive size", r)
	}
	return r, nil
}

// parseSize parses "WxH" into dimensions.
func parseSize(s string) (w, h float64, err error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "size must be WxH, got %q", s)
	}
	w, errW := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	h, errH := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "size must be WxH with positive dimensions, got %q", s)
	}
	return w, h, nil
}
