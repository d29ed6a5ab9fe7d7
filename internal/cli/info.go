package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jverel/darkroom/pkg/imgio"
)

// infoCommand creates the image inspection command.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <image>...",
		Short: "Inspect image files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decoded, errs := imgio.DecodeAll(args)

			for _, d := range decoded {
				printKeyValue("File", d.Path)
				printKeyValue("Format", d.MIME)
				printKeyValue("Size", fmt.Sprintf("%dx%d", d.Image.Bounds().Dx(), d.Image.Bounds().Dy()))
				printNewline()
			}
			for _, err := range errs {
				printError("%v", err)
			}

			if len(errs) > 0 && len(decoded) == 0 {
				return fmt.Errorf("no readable images in %d file(s)", len(args))
			}
			return nil
		},
	}
}
