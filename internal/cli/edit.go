package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jverel/darkroom/pkg/imgio"
	"github.com/jverel/darkroom/pkg/studio"
)

// editCommand creates the headless edit command.
func (c *CLI) editCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "edit <instruction> <images...>",
		Short: "Send images and an instruction to the edit service",
		Long: `Send one or more input images plus a natural-language instruction to the
generative edit service and save the edited result.

The service endpoint and API key come from the config file
(~/.config/darkroom/config.toml) or the DARKROOM_API_KEY environment
variable. Identical requests are served from the edit result cache.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			instruction := args[0]

			decoded, errs := imgio.DecodeAll(args[1:])
			for _, err := range errs {
				printError("%v", err)
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d input file(s) failed to decode", len(errs))
			}

			assets := make([]studio.Asset, len(decoded))
			for i, d := range decoded {
				assets[i] = studio.Asset{Name: d.Name, MIME: d.MIME, Image: d.Image}
			}

			client, err := c.newEditClient(ctx, noCache)
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(ctx, "Waiting for the edit service...")
			spinner.Start()
			result, err := client.Edit(ctx, instruction, assets)
			if err != nil {
				spinner.StopWithError("Edit failed")
				return err
			}
			spinner.Stop()

			if output == "" {
				output = "edit.png"
			}
			if err := imgio.Save(result, output); err != nil {
				return err
			}

			printSuccess("Edited %d image(s)", len(assets))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default edit.png)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the edit result cache")

	return cmd
}
