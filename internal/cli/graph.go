package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// graphCommand creates the derivation graph export command.
//
// The graph describes a live workspace, so this command talks to a
// running "darkroom serve" instance instead of reading files.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		addr   string
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Fetch the asset derivation graph from a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "svg", "png", "dot":
			default:
				return fmt.Errorf("unknown format %q (want svg, png, or dot)", format)
			}

			url := fmt.Sprintf("http://%s/graph.%s", addr, format)
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, url, nil)
			if err != nil {
				return err
			}

			client := &http.Client{Timeout: 30 * time.Second}
			resp, err := client.Do(req)
			if err != nil {
				return fmt.Errorf("fetch %s: %w (is darkroom serve running?)", url, err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
			}

			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}

			if output == "" {
				output = "graph." + format
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return err
			}
			printSuccess("Exported derivation graph")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "localhost:8470", "address of the running server")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, png, or dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default graph.<format>)")

	return cmd
}
