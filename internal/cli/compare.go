package cli

import (
	"github.com/spf13/cobra"
)

// newCompareCmd creates the compare command for per-document comparison
// clouds. It shares the cloud flag set; comparison mode and the legend
// are switched on by default.
func newCompareCmd(cfg *Config) *cobra.Command {
	var formatsStr string
	opts := cloudOpts{
		compare: true,
		legend:  true,
	}

	cmd := &cobra.Command{
		Use:   "compare <paths...>",
		Short: "Build a comparison cloud across several documents",
		Long:  `Compare builds one cloud over several documents, coloring each word by the document it is most frequent in and drawing a legend mapping colors to documents.`,
		Args:  cobra.MinimumNArgs(1), // a single directory yields multiple documents
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return runCloud(cmd.Context(), cfg, args, &opts)
		},
	}

	bindCloudFlags(cmd, &opts, &formatsStr)
	return cmd
}
