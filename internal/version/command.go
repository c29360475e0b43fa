package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/getver/internal/scm"
)

// AttachCobraVersionCommand attaches a `version` subcommand to the provided root command.
// It prints detailed build info.
func AttachCobraVersionCommand(root *cobra.Command) {
	var (
		head      bool
		extractor string
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		Long: `Print version information including build metadata, commit hash, and build timestamp.

The version is the one stamped at build time, or the module version embedded by the Go toolchain.
With --head, the description of the git checkout the binary was built from is appended in parentheses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tagExtractor, err := scm.New(extractor)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), Full(cmd.Context(), tagExtractor, head))

			return nil
		},
	}

	cmd.Flags().BoolVarP(&head, "head", "H", false, "append the version described by the source checkout")
	cmd.Flags().StringVarP(&extractor, "extractor", "e", scm.KindGit, "tag extractor backend: git or go-git")

	root.AddCommand(cmd)
}
