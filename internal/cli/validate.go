package cli

import (
	"fmt"
	"os"

	"github.com/agentx-labs/skilltool/internal/connect"
	"github.com/agentx-labs/skilltool/internal/manifest"
	"github.com/spf13/cobra"
)

func newValidateCmd(g *globalFlags) *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a skill manifest for required properties",
		Long: `Check that a skill manifest has every property an assistant needs:
name, id, endpoint, authenticationConnections and at least one action.
Nothing is written. Exits non-zero when a property is missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}

			path, err := connect.Resolve(cwd, connect.ArgSkillManifest, manifestPath)
			if err != nil {
				return err
			}

			m, err := manifest.LoadManifest(path)
			if err != nil {
				return err
			}

			p := g.printer(cmd)
			missing := manifest.Check(m)
			for _, w := range missing {
				p.Warn(w.String())
			}
			if len(missing) > 0 {
				return &connect.ValidationError{Path: path, Missing: missing}
			}

			p.Success(fmt.Sprintf("The manifest '%s' has all required properties.", m.Name))
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, connect.ArgSkillManifest, "m", "", "path to Skill Manifest")

	return cmd
}
