package cli

import (
	"fmt"

	"github.com/agentx-labs/skilltool/internal/config"
	"github.com/agentx-labs/skilltool/internal/connect"
	"github.com/spf13/cobra"
)

func newConnectCmd(g *globalFlags) *cobra.Command {
	var (
		manifestPath string
		skillsPath   string
		dryRun       bool
		strict       bool
	)

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect the skill to your assistant bot",
		Long: `Append a skill manifest to your assistant's skills configuration file.

Both paths must name existing .json files. Relative paths are resolved against
the current directory. Missing manifest properties are reported as warnings;
set on_validation_failure=abort (or pass --strict) to stop instead. A skill
whose name is already registered is never appended twice.

Example:
  skill connect -m ./manifest.json -a ../assistant/skills.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("skillManifest") && !cmd.Flags().Changed("assistantSkills") {
				return cmd.Help()
			}

			policy, err := connect.ParsePolicy(config.ValidationPolicy())
			if err != nil {
				return fmt.Errorf("reading %s: %w", config.KeyOnValidationFailure, err)
			}
			if strict {
				policy = connect.PolicyAbort
			}

			opts := connect.Options{
				ManifestPath: manifestPath,
				SkillsPath:   skillsPath,
				Policy:       policy,
				DryRun:       dryRun,
			}
			res, err := connect.New(opts, g.printer(cmd), g.logger(cmd)).Connect()
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), string(res.Document))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, connect.ArgSkillManifest, "m", "", "path to Skill Manifest")
	cmd.Flags().StringVarP(&skillsPath, connect.ArgAssistantSkills, "a", "", "path to Virtual Assistant's Skills")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the updated skills file instead of writing it")
	cmd.Flags().BoolVar(&strict, "strict", false, "Abort when the manifest is missing required properties")

	return cmd
}
