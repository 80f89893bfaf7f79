package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/agentx-labs/skilltool/internal/connect"
	"github.com/agentx-labs/skilltool/internal/manifest"
	"github.com/spf13/cobra"
)

// listEntry represents a registered skill for display.
type listEntry struct {
	Name     string `json:"name"`
	ID       string `json:"id"`
	Endpoint string `json:"endpoint"`
	Actions  int    `json:"actions"`
}

func newListCmd() *cobra.Command {
	var (
		skillsPath string
		listJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List skills registered with an assistant",
		Long:  `List every skill in an assistant's skills configuration file, in registration order.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}

			path, err := connect.Resolve(cwd, connect.ArgAssistantSkills, skillsPath)
			if err != nil {
				return err
			}

			skills, err := manifest.LoadCollection(path)
			if err != nil {
				return err
			}

			entries := make([]listEntry, 0, skills.Len())
			for _, s := range skills.Skills {
				entries = append(entries, listEntry{
					Name:     s.Name,
					ID:       s.ID,
					Endpoint: s.Endpoint,
					Actions:  s.ActionCount(),
				})
			}

			if listJSON {
				out, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling JSON: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No skills registered yet.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tID\tENDPOINT\tACTIONS")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", e.Name, e.ID, e.Endpoint, e.Actions)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&skillsPath, connect.ArgAssistantSkills, "a", "", "path to Virtual Assistant's Skills")
	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")

	return cmd
}
