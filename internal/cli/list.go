package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/roster-dev/roster/internal/manifest"
	"github.com/spf13/cobra"
)

var (
	listKindFilter string
	listJSON       bool
)

func init() {
	listCmd.Flags().StringVar(&listKindFilter, "kind", "", "Filter by kind (skill, agent, command)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List manifest entries",
	RunE:  runList,
}

// listEntry represents one manifest entry for display.
type listEntry struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

func runList(cmd *cobra.Command, args []string) error {
	dir, err := resolveRegistryDir()
	if err != nil {
		return err
	}
	path, err := manifest.Find(dir)
	if err != nil {
		return err
	}
	doc, err := manifest.Load(path)
	if err != nil {
		return err
	}

	if listKindFilter != "" {
		if _, err := parseKind(listKindFilter); err != nil {
			return err
		}
	}

	var entries []listEntry
	for _, kind := range manifest.Kinds {
		if listKindFilter != "" && kind.String() != listKindFilter {
			continue
		}
		for _, e := range doc.Collection(kind) {
			name, _ := e.Name()
			version, _ := e.StringField("version")
			description, _ := e.StringField("description")
			entries = append(entries, listEntry{
				Kind:        kind.String(),
				Name:        name,
				Version:     version,
				Description: description,
			})
		}
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No entries in the manifest.")
		return nil
	}

	if listJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KIND\tNAME\tVERSION\tDESCRIPTION")
	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = "-"
		}
		version := e.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Kind, name, version, e.Description)
	}
	return w.Flush()
}

// parseKind maps a CLI kind argument to its manifest kind.
func parseKind(s string) (manifest.Kind, error) {
	for _, kind := range manifest.Kinds {
		if kind.String() == s {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q (valid: skill, agent, command)", s)
}
