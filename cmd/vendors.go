/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"strings"

	"github.com/fulmenhq/svdregress/pkg/render"
	"github.com/fulmenhq/svdregress/pkg/taxonomy"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type vendorEntry struct {
	Vendor taxonomy.Vendor  `json:"vendor" yaml:"vendor"`
	Groups []taxonomy.Group `json:"groups" yaml:"groups"`
}

func vendorEntries() []vendorEntry {
	vendors := taxonomy.AllVendors()
	out := make([]vendorEntry, 0, len(vendors))
	for _, v := range vendors {
		groups := taxonomy.GroupsOf(v)
		if groups == nil {
			groups = []taxonomy.Group{}
		}
		out = append(out, vendorEntry{Vendor: v, Groups: groups})
	}
	return out
}

func (a *app) newVendorsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendors",
		Short: "Show the vendor taxonomy",
		Long: `Show every vendor with the catalog groups that map to it. A group's vendor
names the directory of the CMSIS SVD data repository its files live in.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := a.outputFormat(cmd, "text", "json", "yaml", "yml")
			if err != nil {
				return err
			}
			entries := vendorEntries()
			out := cmd.OutOrStdout()
			switch format {
			case "text":
				tbl := render.Table{Headers: []string{"VENDOR", "GROUPS"}}
				for _, e := range entries {
					names := make([]string, len(e.Groups))
					for i, g := range e.Groups {
						names[i] = g.String()
					}
					if len(names) == 0 {
						names = []string{"-"}
					}
					tbl.AddRow(e.Vendor.String(), strings.Join(names, ", "))
				}
				return tbl.Write(out)
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			case "yaml", "yml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(entries); err != nil {
					return err
				}
				return enc.Close()
			}
			return nil
		},
	}
	cmd.Flags().String("format", "text", "Output format (text|json|yaml)")
	return cmd
}
