/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/fulmenhq/svdregress/internal/schema"
	"github.com/fulmenhq/svdregress/pkg/buildinfo"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().Bool("extended", false, "Show build and catalog schema information")
	cmd.Flags().Bool("json", false, "Output version information in JSON format")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	extended, _ := cmd.Flags().GetBool("extended")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	out := cmd.OutOrStdout()
	version := buildinfo.Version()

	if jsonOutput {
		versionInfo := map[string]interface{}{
			"version":   version,
			"goVersion": runtime.Version(),
			"platform":  runtime.GOOS,
			"arch":      runtime.GOARCH,
		}
		if extended {
			versionInfo["moduleVersion"] = buildinfo.ModuleVersion()
			versionInfo["catalogSchema"] = schema.CatalogSchema
		}
		jsonData, err := json.MarshalIndent(versionInfo, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON: %v", err)
		}
		_, err = fmt.Fprintln(out, string(jsonData))
		return err
	}

	if !extended {
		_, err := fmt.Fprintf(out, "svdregress %s\n", version)
		return err
	}

	fmt.Fprintf(out, "svdregress %s\n", version)
	if mv := buildinfo.ModuleVersion(); mv != "" {
		fmt.Fprintf(out, "Module Version: %s\n", mv)
	}
	fmt.Fprintf(out, "Catalog Schema: %s\n", schema.CatalogSchema)
	fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
	_, err := fmt.Fprintf(out, "Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	return err
}
