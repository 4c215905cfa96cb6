/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newURLsCommand() *cobra.Command {
	sel := &selectionFlags{}
	cmd := &cobra.Command{
		Use:   "urls",
		Short: "Print the SVD source URL of each selected case",
		Long: `Print "<name>\t<url>" for every selected case. The URL is the case's svd_url
when set, otherwise the chip's file in the CMSIS SVD data repository.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cases, err := a.selectCases(sel)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, tc := range cases {
				if _, err := fmt.Fprintf(out, "%s\t%s\n", tc.Name(), tc.SourceURL()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	sel.register(cmd)
	return cmd
}
