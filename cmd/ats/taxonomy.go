package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ats-backend/internal/bootstrap"
)

func newTaxonomyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "taxonomy",
		Short: "List the skill categories and keywords used for scoring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := cliConfig(cmd)
			if err != nil {
				return err
			}
			tax, err := bootstrap.BuildTaxonomy(cfg)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, c := range tax.Categories() {
				fmt.Fprintf(w, "%s (%d): %s\n", c.Name, len(c.Keywords), strings.Join(c.Keywords, ", "))
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
