package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type productOutput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type catalogOutput struct {
	Products    []productOutput `json:"products"`
	Industries  []string        `json:"industries"`
	BudgetTiers []string        `json:"budget_tiers"`
}

func (c *cli) catalogCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate the catalog and list its products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := c.core(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				snap := core.Recommender.Snapshot()
				doc := catalogOutput{Industries: snap.Industries, BudgetTiers: snap.BudgetTiers}
				for _, p := range snap.Products {
					doc.Products = append(doc.Products, productOutput{ID: p.ID, Name: p.Name})
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTIER\tMIN MBPS\tINDUSTRIES\tPDF")
			for _, p := range core.Catalog.Products() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
					p.ID, p.Name, p.Tier, p.MinBandwidthMbps, strings.Join(p.Industries, ","), p.PDF)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d products, %d industries\n", len(core.Catalog.Products()), len(core.Catalog.Industries()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog snapshot as JSON")
	return cmd
}
