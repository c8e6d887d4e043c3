package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/leads"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/pitches"
)

func (c *cli) generateCmd() *cobra.Command {
	var (
		flags requestFlags
		out   string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Assemble a pitch deck locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := c.core(cmd.Context())
			if err != nil {
				return err
			}
			abs, err := filepath.Abs(out)
			if err != nil {
				return err
			}
			svc := &pitches.Service{
				Recommender: core.Recommender,
				Assembler:   core.Assembler,
				Decks:       core.Source,
				Leads:       leads.Nop{},
				Skeleton:    c.cfg.SkeletonDeck,
				TempDir:     filepath.Dir(abs),
			}
			pitch, err := svc.Generate(cmd.Context(), flags.request(cmd), pitches.Requester{})
			if err != nil {
				return err
			}
			defer pitch.Close()
			if err := os.Rename(pitch.Path, abs); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "wrote %s (%d pages)\n", out, pitch.Assembly.Pages)
			fmt.Fprintf(w, "included: %s\n", strings.Join(pitch.Assembly.Included, ", "))
			if len(pitch.Assembly.Skipped) > 0 {
				fmt.Fprintf(w, "skipped (deck missing): %s\n", strings.Join(pitch.Assembly.Skipped, ", "))
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", pitches.PitchFileName, "output file")
	return cmd
}
