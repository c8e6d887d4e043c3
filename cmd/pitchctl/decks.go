package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/bootstrap"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/pitchdeck"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/storage/object"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/util"
)

func (c *cli) decksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decks",
		Short: "Manage the decks in the deck store",
	}
	cmd.AddCommand(c.decksPushCmd())
	cmd.AddCommand(c.decksInspectCmd())
	cmd.AddCommand(c.decksCheckCmd())
	return cmd
}

func (c *cli) decksPushCmd() *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "push <file>",
		Short: "Upload a PDF deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			pages, err := pitchdeck.NewPDFCodec().PageCount(data)
			if err != nil {
				return fmt.Errorf("%s is not a readable pdf: %w", args[0], err)
			}
			if key == "" {
				key = filepath.Base(args[0])
			}
			if key, err = util.SanitizeFileName(key); err != nil {
				return err
			}

			store, err := bootstrap.BuildDeckStore(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			n, err := store.SaveWithKey(cmd.Context(), key, "application/pdf", bytes.NewReader(data))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pushed %s (%d pages, %d bytes)\n", key, pages, n)
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "deck name in the store (default: file name)")
	return cmd
}

func (c *cli) decksInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <name>",
		Short: "Print the page count of a stored deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := bootstrap.BuildDeckStore(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			data, err := pitchdeck.NewStoreSource(store).Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			pages, err := pitchdeck.NewPDFCodec().PageCount(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d pages\n", args[0], pages)
			return nil
		},
	}
}

func (c *cli) decksCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the skeleton and every deck the catalog references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			core, err := c.core(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			pages, err := core.Assembler.CheckSkeleton(ctx, c.cfg.SkeletonDeck)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "skeleton %s: %d pages\n", c.cfg.SkeletonDeck, pages)

			missing := 0
			check := func(kind, id, name string) error {
				_, err := core.Source.Fetch(ctx, name)
				switch {
				case err == nil:
					return nil
				case errors.Is(err, object.ErrNotFound):
					missing++
					fmt.Fprintf(w, "missing %s deck %s for %s\n", kind, name, id)
					return nil
				default:
					return err
				}
			}
			for _, ind := range core.Catalog.Industries() {
				if ind.PDF == "" {
					continue
				}
				if err := check("industry", ind.ID, ind.PDF); err != nil {
					return err
				}
			}
			for _, p := range core.Catalog.Products() {
				if err := check("product", p.ID, p.PDF); err != nil {
					return err
				}
			}
			if missing > 0 {
				return fmt.Errorf("%d decks missing", missing)
			}
			fmt.Fprintln(w, "all decks present")
			return nil
		},
	}
}
