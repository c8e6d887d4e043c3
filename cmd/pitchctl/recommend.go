package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/recommend"
)

type requestFlags struct {
	industry  string
	budget    int64
	bandwidth int
	size      int
	sold      []string
	top       int
}

func (f *requestFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.industry, "industry", "", "industry id")
	fs.Int64Var(&f.budget, "budget", 0, "annual budget (INR)")
	fs.IntVar(&f.bandwidth, "bandwidth", 0, "required bandwidth in Mbps")
	fs.IntVar(&f.size, "size", 0, "organization size in employees")
	fs.StringSliceVar(&f.sold, "sold", nil, "product ids already sold")
	fs.IntVar(&f.top, "top", 0, "number of recommendations (default 3)")
	_ = cmd.MarkFlagRequired("industry")
	_ = cmd.MarkFlagRequired("bandwidth")
}

func (f *requestFlags) request(cmd *cobra.Command) recommend.Request {
	req := recommend.Request{
		Industry:      f.industry,
		AnnualBudget:  f.budget,
		BandwidthMbps: f.bandwidth,
		SoldIDs:       f.sold,
		TopN:          f.top,
	}
	if cmd.Flags().Changed("size") {
		size := f.size
		req.Size = &size
	}
	return req
}

type recommendationOutput struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Score         int      `json:"score"`
	TalkingPoints []string `json:"talking_points"`
}

type recommendOutput struct {
	Industry    string                 `json:"industry"`
	Tier        string                 `json:"tier"`
	Recommended []recommendationOutput `json:"recommended"`
}

func (c *cli) recommendCmd() *cobra.Command {
	var flags requestFlags
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print the recommendations for a client profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := c.core(cmd.Context())
			if err != nil {
				return err
			}
			res, err := core.Recommender.Recommend(flags.request(cmd))
			if err != nil {
				return err
			}

			out := recommendOutput{
				Industry:    res.Industry.ID,
				Tier:        string(res.Tier),
				Recommended: make([]recommendationOutput, 0, len(res.Recommended)),
			}
			for _, r := range res.Recommended {
				out.Recommended = append(out.Recommended, recommendationOutput{
					ID:            r.ProductID,
					Name:          r.Name,
					Score:         r.Score,
					TalkingPoints: r.TalkingPoints,
				})
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	flags.register(cmd)
	return cmd
}
