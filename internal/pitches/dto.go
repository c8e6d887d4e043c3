package pitches

import (
	"strings"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/recommend"
)

type recommendRequest struct {
	Industry            string   `json:"industry" binding:"required"`
	AnnualBudgetINR     *int64   `json:"annual_budget_inr" binding:"required,gte=0"`
	BandwidthMbps       int      `json:"bandwidth_mbps" binding:"required,gte=1"`
	Size                *int     `json:"size" binding:"omitempty,gte=0"`
	ProductsAlreadySold []string `json:"products_already_sold"`
	TopN                int      `json:"top_n" binding:"omitempty,gte=1,lte=10"`
	ClientName          string   `json:"client_name"`
	NAMName             string   `json:"nam_name"`
}

func (r recommendRequest) toRequest() recommend.Request {
	req := recommend.Request{
		Industry:      strings.TrimSpace(r.Industry),
		BandwidthMbps: r.BandwidthMbps,
		Size:          r.Size,
		SoldIDs:       r.ProductsAlreadySold,
		TopN:          r.TopN,
	}
	if r.AnnualBudgetINR != nil {
		req.AnnualBudget = *r.AnnualBudgetINR
	}
	return req
}

func (r recommendRequest) requester() Requester {
	return Requester{
		ClientName: strings.TrimSpace(r.ClientName),
		NAMName:    strings.TrimSpace(r.NAMName),
	}
}

type productRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type catalogResponse struct {
	Products    []productRef `json:"products"`
	Industries  []string     `json:"industries"`
	ProductIDs  []productRef `json:"product_ids"`
	BudgetTiers []string     `json:"budget_tiers"`
}

type recommendationResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Score         int      `json:"score"`
	TalkingPoints []string `json:"talking_points"`
	PDF           string   `json:"pdf"`
}

type recommendResponse struct {
	Industry    string                   `json:"industry"`
	Tier        string                   `json:"tier"`
	Recommended []recommendationResponse `json:"recommended"`
}

func toCatalogResponse(s recommend.Snapshot) catalogResponse {
	refs := make([]productRef, 0, len(s.Products))
	for _, p := range s.Products {
		refs = append(refs, productRef{ID: p.ID, Name: p.Name})
	}
	ids := make([]productRef, len(refs))
	copy(ids, refs)
	return catalogResponse{
		Products:    refs,
		Industries:  s.Industries,
		ProductIDs:  ids,
		BudgetTiers: s.BudgetTiers,
	}
}

func toRecommendResponse(res recommend.Result) recommendResponse {
	out := recommendResponse{
		Industry:    res.Industry.ID,
		Tier:        string(res.Tier),
		Recommended: make([]recommendationResponse, 0, len(res.Recommended)),
	}
	for _, rec := range res.Recommended {
		points := rec.TalkingPoints
		if points == nil {
			points = []string{}
		}
		out.Recommended = append(out.Recommended, recommendationResponse{
			ID:            rec.ProductID,
			Name:          rec.Name,
			Score:         rec.Score,
			TalkingPoints: points,
			PDF:           rec.PDF,
		})
	}
	return out
}
