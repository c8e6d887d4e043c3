package recommend

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/catalog"
)

func intPtr(v int) *int { return &v }

func retailCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Product{
		{ID: "A", Name: "Alpha", Industries: []string{"retail"}, Tier: catalog.TierSMB, MinBandwidthMbps: 10},
		{ID: "B", Name: "Bravo", Industries: []string{"retail"}, Tier: catalog.TierSMB, MinBandwidthMbps: 100},
	}, []catalog.Industry{{ID: "retail", Name: "Retail"}})
	require.NoError(t, err)
	return c
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		budget int64
		want   catalog.Tier
	}{
		{0, catalog.TierSMB},
		{500_000, catalog.TierSMB},
		{MidTierFloor - 1, catalog.TierSMB},
		{MidTierFloor, catalog.TierMid},
		{5_000_000, catalog.TierMid},
		{EnterpriseTierFloor - 1, catalog.TierMid},
		{EnterpriseTierFloor, catalog.TierEnterprise},
		{1 << 40, catalog.TierEnterprise},
	}
	for _, tc := range cases {
		if got := Classify(tc.budget); got != tc.want {
			t.Fatalf("Classify(%d) = %s, want %s", tc.budget, got, tc.want)
		}
	}
}

func TestScoreCriteria(t *testing.T) {
	p := catalog.Product{
		ID:               "p",
		Industries:       []string{"Retail"},
		MinBandwidthMbps: 50,
		Tier:             catalog.TierMid,
		IdealSize:        &catalog.Range{Min: 10, Max: 100},
	}

	assert.Equal(t, 0, Score(p, "finance", catalog.TierSMB, 10, nil))
	assert.Equal(t, IndustryWeight, Score(p, "retail", catalog.TierSMB, 10, nil))
	assert.Equal(t, IndustryWeight+BandwidthWeight, Score(p, "RETAIL", catalog.TierSMB, 50, nil))
	assert.Equal(t, IndustryWeight+BandwidthWeight+TierWeight, Score(p, "retail", catalog.TierMid, 50, nil))
	assert.Equal(t, MaxScore, Score(p, "retail", catalog.TierMid, 50, intPtr(100)))
	assert.Equal(t, 8, MaxScore)

	// Size outside the range or without a range never adds.
	assert.Equal(t, 7, Score(p, "retail", catalog.TierMid, 50, intPtr(101)))
	p.IdealSize = nil
	assert.Equal(t, 7, Score(p, "retail", catalog.TierMid, 50, intPtr(50)))
}

func TestScoreMonotonic(t *testing.T) {
	p := catalog.Product{
		Industries:       []string{"retail"},
		MinBandwidthMbps: 20,
		Tier:             catalog.TierEnterprise,
		IdealSize:        &catalog.Range{Min: 1, Max: 5},
	}
	base := Score(p, "other", catalog.TierSMB, 1, nil)
	steps := []int{
		Score(p, "retail", catalog.TierSMB, 1, nil),
		Score(p, "retail", catalog.TierSMB, 20, nil),
		Score(p, "retail", catalog.TierEnterprise, 20, nil),
		Score(p, "retail", catalog.TierEnterprise, 20, intPtr(3)),
	}
	prev := base
	for i, s := range steps {
		if s < prev {
			t.Fatalf("step %d decreased score: %d -> %d", i, prev, s)
		}
		prev = s
	}
	assert.Equal(t, MaxScore, prev)
}

func TestRecommendRetailExample(t *testing.T) {
	svc := NewService(retailCatalog(t))

	res, err := svc.Recommend(Request{Industry: "retail", AnnualBudget: 500_000, BandwidthMbps: 50})
	require.NoError(t, err)
	assert.Equal(t, catalog.TierSMB, res.Tier)
	require.Len(t, res.Recommended, 2)
	assert.Equal(t, "A", res.Recommended[0].ProductID)
	assert.Equal(t, 7, res.Recommended[0].Score)
	assert.Equal(t, "B", res.Recommended[1].ProductID)
	assert.Equal(t, 5, res.Recommended[1].Score)
	assert.Equal(t, []string{"A", "B"}, res.ProductIDs())
}

func TestRecommendExcludesSoldCaseInsensitive(t *testing.T) {
	svc := NewService(retailCatalog(t))

	res, err := svc.Recommend(Request{Industry: "retail", AnnualBudget: 500_000, BandwidthMbps: 50, SoldIDs: []string{" a "}})
	require.NoError(t, err)
	require.Len(t, res.Recommended, 1)
	assert.Equal(t, "B", res.Recommended[0].ProductID)
	assert.Equal(t, 5, res.Recommended[0].Score)
}

func TestRecommendEmptyIsNotAnError(t *testing.T) {
	c, err := catalog.New([]catalog.Product{
		{ID: "X", Industries: []string{"finance"}, Tier: catalog.TierEnterprise, MinBandwidthMbps: 1000},
	}, []catalog.Industry{{ID: "retail"}})
	require.NoError(t, err)
	svc := NewService(c)

	// X targets enterprise, so the enterprise segment exists but X only scores the tier weight.
	res, err := svc.Recommend(Request{Industry: "retail", AnnualBudget: EnterpriseTierFloor, BandwidthMbps: 10})
	require.NoError(t, err)
	assert.Empty(t, res.Recommended)
}

func TestRecommendNoSegment(t *testing.T) {
	svc := NewService(retailCatalog(t))

	_, err := svc.Recommend(Request{Industry: "mining", AnnualBudget: 1, BandwidthMbps: 10})
	require.ErrorIs(t, err, ErrNoSegment)

	c, err := catalog.New([]catalog.Product{
		{ID: "X", Industries: []string{"finance"}, Tier: catalog.TierEnterprise},
	}, []catalog.Industry{{ID: "retail"}})
	require.NoError(t, err)
	_, err = NewService(c).Recommend(Request{Industry: "retail", AnnualBudget: 1, BandwidthMbps: 10})
	require.ErrorIs(t, err, ErrNoSegment)
}

func TestRecommendValidation(t *testing.T) {
	svc := NewService(retailCatalog(t))
	bad := []Request{
		{Industry: "", AnnualBudget: 1, BandwidthMbps: 1},
		{Industry: "retail", AnnualBudget: -1, BandwidthMbps: 1},
		{Industry: "retail", AnnualBudget: 1, BandwidthMbps: 0},
		{Industry: "retail", AnnualBudget: 1, BandwidthMbps: 1, Size: intPtr(-2)},
		{Industry: "retail", AnnualBudget: 1, BandwidthMbps: 1, TopN: MaxTopN + 1},
		{Industry: "retail", AnnualBudget: 1, BandwidthMbps: 1, TopN: -1},
	}
	for i, req := range bad {
		if _, err := svc.Recommend(req); !assert.ErrorIs(t, err, ErrInvalidRequest, "case %d", i) {
			return
		}
	}
}

func wideCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	names := []string{"delta", "Charlie", "bravo", "Echo", "alpha", "Foxtrot", "golf"}
	products := make([]catalog.Product, 0, len(names))
	for i, n := range names {
		tier := catalog.TierSMB
		if i%2 == 0 {
			tier = catalog.TierMid
		}
		products = append(products, catalog.Product{
			ID:               fmt.Sprintf("p%02d", len(names)-i),
			Name:             n,
			Industries:       []string{"retail"},
			Tier:             tier,
			MinBandwidthMbps: 10 * i,
		})
	}
	c, err := catalog.New(products, nil)
	require.NoError(t, err)
	return c
}

func TestSelectOrderingAndLimit(t *testing.T) {
	c := wideCatalog(t)
	for _, topN := range []int{0, 1, 2, 5, MaxTopN} {
		req := Request{Industry: "retail", AnnualBudget: 100, BandwidthMbps: 30, TopN: topN}
		got := Select(c, req)

		limit := req.limit()
		if len(got) > limit {
			t.Fatalf("topN=%d: got %d results", topN, len(got))
		}
		for i, s := range got {
			if s.Score < MinScore {
				t.Fatalf("score below threshold: %+v", s)
			}
			if i == 0 {
				continue
			}
			prev := got[i-1]
			if prev.Score < s.Score {
				t.Fatalf("not sorted by score: %d before %d", prev.Score, s.Score)
			}
			if prev.Score == s.Score && strings.ToLower(prev.Product.Name) > strings.ToLower(s.Product.Name) {
				t.Fatalf("tie not sorted by name: %q before %q", prev.Product.Name, s.Product.Name)
			}
		}
	}
}

func TestSelectDefaultsToThree(t *testing.T) {
	got := Select(wideCatalog(t), Request{Industry: "retail", AnnualBudget: 100, BandwidthMbps: 100})
	assert.Len(t, got, DefaultTopN)
}

func TestSelectTieBreakIgnoresID(t *testing.T) {
	c, err := catalog.New([]catalog.Product{
		{ID: "a9", Name: "beta", Industries: []string{"retail"}, Tier: catalog.TierSMB},
		{ID: "z1", Name: "Alpha", Industries: []string{"retail"}, Tier: catalog.TierSMB},
	}, nil)
	require.NoError(t, err)

	got := Select(c, Request{Industry: "retail", BandwidthMbps: 1, TopN: 2})
	require.Len(t, got, 2)
	assert.Equal(t, "Alpha", got[0].Product.Name)
	assert.Equal(t, "beta", got[1].Product.Name)
}

func TestRecommendIdempotent(t *testing.T) {
	svc := NewService(wideCatalog(t))
	req := Request{Industry: "retail", AnnualBudget: 3_000_000, BandwidthMbps: 40, Size: intPtr(20), SoldIDs: []string{"P03"}, TopN: 5}

	first, err := svc.Recommend(req)
	require.NoError(t, err)
	second, err := svc.Recommend(req)
	require.NoError(t, err)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ:\n%+v\n%+v", first, second)
	}
	for _, rec := range first.Recommended {
		assert.NotEqual(t, "p03", strings.ToLower(rec.ProductID))
	}
}

func TestTalkingPointsOrder(t *testing.T) {
	p := catalog.Product{
		ID:             "sdwan",
		Industries:     []string{"retail"},
		TalkTrack:      "Connect every store on one fabric.",
		IdealSize:      &catalog.Range{Min: 50, Max: 500},
		IdealBandwidth: &catalog.Range{Min: 100, Max: 1000},
	}

	got := TalkingPoints(p, "retail", "Retail", intPtr(40), 200)
	want := []string{
		"Connect every store on one fabric.",
		"Primary fit is 50-500 employees; at 40 employees the client is outside the primary range but compatible.",
		"Designed for 100-1000 Mbps links; the requested 200 Mbps is in range.",
		"Proven traction with Retail clients.",
	}
	assert.Equal(t, want, got)
}

func TestTalkingPointsOmitsMissingData(t *testing.T) {
	p := catalog.Product{ID: "bare", Industries: []string{"finance"}, IdealSize: &catalog.Range{Min: 1, Max: 10}}

	assert.Empty(t, TalkingPoints(p, "retail", "", nil, 50))

	got := TalkingPoints(p, "finance", "", intPtr(5), 50)
	assert.Equal(t, []string{
		"Built for organizations of 1-10 employees; at 5 employees the client is in range.",
		"Proven traction with finance clients.",
	}, got)
}

func TestProductLookup(t *testing.T) {
	svc := NewService(retailCatalog(t))

	p, err := svc.Product("a")
	require.NoError(t, err)
	assert.Equal(t, "A.pdf", p.PDF)

	_, err = svc.Product("nope")
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestSnapshot(t *testing.T) {
	snap := NewService(retailCatalog(t)).Snapshot()

	assert.Equal(t, []ProductRef{{ID: "A", Name: "Alpha"}, {ID: "B", Name: "Bravo"}}, snap.Products)
	assert.Equal(t, []string{"retail"}, snap.Industries)
	assert.Equal(t, []string{"smb", "mid", "enterprise"}, snap.BudgetTiers)
}
