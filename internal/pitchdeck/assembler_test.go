package pitchdeck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/storage/object"
)

// fakeCodec treats a document's bytes as "pages:N" and records merged parts.
type fakeCodec struct {
	merged []Part
}

func (f *fakeCodec) PageCount(data []byte) (int, error) {
	var n int
	if _, err := fmt.Sscanf(string(data), "pages:%d", &n); err != nil {
		return 0, errors.New("unreadable")
	}
	return n, nil
}

func (f *fakeCodec) Merge(w io.Writer, parts []Part) error {
	f.merged = parts
	for _, p := range parts {
		fmt.Fprintf(w, "%s[%d-%d];", p.Name, p.From, p.To)
	}
	return nil
}

type mapSource map[string]string

func (m mapSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if name == "broken.pdf" {
		return nil, errors.New("disk on fire")
	}
	v, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", object.ErrNotFound, name)
	}
	return []byte(v), nil
}

func TestAssemblePageCountFormula(t *testing.T) {
	src := mapSource{
		"skeleton.pdf": "pages:6",
		"retail.pdf":   "pages:3",
		"a.pdf":        "pages:4",
		"b.pdf":        "pages:2",
	}
	codec := &fakeCodec{}
	a := NewAssembler(codec, src)

	var out bytes.Buffer
	res, err := a.Assemble(context.Background(), &out, Request{
		Skeleton: "skeleton.pdf",
		Industry: &Deck{ID: "retail", PDF: "retail.pdf"},
		Products: []Deck{{ID: "A", PDF: "a.pdf"}, {ID: "C", PDF: "c.pdf"}, {ID: "B", PDF: "b.pdf"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2+3+4+2+2, res.Pages)
	assert.True(t, res.IndustryIncluded)
	assert.Equal(t, []string{"A", "B"}, res.Included)
	assert.Equal(t, []string{"C"}, res.Skipped)
	assert.Equal(t, "skeleton.pdf[1-2];retail.pdf[0-0];a.pdf[0-0];b.pdf[0-0];skeleton.pdf[5-6];", out.String())
}

func TestAssembleWithoutIndustryDeck(t *testing.T) {
	src := mapSource{"skeleton.pdf": "pages:4", "a.pdf": "pages:1"}
	a := NewAssembler(&fakeCodec{}, src)

	for _, ind := range []*Deck{nil, {ID: "retail"}, {ID: "retail", PDF: "missing.pdf"}, {ID: "retail", PDF: "a.txt"}} {
		res, err := a.Assemble(context.Background(), io.Discard, Request{
			Skeleton: "skeleton.pdf",
			Industry: ind,
			Products: []Deck{{ID: "A", PDF: "a.pdf"}},
		})
		require.NoError(t, err)
		assert.False(t, res.IndustryIncluded)
		assert.Equal(t, 5, res.Pages)
	}
}

func TestAssembleSkeletonErrors(t *testing.T) {
	cases := map[string]struct {
		src  mapSource
		want error
	}{
		"missing":     {src: mapSource{"a.pdf": "pages:1"}, want: ErrSkeletonMissing},
		"unreadable":  {src: mapSource{"skeleton.pdf": "garbage", "a.pdf": "pages:1"}, want: ErrSkeletonMissing},
		"three pages": {src: mapSource{"skeleton.pdf": "pages:3", "a.pdf": "pages:1"}, want: ErrSkeletonTooShort},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			codec := &fakeCodec{}
			_, err := NewAssembler(codec, tc.src).Assemble(context.Background(), io.Discard, Request{
				Skeleton: "skeleton.pdf",
				Products: []Deck{{ID: "A", PDF: "a.pdf"}},
			})
			require.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, ErrConfiguration)
			assert.Nil(t, codec.merged)
		})
	}
}

func TestCheckSkeleton(t *testing.T) {
	a := NewAssembler(&fakeCodec{}, mapSource{"ok.pdf": "pages:8", "short.pdf": "pages:2"})

	n, err := a.CheckSkeleton(context.Background(), "ok.pdf")
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	_, err = a.CheckSkeleton(context.Background(), "short.pdf")
	assert.ErrorIs(t, err, ErrSkeletonTooShort)
	_, err = a.CheckSkeleton(context.Background(), "none.pdf")
	assert.ErrorIs(t, err, ErrSkeletonMissing)
}

func TestAssembleNoProductDecks(t *testing.T) {
	src := mapSource{"skeleton.pdf": "pages:4"}
	_, err := NewAssembler(&fakeCodec{}, src).Assemble(context.Background(), io.Discard, Request{
		Skeleton: "skeleton.pdf",
		Products: []Deck{{ID: "A", PDF: "a.pdf"}, {ID: "B", PDF: "b.pdf"}},
	})
	require.ErrorIs(t, err, ErrNoProductDecks)
	assert.False(t, errors.Is(err, ErrConfiguration))
}

func TestAssemblePropagatesStorageErrors(t *testing.T) {
	src := mapSource{"skeleton.pdf": "pages:4", "a.pdf": "pages:1"}
	_, err := NewAssembler(&fakeCodec{}, src).Assemble(context.Background(), io.Discard, Request{
		Skeleton: "skeleton.pdf",
		Products: []Deck{{ID: "A", PDF: "a.pdf"}, {ID: "X", PDF: "broken.pdf"}},
	})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "disk on fire"))
}

func TestPlanRange(t *testing.T) {
	cases := []struct {
		total      int
		head, tail [2]int
	}{
		{10, [2]int{1, 2}, [2]int{9, 10}},
		{4, [2]int{1, 2}, [2]int{3, 4}},
		{3, [2]int{1, 2}, [2]int{2, 3}},
		{2, [2]int{1, 2}, [2]int{1, 2}},
		{1, [2]int{1, 1}, [2]int{1, 1}},
		{0, [2]int{}, [2]int{}},
	}
	for _, tc := range cases {
		head, tail := planRange(tc.total)
		if head != tc.head || tail != tc.tail {
			t.Fatalf("planRange(%d) = %v %v, want %v %v", tc.total, head, tail, tc.head, tc.tail)
		}
	}
}
