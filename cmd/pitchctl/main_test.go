package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/pitchdeck"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/pitchdeck/pdftest"
)

const testCatalog = `
industries:
  - id: retail
    name: Retail
    pdf: Retail.pdf
products:
  - id: A
    name: Alpha
    industries: [retail]
    tier: smb
    min_bandwidth_mbps: 10
    pdf: A.pdf
  - id: B
    name: Bravo
    industries: [retail]
    tier: smb
    min_bandwidth_mbps: 100
    pdf: B.pdf
`

type env struct {
	catalog string
	decks   string
	dir     string
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	decks := filepath.Join(dir, "decks")
	if err := os.MkdirAll(decks, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	write := func(path string, data []byte) {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	write(filepath.Join(dir, "catalog.yaml"), []byte(testCatalog))
	write(filepath.Join(decks, "skeleton.pdf"), pdftest.Build(4))
	write(filepath.Join(decks, "A.pdf"), pdftest.Build(2))
	write(filepath.Join(decks, "B.pdf"), pdftest.Build(1))
	return env{catalog: filepath.Join(dir, "catalog.yaml"), decks: decks, dir: dir}
}

func (e env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DECK_STORE", "local")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--catalog", e.catalog, "--deck-dir", e.decks, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCatalogListsProducts(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "catalog")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if !strings.Contains(out, "Alpha") || !strings.Contains(out, "2 products, 1 industries") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestCatalogJSON(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "catalog", "--json")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	var doc catalogOutput
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(doc.Products) != 2 || doc.Products[0].ID != "A" {
		t.Fatalf("unexpected products: %+v", doc.Products)
	}
	if len(doc.Industries) != 1 || doc.Industries[0] != "retail" {
		t.Fatalf("unexpected industries: %v", doc.Industries)
	}
}

func TestRecommendPrintsJSON(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "recommend", "--industry", "retail", "--budget", "500000", "--bandwidth", "50")
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	var doc recommendOutput
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(doc.Recommended) != 2 || doc.Recommended[0].ID != "A" || doc.Recommended[0].Score != 7 {
		t.Fatalf("unexpected recommendations: %+v", doc.Recommended)
	}
	if doc.Tier != "smb" {
		t.Fatalf("expected smb tier, got %q", doc.Tier)
	}
}

func TestRecommendRejectsUnknownIndustry(t *testing.T) {
	e := newEnv(t)
	if _, err := e.run(t, "recommend", "--industry", "mining", "--budget", "500000", "--bandwidth", "50"); err == nil {
		t.Fatalf("expected error for unknown industry")
	}
}

func TestGenerateWritesPitch(t *testing.T) {
	e := newEnv(t)
	target := filepath.Join(e.dir, "out", "pitch.pdf")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	out, err := e.run(t, "generate", "--industry", "retail", "--budget", "500000", "--bandwidth", "50", "--out", target)
	if err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read pitch: %v", err)
	}
	// 2 head + A(2) + B(1) + 2 tail; the industry deck is absent.
	pages, err := pitchdeck.NewPDFCodec().PageCount(data)
	if err != nil || pages != 7 {
		t.Fatalf("expected 7 pages, got %d (%v)", pages, err)
	}
	entries, _ := os.ReadDir(filepath.Dir(target))
	if len(entries) != 1 {
		t.Fatalf("expected only the pitch in the output dir, got %d entries", len(entries))
	}
	if !strings.Contains(out, "included: A, B") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestDecksPushAndInspect(t *testing.T) {
	e := newEnv(t)
	src := filepath.Join(e.dir, "retail deck.pdf")
	if err := os.WriteFile(src, pdftest.Build(3), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := e.run(t, "decks", "push", src, "--key", "Retail.pdf"); err != nil {
		t.Fatalf("push: %v", err)
	}
	out, err := e.run(t, "decks", "inspect", "Retail.pdf")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out, "Retail.pdf: 3 pages") {
		t.Fatalf("unexpected output: %q", out)
	}

	out, err = e.run(t, "decks", "check")
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	if !strings.Contains(out, "all decks present") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestDecksPushRejectsNonPDF(t *testing.T) {
	e := newEnv(t)
	src := filepath.Join(e.dir, "notes.txt")
	if err := os.WriteFile(src, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := e.run(t, "decks", "push", src); err == nil {
		t.Fatalf("expected error for non-pdf upload")
	}
}

func TestDecksCheckReportsMissing(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "decks", "check")
	if err == nil {
		t.Fatalf("expected missing deck error")
	}
	if !strings.Contains(out, "missing industry deck Retail.pdf for retail") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
