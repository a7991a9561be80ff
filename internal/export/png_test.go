package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwiater/snrplot/internal/dataset"
	"github.com/mwiater/snrplot/internal/plot"
	"github.com/wcharczuk/go-chart/v2"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func testRenderer() *plot.Renderer {
	records := []dataset.Record{
		{SNR: 10, SSIM: 0.9, Method: "BM3D", ImageIndex: 0, Group: dataset.Signal},
		{SNR: 20, SSIM: 0.8, Method: "Non Local Means", ImageIndex: 1, Group: dataset.NoSignal},
		{SNR: 14, SSIM: 0.86, Method: "BM3D", ImageIndex: 2, Group: dataset.NoSignal},
	}
	return plot.NewRenderer(records, plot.DefaultLayout(), plot.DefaultOptions())
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		dataset.AllMethods: "all-methods",
		"Non Local Means":  "non-local-means",
		"***":              "category",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Fatalf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestScatterChartGroupsSeries(t *testing.T) {
	r := testRenderer()
	ch := ScatterChart(r, r.Update("BM3D"))
	if len(ch.Series) != 2 {
		t.Fatalf("expected one series per group, got %d", len(ch.Series))
	}
	if ch.XAxis.Range.GetMin() != r.Scales().ScatterX.Domain[0] {
		t.Fatalf("expected fixed x range")
	}
}

func TestScatterChartEmptySelection(t *testing.T) {
	r := testRenderer()
	ch := ScatterChart(r, r.Update("missing"))
	if len(ch.Series) != 1 {
		t.Fatalf("expected placeholder series, got %d", len(ch.Series))
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		t.Fatalf("render empty scatter: %v", err)
	}
}

func TestWritePNGs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "png")
	paths, err := WritePNGs(testRenderer(), dataset.AllMethods, dir)
	if err != nil {
		t.Fatalf("WritePNGs error: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 files, got %v", paths)
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		if !bytes.HasPrefix(data, pngMagic) {
			t.Fatalf("%s is not a PNG", p)
		}
	}
	if filepath.Base(paths[0]) != "scatter_all-methods.png" {
		t.Fatalf("unexpected file name %s", paths[0])
	}
}

func TestAllCategoriesKeepsCollidingNamesApart(t *testing.T) {
	records := []dataset.Record{
		{SNR: 10, SSIM: 0.9, Method: "高斯", ImageIndex: 0, Group: dataset.Signal},
		{SNR: 12, SSIM: 0.85, Method: "小波", ImageIndex: 1, Group: dataset.NoSignal},
		{SNR: 14, SSIM: 0.88, Method: "non local", ImageIndex: 2, Group: dataset.Signal},
		{SNR: 16, SSIM: 0.82, Method: "non-local", ImageIndex: 3, Group: dataset.NoSignal},
	}
	r := plot.NewRenderer(records, plot.DefaultLayout(), plot.DefaultOptions())

	dir := t.TempDir()
	paths, err := AllCategories(r, dir)
	if err != nil {
		t.Fatalf("AllCategories error: %v", err)
	}
	if want := 3 * len(r.Methods()); len(paths) != want {
		t.Fatalf("expected %d files, got %d", want, len(paths))
	}
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if seen[p] {
			t.Fatalf("%s written twice", filepath.Base(p))
		}
		seen[p] = true
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read export dir: %v", err)
	}
	if len(entries) != len(paths) {
		t.Fatalf("expected %d files on disk, got %d", len(paths), len(entries))
	}

	single, err := WritePNGs(r, "小波", t.TempDir())
	if err != nil {
		t.Fatalf("WritePNGs error: %v", err)
	}
	if got := filepath.Base(single[0]); got != "scatter_category-2.png" {
		t.Fatalf("unexpected file name %s", got)
	}
}

func TestFileStems(t *testing.T) {
	stems := FileStems([]string{dataset.AllMethods, "non local", "non-local", "BM3D"})
	want := map[string]string{
		dataset.AllMethods: "all-methods",
		"non local":        "non-local-1",
		"non-local":        "non-local-2",
		"BM3D":             "bm3d",
	}
	for m, w := range want {
		if stems[m] != w {
			t.Fatalf("stem for %q = %q, want %q", m, stems[m], w)
		}
	}
}
