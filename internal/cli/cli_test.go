package snrplot

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/mwiater/snrplot/internal/appconfig"
	"github.com/mwiater/snrplot/internal/dataset"
	"github.com/mwiater/snrplot/internal/plot"
	"go.yaml.in/yaml/v3"
)

var testRecords = []dataset.Record{
	{SNR: 10, SSIM: 0.90, Method: "A", ImageIndex: 0, Group: dataset.Signal},
	{SNR: 20, SSIM: 0.80, Method: "B", ImageIndex: 1, Group: dataset.NoSignal},
	{SNR: 15, SSIM: 0.85, Method: "A", ImageIndex: 2, Group: dataset.NoSignal},
}

func testRenderer() *plot.Renderer {
	return plot.NewRenderer(testRecords, plot.DefaultLayout(), plot.DefaultOptions())
}

func writeDataset(t *testing.T) string {
	t.Helper()
	raw, err := json.Marshal(testRecords)
	if err != nil {
		t.Fatalf("marshal dataset: %v", err)
	}
	path := filepath.Join(t.TempDir(), "metrics_data.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestSummarizeCountsEveryRecord(t *testing.T) {
	summaries := summarize(testRenderer(), []string{dataset.AllMethods, "A", "missing"})
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}

	all := summaries[0]
	if all.Count != 3 || all.Signal != 1 || all.NoSignal != 2 {
		t.Fatalf("unexpected All Methods summary: %+v", all)
	}
	for _, bins := range [][]BinCount{all.SNR, all.SSIM} {
		total := 0
		for _, b := range bins {
			total += b.Signal + b.NoSignal
		}
		if total != 3 {
			t.Fatalf("expected bins to hold 3 records, got %d", total)
		}
	}

	if a := summaries[1]; a.Count != 2 || a.Signal != 1 || a.NoSignal != 1 {
		t.Fatalf("unexpected A summary: %+v", a)
	}
	if m := summaries[2]; m.Count != 0 || m.Signal != 0 || m.NoSignal != 0 {
		t.Fatalf("expected empty summary for unknown category, got %+v", m)
	}
}

func TestWriteSummaryFormats(t *testing.T) {
	summaries := summarize(testRenderer(), []string{"B"})

	var js bytes.Buffer
	if err := writeSummary(&js, summaries, "json"); err != nil {
		t.Fatalf("json summary: %v", err)
	}
	var decoded []CategorySummary
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatalf("decode json summary: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Category != "B" || decoded[0].NoSignal != 1 {
		t.Fatalf("unexpected json summary: %+v", decoded)
	}

	var ym bytes.Buffer
	if err := writeSummary(&ym, summaries, "YAML"); err != nil {
		t.Fatalf("yaml summary: %v", err)
	}
	var fromYAML []CategorySummary
	if err := yaml.Unmarshal(ym.Bytes(), &fromYAML); err != nil {
		t.Fatalf("decode yaml summary: %v", err)
	}
	if len(fromYAML) != 1 || fromYAML[0].Count != 1 {
		t.Fatalf("unexpected yaml summary: %+v", fromYAML)
	}

	if err := writeSummary(&bytes.Buffer{}, summaries, "csv"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestWriteSummaryText(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	var buf bytes.Buffer
	if err := writeSummary(&buf, summarize(testRenderer(), []string{"A"}), "text"); err != nil {
		t.Fatalf("text summary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"A  2 records", "No Signal 1", "Signal 1", "  SNR\n", "  SSIM\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestListCommandsShowsTree(t *testing.T) {
	var buf bytes.Buffer
	runListCommands(&buf, rootCmd)
	out := buf.String()
	for _, want := range []string{"snrplot report", "snrplot export png", "snrplot list methods", "snrplot show config"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in command list:\n%s", want, out)
		}
	}
	if strings.Contains(out, "completion") {
		t.Fatalf("completion command should be hidden")
	}
}

func TestShowConfig(t *testing.T) {
	cfg := &appconfig.Config{DataPath: "custom.json", Sync: true}

	var buf bytes.Buffer
	runShowConfig(&buf, cfg, false)
	out := buf.String()
	for _, want := range []string{"using defaults", "custom.json", "Sync Selections:  true", "800x400", ":8080"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	cfg.ConfigPath = "config/config.json"
	runShowConfig(&buf, cfg, true)
	if !strings.Contains(buf.String(), "Config file: config/config.json") || !strings.Contains(buf.String(), "DataPath") {
		t.Fatalf("expected config path and debug dump:\n%s", buf.String())
	}
}

func TestLoadRendererUsesSeam(t *testing.T) {
	orig := loadRecords
	t.Cleanup(func() { loadRecords = orig })

	var gotPath string
	loadRecords = func(path string) ([]dataset.Record, error) {
		gotPath = path
		return testRecords, nil
	}

	r, err := loadRenderer(&appconfig.Config{})
	if err != nil {
		t.Fatalf("loadRenderer error: %v", err)
	}
	if gotPath != appconfig.DefaultDataPath {
		t.Fatalf("expected default data path, got %q", gotPath)
	}
	if got := r.Methods(); len(got) != 3 || got[0] != dataset.AllMethods {
		t.Fatalf("unexpected methods: %v", got)
	}
}

func TestReportCommandWritesFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "report.html")

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{
		"report",
		"--config", filepath.Join(dir, "missing.json"),
		"--data", writeDataset(t),
		"--logFile", filepath.Join(dir, "snrplot.log"),
		"--output", out,
	})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("report command: %v\n%s", err, stdout.String())
	}
	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("expected report file: %v", err)
	}
	if !strings.Contains(string(raw), `id="plot"`) || !strings.Contains(string(raw), "SNR vs SSIM Comparison") {
		t.Fatalf("report is missing the plot")
	}
	if !strings.Contains(stdout.String(), "Report written to "+out) {
		t.Fatalf("unexpected command output: %s", stdout.String())
	}
}

func TestDisplayAddr(t *testing.T) {
	if got := displayAddr(":8080"); got != "localhost:8080" {
		t.Fatalf("unexpected display addr %q", got)
	}
	if got := displayAddr("0.0.0.0:9000"); got != "0.0.0.0:9000" {
		t.Fatalf("unexpected display addr %q", got)
	}
}
