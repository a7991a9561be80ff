// internal/report/report.go
// Package report renders the interactive plot page, either as a standalone
// file carrying every selection or as a live page driven over a websocket.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/mwiater/snrplot/internal/dataset"
	"github.com/mwiater/snrplot/internal/plot"
	"github.com/mwiater/snrplot/internal/util"
)

// Frame is the drawn state of one selection.
type Frame struct {
	Category  string `json:"category"`
	Count     int    `json:"count"`
	Scatter   string `json:"scatter"`
	Histogram string `json:"histogram"`
}

// RenderFrame draws both surfaces for category.
func RenderFrame(r *plot.Renderer, category string) (Frame, error) {
	return FrameFromView(r, r.Update(category))
}

// FrameFromView draws both surfaces for an already computed view.
func FrameFromView(r *plot.Renderer, view plot.View) (Frame, error) {
	var scatter, hist strings.Builder
	if err := r.WriteScatterSVG(&scatter, view); err != nil {
		return Frame{}, fmt.Errorf("draw scatter for %q: %w", view.Category, err)
	}
	if err := r.WriteHistogramSVG(&hist, view); err != nil {
		return Frame{}, fmt.Errorf("draw histogram for %q: %w", view.Category, err)
	}
	return Frame{
		Category:  view.Category,
		Count:     view.Count,
		Scatter:   scatter.String(),
		Histogram: hist.String(),
	}, nil
}

// PageData feeds the page template.
type PageData struct {
	Title      string
	Methods    []string
	Initial    Frame
	Scatter    template.HTML
	Histogram  template.HTML
	FramesJSON template.JS
	LiveURL    string
	OffsetX    int
	OffsetY    int
}

// Generate renders a standalone page with every selection embedded.
func Generate(r *plot.Renderer) (string, error) {
	frames := make(map[string]Frame, len(r.Methods()))
	for _, m := range r.Methods() {
		frame, err := RenderFrame(r, m)
		if err != nil {
			return "", err
		}
		frames[m] = frame
	}
	payload, err := json.Marshal(frames)
	if err != nil {
		return "", err
	}
	return execute(r, frames[dataset.AllMethods], template.JS(payload), "")
}

// GenerateLive renders a page that requests selections over the websocket at
// wsPath.
func GenerateLive(r *plot.Renderer, wsPath string) (string, error) {
	initial, err := RenderFrame(r, dataset.AllMethods)
	if err != nil {
		return "", err
	}
	return execute(r, initial, template.JS("null"), wsPath)
}

func execute(r *plot.Renderer, initial Frame, frames template.JS, liveURL string) (string, error) {
	viewModel := PageData{
		Title:      "snrplot: SNR vs SSIM",
		Methods:    r.Methods(),
		Initial:    initial,
		Scatter:    template.HTML(initial.Scatter),
		Histogram:  template.HTML(initial.Histogram),
		FramesJSON: frames,
		LiveURL:    liveURL,
		OffsetX:    plot.TooltipOffsetX,
		OffsetY:    plot.TooltipOffsetY,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, viewModel); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteFile writes html to path, creating parent directories.
func WriteFile(path, html string) error {
	if err := util.WriteFile(path, []byte(html)); err != nil {
		return fmt.Errorf("unable to write HTML report %s: %w", path, err)
	}
	return nil
}

var pageTemplate = template.Must(template.New("snrplot-page").Parse(pageTemplateHTML))

const pageTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    body { font-family: sans-serif; margin: 20px; }
    #plot select { display: block; margin-bottom: 10px; }
    .tooltip {
      position: absolute;
      background-color: white;
      border: 1px solid black;
      padding: 10px;
      border-radius: 5px;
      opacity: 0;
      pointer-events: none;
      white-space: pre-line;
      transition: opacity 500ms;
    }
    .tooltip.visible { opacity: 0.9; transition: opacity 200ms; }
  </style>
</head>
<body>
  <div id="plot">
    <select>
      {{- range .Methods }}
      <option value="{{ . }}"{{ if eq . $.Initial.Category }} selected{{ end }}>{{ . }}</option>
      {{- end }}
    </select>
    <div class="scatter-surface">{{ .Scatter }}</div>
    <div class="histogram-surface">{{ .Histogram }}</div>
    <div class="tooltip"></div>
  </div>
  <script>
  (function () {
    const plot = document.getElementById("plot");
    const select = plot.querySelector("select");
    const tooltip = plot.querySelector(".tooltip");
    const scatter = plot.querySelector(".scatter-surface");
    const histogram = plot.querySelector(".histogram-surface");
    const frames = {{ .FramesJSON }};
    const liveURL = {{ .LiveURL }};

    function bindTooltips() {
      plot.querySelectorAll("circle.point").forEach(function (point) {
        point.addEventListener("mouseover", function (event) {
          tooltip.textContent = point.dataset.tooltip;
          tooltip.style.left = (event.pageX + {{.OffsetX}}) + "px";
          tooltip.style.top = (event.pageY + {{.OffsetY}}) + "px";
          tooltip.classList.add("visible");
        });
        point.addEventListener("mouseout", function () {
          tooltip.classList.remove("visible");
        });
      });
    }

    function show(frame) {
      if (!frame) { return; }
      scatter.innerHTML = frame.scatter;
      histogram.innerHTML = frame.histogram;
      select.value = frame.category;
      bindTooltips();
    }

    if (liveURL) {
      const scheme = location.protocol === "https:" ? "wss://" : "ws://";
      const socket = new WebSocket(scheme + location.host + liveURL);
      socket.onmessage = function (event) { show(JSON.parse(event.data)); };
      select.addEventListener("change", function () {
        socket.send(JSON.stringify({ method: select.value }));
      });
    } else {
      select.addEventListener("change", function () { show(frames[select.value]); });
    }
    bindTooltips();
  })();
  </script>
</body>
</html>
`
