// Package chart renders an HTML preview of a workout: the target power
// profile as a line chart, with optional markdown notes underneath.
package chart

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/yuin/goldmark"

	"github.com/hpungsan/zwogen/internal/errors"
	"github.com/hpungsan/zwogen/internal/workout"
)

// RenderHTML renders the workout preview page. Notes are markdown and are
// rendered below the chart; an empty notes string omits the section.
func RenderHTML(w *workout.Workout, notesMarkdown string) ([]byte, error) {
	if len(w.Segments) == 0 {
		return nil, errors.NewSerialization("workout has no segments")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "macarons"}),
		charts.WithTitleOpts(opts.Title{
			Title:    w.Name,
			Subtitle: fmt.Sprintf("FTP %dW, %d segments, %s", w.FTPWatts, len(w.Segments), formatDuration(w.TotalSeconds())),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Target (W)",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)

	labels, items := profilePoints(w)
	line.SetXAxis(labels)
	line.AddSeries("target power", items)
	line.SetSeriesOptions(charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.3}))

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return nil, errors.NewSerialization("render chart: " + err.Error())
	}

	page := buf.Bytes()
	if notesMarkdown != "" {
		notes, err := renderNotes(notesMarkdown)
		if err != nil {
			return nil, err
		}
		page = injectNotes(page, notes)
	}
	return page, nil
}

// profilePoints emits two points per segment, one at each boundary, so
// steady blocks draw flat and ramps draw sloped.
func profilePoints(w *workout.Workout) ([]string, []opts.LineData) {
	var labels []string
	var items []opts.LineData

	elapsed := 0
	for _, seg := range w.Segments {
		start, end := seg.Target, seg.Target
		if seg.Kind == workout.KindRamp {
			start, end = seg.StartIntensity, seg.EndIntensity
		}
		labels = append(labels, formatDuration(elapsed))
		items = append(items, opts.LineData{Value: targetWatts(start, w.FTPWatts)})

		elapsed += seg.DurationSeconds
		labels = append(labels, formatDuration(elapsed))
		items = append(items, opts.LineData{Value: targetWatts(end, w.FTPWatts)})
	}
	return labels, items
}

func targetWatts(intensity float64, ftpWatts int) int {
	return int(intensity*float64(ftpWatts) + 0.5)
}

func formatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// renderNotes converts the markdown notes to HTML.
func renderNotes(md string) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return nil, errors.NewSerialization("render notes: " + err.Error())
	}
	return buf.Bytes(), nil
}

// injectNotes places the notes section before the closing body tag of the
// rendered chart page, or appends it if the tag is missing.
func injectNotes(page, notes []byte) []byte {
	section := append([]byte(`<div class="notes" style="margin:2em">`), notes...)
	section = append(section, []byte(`</div>`)...)

	closing := []byte("</body>")
	if idx := bytes.LastIndex(page, closing); idx >= 0 {
		out := make([]byte, 0, len(page)+len(section))
		out = append(out, page[:idx]...)
		out = append(out, section...)
		out = append(out, page[idx:]...)
		return out
	}
	return append(page, section...)
}
