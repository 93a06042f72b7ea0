// Package export renders stored trajectories as SVG documents.
package export

import (
	"fmt"
	"os"
	"strings"
)

var palette = []string{
	"#00e0e0", "#e0e000", "#e000e0", "#00e000", "#e08000", "#8080ff",
}

// TrajectorySVG plots each state row against time as one polyline,
// labeled from labels when provided.
func TrajectorySVG(times []float64, states [][]float64, labels []string, width, height int) string {
	if len(times) < 2 || len(states) == 0 {
		return ""
	}

	minY, maxY := states[0][0], states[0][0]
	for _, row := range states {
		for _, v := range row {
			if v < minY {
				minY = v
			}
			if v > maxY {
				maxY = v
			}
		}
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	minT, maxT := times[0], times[len(times)-1]
	rangeT := maxT - minT
	if rangeT == 0 {
		rangeT = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	// Zero axis, when it falls inside the range.
	if minY < 0 && maxY > 0 {
		zy := float64(height) - (0-minY)/rangeY*float64(height)
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#333333"/>
`, zy, width, zy))
	}

	for r, row := range states {
		color := palette[r%len(palette)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for c := range times {
			if c >= len(row) {
				break
			}
			x := (times[c] - minT) / rangeT * float64(width)
			y := float64(height) - (row[c]-minY)/rangeY*float64(height)
			if c == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		if r < len(labels) {
			sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 16+r*16, color, labels[r]))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// PhaseSVG plots one state row against another.
func PhaseSVG(xs, ys []float64, width, height int, strokeColor string) string {
	if len(xs) < 2 || len(ys) < len(xs) {
		return ""
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range xs {
		if xs[i] < minX {
			minX = xs[i]
		}
		if xs[i] > maxX {
			maxX = xs[i]
		}
		if ys[i] < minY {
			minY = ys[i]
		}
		if ys[i] > maxY {
			maxY = ys[i]
		}
	}
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := range xs {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// WriteSVG saves a rendered document.
func WriteSVG(path, doc string) error {
	if doc == "" {
		return fmt.Errorf("export: nothing to render")
	}
	return os.WriteFile(path, []byte(doc), 0644)
}
