package provenance

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/jverel/darkroom/pkg/studio"
)

// Options configures derivation graph rendering.
type Options struct {
	// Detailed includes origin and pixel dimensions in node labels.
	// When false, only the asset name is shown.
	Detailed bool

	// ActiveID highlights the asset with this ID, if present.
	ActiveID string
}

// ToDOT converts a collection's derivation links to Graphviz DOT format.
// Every asset becomes a node; every ParentID that resolves to an asset
// in the collection becomes an edge from parent to child.
//
// Derived assets (extracts and edit results) are rendered with a grey
// fill to distinguish them from imports. The active asset, if set in
// opts, gets a heavier outline.
func ToDOT(c studio.Collection, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph provenance {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, a := range c.Assets {
		label := fmtLabel(a, opts.Detailed)
		attrs := fmtAttrs(a, label, opts.ActiveID)
		fmt.Fprintf(&buf, "  %q [%s];\n", a.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, a := range c.Assets {
		if a.ParentID == "" || !c.Contains(a.ParentID) {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", a.ParentID, a.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(a studio.Asset, detailed bool) string {
	if !detailed {
		return a.Name
	}
	return fmt.Sprintf("%s\n%s\n%dx%d", a.Name, a.Origin, a.Width(), a.Height())
}

func fmtAttrs(a studio.Asset, label, activeID string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if a.Origin != studio.OriginImport {
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	if a.ID == activeID && activeID != "" {
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	svg, err := render(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
