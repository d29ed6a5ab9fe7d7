// Package pkg provides the core libraries for the Darkroom image workshop.
//
// # Overview
//
// Darkroom manages an interactive workspace of image assets: importing
// images, cropping regions interactively, requesting generative edits from
// a remote service, and tracking the provenance of every derived asset.
// The pkg directory is organized into four main areas:
//
//  1. State - Pure workspace logic ([studio], [history], [selection], [geom])
//  2. Imaging - Decoding, cropping, and encoding ([imgio])
//  3. Services - External clients and caching ([genedit], [cache], [httputil])
//  4. Output - Provenance graph rendering ([provenance])
//
// # Architecture
//
// The typical data flow through Darkroom:
//
//	Image files
//	         ↓
//	    [imgio] package (decode + validate)
//	         ↓
//	    [studio] package (registry + undoable history)
//	         ↓
//	    [geom] + [selection] (display ↔ source coordinate mapping)
//	         ↓
//	    Cropped/edited assets + provenance graph
//
// # Quick Start
//
// Import an image and extract a region:
//
//	import (
//	    "context"
//	    "github.com/jverel/darkroom/pkg/geom"
//	    "github.com/jverel/darkroom/pkg/imgio"
//	    "github.com/jverel/darkroom/pkg/studio"
//	)
//
//	// 1. Decode the source image
//	dec, _ := imgio.Decode("photo.png")
//
//	// 2. Import into a workspace registry
//	reg := studio.NewRegistry()
//	reg.Import(context.Background(), []imgio.Decoded{dec})
//
//	// 3. Crop a region selected on a 500x250 display surface
//	sel := geom.Rect{X: 100, Y: 50, W: 200, H: 100}
//	asset, _ := reg.ExtractRegion(context.Background(), reg.ActiveID(), sel, 500, 250)
//
// # Main Packages
//
// ## Workspace State
//
// [studio] - The asset registry: an undoable collection of images with an
// active asset, a marked set for multi-image edits, and provenance links
// from every derived asset back to its parent.
//
// [history] - Generic linear undo/redo over immutable snapshots. Every
// mutation records a new snapshot; undo and redo walk the timeline.
//
// [selection] - Rectangular selection state machine driving interactive
// region selection (empty → dragging → committed).
//
// [geom] - Coordinate geometry: fit-to-surface scaling and mapping of
// display-space rectangles back to source-image pixels.
//
// ## Imaging
//
// [imgio] - Image decoding (PNG, JPEG, GIF, BMP, TIFF, WebP), region
// cropping, and encoding/saving built on the imaging library.
//
// ## Services
//
// [genedit] - HTTP client for the generative edit service. Batches marked
// assets into a single edit request and caches results by instruction and
// input hashes.
//
// [cache] - Cache backends for HTTP responses and edit results: file
// (CLI), Redis (server), memory (testing), plus key derivation and
// namespace scoping.
//
// [httputil] - Shared HTTP helpers: retry with exponential backoff and
// retryable error classification.
//
// ## Output
//
// [provenance] - Renders the asset ancestry graph to DOT, SVG, and PNG
// via Graphviz.
//
// ## Support
//
// [errors] - Structured error codes shared across packages and mapped to
// HTTP statuses by the server.
//
// [observability] - Hook registry for cache, network, and workspace
// events.
//
// [buildinfo] - Version and build metadata embedded at link time.
//
// # Common Workflows
//
// Request a generative edit of the marked assets:
//
//	client, _ := genedit.NewClient(genedit.Config{
//	    BaseURL: "https://edit.darkroom.dev",
//	    APIKey:  key,
//	})
//	out, _ := client.Edit(ctx, "remove the background", inputs)
//	reg.PromoteResult(ctx, "edit.png", out, reg.ActiveID())
//
// Render the provenance graph:
//
//	dot := provenance.ToDOT(reg.Collection(), provenance.Options{
//	    ActiveID: reg.ActiveID(),
//	})
//	svg, _ := provenance.RenderSVG(dot)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/studio/...     # Specific package
//	go test -run Example         # Examples only
//
// [studio]: https://pkg.go.dev/github.com/jverel/darkroom/pkg/studio
// [history]: https://pkg.go.dev/github.com/jverel/darkroom/pkg/history
// [selection]: https://pkg.go.dev/github.com/jverel/darkroom/pkg/selection
// [geom]: https://pkg.go.dev/github.com/jverel/darkroom/pkg/geom
// [imgio]: https://pkg.go.dev/github.com/jverel/darkroom/pkg/imgio
// [genedit]: https://pkg.go.dev/github.com/jverel/darkroom/pkg/genedit
// [cache]: https://pkg.go.dev/github.com/jverel/darkroom/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/jverel/darkroom/pkg/httputil
// [provenance]: https://pkg.go.dev/github.com/jverel/darkroom/pkg/provenance
// [errors]: https://pkg.go.dev/github.com/jverel/darkroom/pkg/errors
// [observability]: https://pkg.go.dev/github.com/jverel/darkroom/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/jverel/darkroom/pkg/buildinfo
package pkg
