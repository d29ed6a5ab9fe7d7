// Package imgio provides image decoding and encoding for the asset workspace.
//
// # Overview
//
// This package is the boundary between files on disk and in-memory assets.
// It handles:
//
//   - Decoding images from files or readers into image.Image values
//   - Detecting the source format and reporting it as a MIME type
//   - Batch imports where individual failures skip the file instead of
//     aborting the whole import
//   - Encoding images back to disk in common formats
//
// # Supported Formats
//
// Decoding supports PNG, JPEG, GIF, WebP, BMP, and TIFF. The extra formats
// beyond the standard library trio are registered via golang.org/x/image.
// Encoding supports PNG, JPEG, GIF, BMP, and TIFF; the format is chosen
// from the output path's extension.
//
// # Import
//
// Use [Decode] for a single file, or [DecodeAll] for a batch:
//
//	decoded, errs := imgio.DecodeAll(paths)
//	for _, e := range errs {
//	    log.Warn("skipped", "err", e)
//	}
//
// DecodeAll never fails as a whole: each unreadable or undecodable file
// produces one error carrying the file path, and the remaining files are
// still imported.
//
// # Export
//
// Use [Save] to write an image to a path. The format follows the
// extension, so "out.png" produces a PNG and "out.jpg" a JPEG.
package imgio
