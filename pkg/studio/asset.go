package studio

import (
	"image"
)

// Origin distinguishes how an asset entered the collection.
type Origin int

const (
	// OriginImport marks an asset decoded from a file on disk.
	OriginImport Origin = iota
	// OriginExtract marks an asset cropped out of another asset.
	OriginExtract
	// OriginEdit marks an asset produced by the edit service.
	OriginEdit
)

// String returns a human-readable origin name.
func (o Origin) String() string {
	switch o {
	case OriginImport:
		return "import"
	case OriginExtract:
		return "extract"
	case OriginEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Asset is one image in the workspace.
//
// Assets are value types: collections hold them by value and history
// snapshots share the underlying image data, which is never mutated
// after an asset is created.
type Asset struct {
	ID       string      // Unique identifier, assigned by the registry
	Name     string      // Display name (file name for imports)
	MIME     string      // Source format, e.g. "image/png"
	Origin   Origin      // How the asset entered the collection
	ParentID string      // ID of the asset this was derived from; empty for imports
	Image    image.Image // Decoded pixel data
}

// Width returns the asset's pixel width.
func (a Asset) Width() int {
	if a.Image == nil {
		return 0
	}
	return a.Image.Bounds().Dx()
}

// Height returns the asset's pixel height.
func (a Asset) Height() int {
	if a.Image == nil {
		return 0
	}
	return a.Image.Bounds().Dy()
}

// Collection is an ordered snapshot of workspace assets.
//
// Collections are treated as immutable: every mutation produces a new
// collection with a fresh backing slice, so history snapshots never
// alias each other.
type Collection struct {
	Assets []Asset
}

// Len returns the number of assets in the collection.
func (c Collection) Len() int {
	return len(c.Assets)
}

// Find returns the asset with the given ID.
func (c Collection) Find(id string) (Asset, bool) {
	for _, a := range c.Assets {
		if a.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}

// Contains reports whether an asset with the given ID exists.
func (c Collection) Contains(id string) bool {
	_, ok := c.Find(id)
	return ok
}

// clone returns a collection with a copied backing slice.
func (c Collection) clone() Collection {
	assets := make([]Asset, len(c.Assets))
	copy(assets, c.Assets)
	return Collection{Assets: assets}
}

// prepend returns a new collection with a placed before all existing assets.
func (c Collection) prepend(a Asset) Collection {
	assets := make([]Asset, 0, len(c.Assets)+1)
	assets = append(assets, a)
	assets = append(assets, c.Assets...)
	return Collection{Assets: assets}
}

// remove returns a new collection without the asset with the given ID.
// If the ID is not present the result is an identical copy.
func (c Collection) remove(id string) Collection {
	assets := make([]Asset, 0, len(c.Assets))
	for _, a := range c.Assets {
		if a.ID != id {
			assets = append(assets, a)
		}
	}
	return Collection{Assets: assets}
}
