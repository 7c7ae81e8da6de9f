package draft

import (
	"context"

	"github.com/ikkim/catalog-console/internal/app/model"
	"github.com/ikkim/catalog-console/pkg/logger"
)

// DefaultImageLimit is the per-owner cap on staged uploads
const DefaultImageLimit = 5

// Releaser frees the preview of a staged upload
type Releaser interface {
	Release(ctx context.Context, id string) error
}

// ImageList is the ordered image collection of one owner (the product or a
// single variant). Only staged entries count towards the limit, so persisted
// references never block new uploads.
type ImageList struct {
	limit int
	items []model.ImageAsset
}

func NewImageList(limit int) *ImageList {
	if limit <= 0 {
		limit = DefaultImageLimit
	}
	return &ImageList{limit: limit}
}

func (l *ImageList) Limit() int { return l.limit }

func (l *ImageList) Len() int { return len(l.items) }

// Items returns a copy of the entries in order
func (l *ImageList) Items() []model.ImageAsset {
	out := make([]model.ImageAsset, len(l.items))
	copy(out, l.items)
	return out
}

func (l *ImageList) StagedCount() int {
	n := 0
	for _, item := range l.items {
		if _, ok := item.(*model.StagedImage); ok {
			n++
		}
	}
	return n
}

func (l *ImageList) PersistedCount() int {
	return len(l.items) - l.StagedCount()
}

// Remaining is the number of staged uploads the list still accepts
func (l *ImageList) Remaining() int {
	if r := l.limit - l.StagedCount(); r > 0 {
		return r
	}
	return 0
}

// AddPersisted appends references to images the catalog already stores
func (l *ImageList) AddPersisted(refs ...string) {
	for _, ref := range refs {
		if ref != "" {
			l.items = append(l.items, model.PersistedImage{Reference: ref})
		}
	}
}

// Add appends as many staged files as the quota allows. Files beyond the
// quota are returned as rejected together with a warning; the caller owns
// their previews.
func (l *ImageList) Add(files []*model.StagedImage) (accepted, rejected []*model.StagedImage, warn *QuotaWarning) {
	remaining := l.Remaining()
	n := len(files)
	if n > remaining {
		n = remaining
	}

	accepted = files[:n]
	rejected = files[n:]
	for _, f := range accepted {
		l.items = append(l.items, f)
	}
	if len(rejected) > 0 {
		warn = &QuotaWarning{Remaining: remaining, Rejected: len(rejected)}
	}
	return accepted, rejected, warn
}

// Remove drops the entry at index and returns it so a staged preview can be
// released.
func (l *ImageList) Remove(index int) (model.ImageAsset, error) {
	if index < 0 || index >= len(l.items) {
		return nil, ErrImageIndex
	}
	removed := l.items[index]
	l.items = append(l.items[:index:index], l.items[index+1:]...)
	return removed, nil
}

// Clear empties the list and returns what it held
func (l *ImageList) Clear() []model.ImageAsset {
	out := l.items
	l.items = nil
	return out
}

// ReleaseStaged frees the previews of every staged asset given. Failures are
// logged and skipped; the returned count covers successful releases only.
func ReleaseStaged(ctx context.Context, rel Releaser, assets ...model.ImageAsset) int {
	if rel == nil {
		return 0
	}
	released := 0
	for _, asset := range assets {
		staged, ok := asset.(*model.StagedImage)
		if !ok || staged.Preview.ID == "" {
			continue
		}
		if err := rel.Release(ctx, staged.Preview.ID); err != nil {
			logger.Warn("Failed to release image preview", map[string]interface{}{
				"preview_id": staged.Preview.ID,
				"error":      err.Error(),
			})
			continue
		}
		released++
	}
	return released
}

// StagedFiles narrows a slice of staged images to ImageAssets
func StagedFiles(files []*model.StagedImage) []model.ImageAsset {
	out := make([]model.ImageAsset, 0, len(files))
	for _, f := range files {
		out = append(out, f)
	}
	return out
}
