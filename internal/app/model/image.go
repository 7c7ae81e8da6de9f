package model

// Preview is a locally served rendition of a staged upload. It must be
// released once the staged entry is removed or discarded.
type Preview struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ImageAsset is either a PersistedImage or a StagedImage
type ImageAsset interface {
	isImageAsset()
}

// PersistedImage references an image the catalog already stores
type PersistedImage struct {
	Reference string
}

// StagedImage is a newly selected file that has not been uploaded yet
type StagedImage struct {
	Filename    string
	ContentType string
	Data        []byte
	Preview     Preview
}

func (PersistedImage) isImageAsset() {}
func (*StagedImage) isImageAsset()   {}

// ImageView is the JSON shape of one ImageAsset in a draft view
type ImageView struct {
	Kind      string `json:"kind"`
	Reference string `json:"reference,omitempty"`
	Filename  string `json:"filename,omitempty"`
	Size      int    `json:"size,omitempty"`
	Preview   string `json:"preview_url,omitempty"`
}

// ViewImage renders an ImageAsset for the operator
func ViewImage(asset ImageAsset) ImageView {
	switch a := asset.(type) {
	case PersistedImage:
		return ImageView{Kind: "persisted", Reference: a.Reference}
	case *StagedImage:
		return ImageView{Kind: "staged", Filename: a.Filename, Size: len(a.Data), Preview: a.Preview.URL}
	default:
		return ImageView{Kind: "unknown"}
	}
}
