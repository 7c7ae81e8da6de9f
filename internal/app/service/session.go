package service

import (
	"errors"
	"sync"
	"time"

	"github.com/ikkim/catalog-console/internal/app/draft"
	"github.com/ikkim/catalog-console/internal/app/model"
)

var (
	ErrSessionNotFound  = errors.New("editing session not found")
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrUnknownOwner     = errors.New("unknown image owner")
)

// AddNewValue is the value id that enters the value creation sub-flow
const AddNewValue = "add-new"

type ImageOwnerKind string

const (
	OwnerProduct  ImageOwnerKind = "product"
	OwnerComposer ImageOwnerKind = "composer"
	OwnerVariant  ImageOwnerKind = "variant"
)

// ImageOwner addresses one image list of a session
type ImageOwner struct {
	Kind      ImageOwnerKind
	VariantID string
}

// Upload is one file received from the operator
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SessionView is the JSON shape of an editing session
type SessionView struct {
	ID         string               `json:"id"`
	Mode       model.SubmissionMode `json:"mode"`
	Draft      draft.View           `json:"draft"`
	Composer   draft.ComposerView   `json:"composer"`
	Submitting bool                 `json:"submitting"`
	LastActive time.Time            `json:"last_active"`
}

// editingSession owns one draft, its composer and its attribute registry.
// mu guards every field except id and registry, which has its own lock.
type editingSession struct {
	id       string
	registry *AttributeRegistry

	mu         sync.Mutex
	draft      *draft.ProductDraft
	composer   *draft.Composer
	lastActive time.Time
	submitting bool
	closed     bool
}

func (s *editingSession) mode() model.SubmissionMode {
	if s.draft.IsEdit() {
		return model.SubmissionUpdate
	}
	return model.SubmissionCreate
}

func (s *editingSession) view() *SessionView {
	return &SessionView{
		ID:         s.id,
		Mode:       s.mode(),
		Draft:      s.draft.View(),
		Composer:   s.composer.View(),
		Submitting: s.submitting,
		LastActive: s.lastActive,
	}
}

// assets lists every image the session holds, including the draft variant's
func (s *editingSession) assets() []model.ImageAsset {
	return append(s.draft.AllAssets(), s.composer.Images().Items()...)
}

func (s *editingSession) images(owner ImageOwner) (*draft.ImageList, error) {
	switch owner.Kind {
	case OwnerProduct:
		return s.draft.Images(), nil
	case OwnerComposer:
		return s.composer.Images(), nil
	case OwnerVariant:
		v, err := s.draft.Variant(owner.VariantID)
		if err != nil {
			return nil, err
		}
		return v.Images, nil
	default:
		return nil, ErrUnknownOwner
	}
}

// remaining reports the free slots of owner, refusing base images in
// variant mode up front.
func (s *editingSession) remaining(owner ImageOwner) (int, error) {
	if owner.Kind == OwnerProduct && s.draft.IsVariantMode() {
		_, _, _, err := s.draft.AddImages(nil)
		return 0, err
	}
	list, err := s.images(owner)
	if err != nil {
		return 0, err
	}
	return list.Remaining(), nil
}

func (s *editingSession) addImages(owner ImageOwner, files []*model.StagedImage) (accepted, rejected []*model.StagedImage, err error) {
	if owner.Kind == OwnerProduct {
		accepted, rejected, _, err = s.draft.AddImages(files)
		return accepted, rejected, err
	}
	list, err := s.images(owner)
	if err != nil {
		return nil, files, err
	}
	accepted, rejected, _ = list.Add(files)
	return accepted, rejected, nil
}
