package draft

import (
	"context"
	"errors"
	"fmt"

	"github.com/ikkim/catalog-console/internal/app/model"
)

func staged(name string) *model.StagedImage {
	return &model.StagedImage{
		Filename:    name,
		ContentType: "image/png",
		Data:        []byte("data-" + name),
		Preview:     model.Preview{ID: "pv-" + name, URL: "/api/v1/previews/pv-" + name},
	}
}

func stagedN(prefix string, n int) []*model.StagedImage {
	out := make([]*model.StagedImage, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, staged(fmt.Sprintf("%s%d.png", prefix, i)))
	}
	return out
}

type recordingReleaser struct {
	released []string
	fail     map[string]bool
}

func (r *recordingReleaser) Release(_ context.Context, id string) error {
	if r.fail[id] {
		return errors.New("boom")
	}
	r.released = append(r.released, id)
	return nil
}

func strPtr(s string) *string { return &s }

var (
	colorType = model.AttributeType{ID: "t-color", Name: "Color", DisplayKind: model.DisplayColor}
	sizeType  = model.AttributeType{ID: "t-size", Name: "Size", DisplayKind: model.DisplayUnit}
	red       = model.AttributeValue{ID: "v-red", TypeID: "t-color", Label: "#ff0000", ColorCode: "#ff0000"}
	blue      = model.AttributeValue{ID: "v-blue", TypeID: "t-color", Label: "#0000ff", ColorCode: "#0000ff"}
	small     = model.AttributeValue{ID: "v-250", TypeID: "t-size", Label: "250", Unit: "ml"}
)
