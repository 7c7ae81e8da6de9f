package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/ikkim/catalog-console/internal/app/draft"
	"github.com/ikkim/catalog-console/internal/app/model"
	"github.com/ikkim/catalog-console/internal/storage"
	"github.com/ikkim/catalog-console/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type editorFixture struct {
	svc      *editorService
	api      *fakeCatalog
	store    *storage.MemoryPreviewStore
	notifier *recordingNotifier
	recorder *recordingRecorder
	guard    *LocalGuard
}

func setupEditorServiceTest(t *testing.T) *editorFixture {
	f := &editorFixture{
		api:      newFakeCatalog(),
		store:    storage.NewMemoryPreviewStore("/api/v1/previews"),
		notifier: newRecordingNotifier(),
		recorder: &recordingRecorder{},
		guard:    NewLocalGuard(),
	}
	f.svc = NewEditorService(f.api, f.store, f.notifier, f.guard, f.recorder, EditorConfig{
		ImageLimit:     5,
		MaxUploadBytes: 1024,
	}).(*editorService)
	return f
}

func (f *editorFixture) open(t *testing.T) string {
	view, err := f.svc.Open(context.Background(), "")
	require.NoError(t, err)
	return view.ID
}

// variantSession returns a session in variant mode with Color selected
func (f *editorFixture) variantSession(t *testing.T) string {
	id := f.open(t)
	_, _, err := f.svc.SetVariantMode(context.Background(), id, true)
	require.NoError(t, err)
	_, err = f.svc.SelectType(context.Background(), id, "color")
	require.NoError(t, err)
	return id
}

func TestEditorService_OpenAndDiscard(t *testing.T) {
	f := setupEditorServiceTest(t)
	ctx := context.Background()

	view, err := f.svc.Open(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionCreate, view.Mode)
	assert.Equal(t, draft.StateIdle, view.Composer.State)
	assert.Equal(t, 1, f.svc.Count())

	_, _, err = f.svc.AddImages(ctx, view.ID, ImageOwner{Kind: OwnerProduct}, pngs(2))
	require.NoError(t, err)
	assert.Equal(t, 2, f.store.Len())

	require.NoError(t, f.svc.Discard(ctx, view.ID))
	assert.Equal(t, 0, f.store.Len())
	assert.Equal(t, 0, f.svc.Count())
	assert.Empty(t, f.api.created, "discard has no network side effect")

	_, err = f.svc.Get(view.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, f.svc.Discard(ctx, view.ID), ErrSessionNotFound)
}

func TestEditorService_OpenEdit(t *testing.T) {
	f := setupEditorServiceTest(t)
	f.api.products["mango-juice"] = &catalog.Product{
		Name:          "Mango Juice",
		Slug:          "mango-juice",
		Price:         "100",
		OfferPrice:    "90",
		Category:      "c1",
		ProductImages: []string{"https://cdn/a.jpg"},
	}

	view, err := f.svc.Open(context.Background(), " mango-juice ")
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionUpdate, view.Mode)
	assert.Equal(t, "mango-juice", view.Draft.OriginalSlug)
	assert.Equal(t, "10.00", view.Draft.DiscountPercent)
	require.Len(t, view.Draft.Images, 1)
	assert.Equal(t, "persisted", view.Draft.Images[0].Kind)

	_, err = f.svc.Open(context.Background(), "missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Equal(t, 1, f.svc.Count())
}

func TestEditorService_UpdateFields_SlugCoupling(t *testing.T) {
	f := setupEditorServiceTest(t)
	id := f.open(t)

	view, err := f.svc.UpdateFields(id, draft.Fields{Name: strPtr("Red Shoes")})
	require.NoError(t, err)
	assert.Equal(t, "red-shoes", view.Draft.Slug)

	_, err = f.svc.UpdateFields(id, draft.Fields{Slug: strPtr("custom")})
	require.NoError(t, err)

	view, err = f.svc.UpdateFields(id, draft.Fields{Name: strPtr("Blue Shoes")})
	require.NoError(t, err)
	assert.Equal(t, "custom", view.Draft.Slug)
	assert.Equal(t, "Blue Shoes", view.Draft.Name)
}

func TestEditorService_UpdateFields_RejectsAtomically(t *testing.T) {
	f := setupEditorServiceTest(t)
	id := f.open(t)

	_, err := f.svc.UpdateFields(id, draft.Fields{Name: strPtr("Juice"), Price: strPtr("abc")})
	assert.ErrorIs(t, err, draft.ErrValidation)
	assert.Equal(t, "warn", f.notifier.last(id).level)

	view, err := f.svc.Get(id)
	require.NoError(t, err)
	assert.Empty(t, view.Draft.Name)
}

func TestEditorService_Tags(t *testing.T) {
	f := setupEditorServiceTest(t)
	id := f.open(t)

	_, err := f.svc.AddTag(id, "summer")
	require.NoError(t, err)
	_, err = f.svc.AddTag(id, "summer")
	assert.ErrorIs(t, err, draft.ErrValidation)
	assert.Equal(t, notice{level: "warn", message: "Tag already added!"}, f.notifier.last(id))

	_, err = f.svc.AddKeyword(id, "fresh")
	require.NoError(t, err)

	view, err := f.svc.RemoveTag(id, "summer")
	require.NoError(t, err)
	assert.Empty(t, view.Draft.Tags)
	assert.Equal(t, []string{"fresh"}, view.Draft.Keywords)

	view, err = f.svc.RemoveKeyword(id, "fresh")
	require.NoError(t, err)
	assert.Empty(t, view.Draft.Keywords)
}

func TestEditorService_AddImages_Quota(t *testing.T) {
	f := setupEditorServiceTest(t)
	ctx := context.Background()
	id := f.open(t)
	owner := ImageOwner{Kind: OwnerProduct}

	view, warn, err := f.svc.AddImages(ctx, id, owner, pngs(3))
	require.NoError(t, err)
	assert.Nil(t, warn)
	assert.Len(t, view.Draft.Images, 3)

	view, warn, err = f.svc.AddImages(ctx, id, owner, pngs(4))
	require.NoError(t, err)
	require.NotNil(t, warn)
	assert.Equal(t, 2, warn.Remaining)
	assert.Equal(t, 2, warn.Rejected)
	assert.Len(t, view.Draft.Images, 5)
	assert.Equal(t, 5, f.store.Len(), "no preview is kept for a rejected file")
	assert.Equal(t, notice{level: "warn", message: "Only 2 more images allowed."}, f.notifier.last(id))
}

func TestEditorService_AddImages_InvalidUploads(t *testing.T) {
	f := setupEditorServiceTest(t)
	id := f.open(t)
	owner := ImageOwner{Kind: OwnerProduct}

	tests := []struct {
		name    string
		uploads []Upload
	}{
		{name: "no files", uploads: nil},
		{name: "not an image", uploads: []Upload{{Filename: "notes.txt", Data: []byte("hello")}}},
		{name: "too large", uploads: []Upload{{Filename: "big.png", ContentType: "image/png", Data: make([]byte, 2048)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := f.svc.AddImages(context.Background(), id, owner, tt.uploads)
			assert.ErrorIs(t, err, draft.ErrValidation)
			assert.Equal(t, 0, f.store.Len())
		})
	}
}

func TestEditorService_RemoveImage_ReleasesPreview(t *testing.T) {
	f := setupEditorServiceTest(t)
	ctx := context.Background()
	id := f.open(t)
	owner := ImageOwner{Kind: OwnerProduct}

	_, _, err := f.svc.AddImages(ctx, id, owner, pngs(2))
	require.NoError(t, err)

	view, err := f.svc.RemoveImage(ctx, id, owner, 0)
	require.NoError(t, err)
	require.Len(t, view.Draft.Images, 1)
	assert.Equal(t, "img-1.png", view.Draft.Images[0].Filename)
	assert.Equal(t, 1, f.store.Len())

	_, err = f.svc.RemoveImage(ctx, id, owner, 5)
	assert.ErrorIs(t, err, draft.ErrImageIndex)
}

func TestEditorService_VariantModeExclusivity(t *testing.T) {
	f := setupEditorServiceTest(t)
	ctx := context.Background()
	id := f.open(t)

	_, _, err := f.svc.AddImages(ctx, id, ImageOwner{Kind: OwnerProduct}, pngs(1))
	require.NoError(t, err)

	_, _, err = f.svc.SetVariantMode(ctx, id, true)
	assert.ErrorIs(t, err, draft.ErrValidation)
	assert.Equal(t, "warn", f.notifier.last(id).level)

	view, err := f.svc.Get(id)
	require.NoError(t, err)
	assert.False(t, view.Draft.VariantMode)

	_, err = f.svc.RemoveImage(ctx, id, ImageOwner{Kind: OwnerProduct}, 0)
	require.NoError(t, err)
	view, _, err = f.svc.SetVariantMode(ctx, id, true)
	require.NoError(t, err)
	assert.True(t, view.Draft.VariantMode)

	_, _, err = f.svc.AddImages(ctx, id, ImageOwner{Kind: OwnerProduct}, pngs(1))
	assert.ErrorIs(t, err, draft.ErrValidation)
	assert.Equal(t, 0, f.store.Len())
}

func TestEditorService_ComposerFlow(t *testing.T) {
	f := setupEditorServiceTest(t)
	ctx := context.Background()
	id := f.variantSession(t)
	assert.Equal(t, 1, f.api.valueCalls["color"], "selecting a type loads its values")

	view, err := f.svc.SelectValue(ctx, id, "red")
	require.NoError(t, err)
	assert.Equal(t, draft.StateValueSelected, view.Composer.State)

	_, _, err = f.svc.CommitVariant(id)
	var verr *draft.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Price is required!", verr.Message)

	view, err = f.svc.UpdateComposer(id, draft.VariantPatch{Price: strPtr("50"), OfferPrice: strPtr("40")})
	require.NoError(t, err)
	assert.Equal(t, draft.StateReadyToAdd, view.Composer.State)
	assert.Equal(t, "20.00", view.Composer.DiscountPercent)

	_, _, err = f.svc.AddImages(ctx, id, ImageOwner{Kind: OwnerComposer}, pngs(2))
	require.NoError(t, err)

	added, view, err := f.svc.CommitVariant(id)
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", added.Name)
	assert.Len(t, added.Images, 2)
	assert.Equal(t, draft.StateTypeSelected, view.Composer.State)
	assert.Empty(t, view.Composer.Images)
	require.Len(t, view.Draft.Variants, 1)
	assert.Equal(t, notice{level: "success", message: "Variant added successfully!"}, f.notifier.last(id))
	assert.Equal(t, 2, f.store.Len(), "images move with the variant")

	view, err = f.svc.UpdateVariant(id, added.LocalID, draft.VariantPatch{OfferPrice: strPtr("25")})
	require.NoError(t, err)
	assert.Equal(t, "50.00", view.Draft.Variants[0].DiscountPercent)

	_, _, err = f.svc.AddImages(ctx, id, ImageOwner{Kind: OwnerVariant, VariantID: added.LocalID}, pngs(1))
	require.NoError(t, err)
	assert.Equal(t, 3, f.store.Len())

	view, err = f.svc.RemoveVariant(ctx, id, added.LocalID)
	require.NoError(t, err)
	assert.Empty(t, view.Draft.Variants)
	assert.Equal(t, 0, f.store.Len())

	_, err = f.svc.UpdateVariant(id, added.LocalID, draft.VariantPatch{})
	assert.ErrorIs(t, err, draft.ErrVariantNotFound)
	_, _, err = f.svc.AddImages(ctx, id, ImageOwner{Kind: OwnerVariant, VariantID: added.LocalID}, pngs(1))
	assert.ErrorIs(t, err, draft.ErrVariantNotFound)
	assert.Equal(t, 0, f.store.Len())
}

func TestEditorService_SelectType_ClearsValueAndImages(t *testing.T) {
	f := setupEditorServiceTest(t)
	ctx := context.Background()
	id := f.variantSession(t)

	_, err := f.svc.SelectValue(ctx, id, "red")
	require.NoError(t, err)
	_, _, err = f.svc.AddImages(ctx, id, ImageOwner{Kind: OwnerComposer}, pngs(1))
	require.NoError(t, err)

	view, err := f.svc.SelectType(ctx, id, "size")
	require.NoError(t, err)
	assert.Equal(t, draft.StateTypeSelected, view.Composer.State)
	assert.Nil(t, view.Composer.Value)
	assert.Equal(t, "size", view.Composer.Type.ID)
	assert.Equal(t, 0, f.store.Len())

	_, err = f.svc.SelectValue(ctx, id, "red")
	assert.ErrorIs(t, err, ErrValueNotFound)
}

func TestEditorService_SelectType_FetchFailureKeepsComposer(t *testing.T) {
	f := setupEditorServiceTest(t)
	ctx := context.Background()
	id := f.variantSession(t)

	f.api.valuesErr = remoteErr("list values", http.StatusBadGateway, catalog.ErrServer)
	_, err := f.svc.SelectType(ctx, id, "size")
	assert.ErrorIs(t, err, catalog.ErrServer)
	assert.Equal(t, "error", f.notifier.last(id).level)

	view, err := f.svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "color", view.Composer.Type.ID)
}

func TestEditorService_CreateValue(t *testing.T) {
	f := setupEditorServiceTest(t)
	ctx := context.Background()
	id := f.open(t)

	_, _, err := f.svc.CreateValue(ctx, id, model.TextPayload{Label: "x"})
	assert.ErrorIs(t, err, draft.ErrValidation, "a type must be selected first")

	_, err = f.svc.SelectType(ctx, id, "size")
	require.NoError(t, err)
	view, err := f.svc.SelectValue(ctx, id, AddNewValue)
	require.NoError(t, err)
	assert.Equal(t, draft.StateCreatingValue, view.Composer.State)

	_, _, err = f.svc.CreateValue(ctx, id, model.UnitPayload{Label: "500"})
	var verr *draft.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Unit is required!", verr.Message)
	assert.Empty(t, f.api.createdFor)

	value, view, err := f.svc.CreateValue(ctx, id, model.UnitPayload{Label: "500", Unit: "ml"})
	require.NoError(t, err)
	assert.Equal(t, "new-1", value.ID)
	assert.Equal(t, draft.StateValueSelected, view.Composer.State)
	assert.Equal(t, "new-1", view.Composer.Value.ID)
	assert.Equal(t, "success", f.notifier.last(id).level)

	values, err := f.svc.ListValues(ctx, id, "size")
	require.NoError(t, err)
	assert.Len(t, values, 2)
}

func TestEditorService_CreateValue_RemoteFailureKeepsDraft(t *testing.T) {
	f := setupEditorServiceTest(t)
	ctx := context.Background()
	id := f.open(t)

	_, err := f.svc.SelectType(ctx, id, "material")
	require.NoError(t, err)
	_, err = f.svc.SelectValue(ctx, id, AddNewValue)
	require.NoError(t, err)
	_, err = f.svc.UpdateComposer(id, draft.VariantPatch{Price: strPtr("10")})
	require.NoError(t, err)

	f.api.createErr = remoteErr("create value", http.StatusInternalServerError, catalog.ErrServer)
	_, _, err = f.svc.CreateValue(ctx, id, model.TextPayload{Label: "Silk"})
	assert.ErrorIs(t, err, catalog.ErrServer)
	assert.Equal(t, notice{level: "error", message: "Internal Server Error"}, f.notifier.last(id))

	view, err := f.svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, draft.StateCreatingValue, view.Composer.State)
	assert.Equal(t, "10", view.Composer.Price)

	view, err = f.svc.CancelCreateValue(id)
	require.NoError(t, err)
	assert.Equal(t, draft.StateTypeSelected, view.Composer.State)
}

func TestEditorService_SetVariantModeOff_DiscardsVariants(t *testing.T) {
	f := setupEditorServiceTest(t)
	ctx := context.Background()
	id := f.variantSession(t)

	for _, valueID := range []string{"red", "blue"} {
		_, err := f.svc.SelectValue(ctx, id, valueID)
		require.NoError(t, err)
		_, err = f.svc.UpdateComposer(id, draft.VariantPatch{Price: strPtr("10")})
		require.NoError(t, err)
		_, _, err = f.svc.AddImages(ctx, id, ImageOwner{Kind: OwnerComposer}, pngs(1))
		require.NoError(t, err)
		_, _, err = f.svc.CommitVariant(id)
		require.NoError(t, err)
	}
	_, _, err := f.svc.AddImages(ctx, id, ImageOwner{Kind: OwnerComposer}, pngs(1))
	require.NoError(t, err)
	assert.Equal(t, 3, f.store.Len())

	view, discarded, err := f.svc.SetVariantMode(ctx, id, false)
	require.NoError(t, err)
	assert.Equal(t, 2, discarded)
	assert.Empty(t, view.Draft.Variants)
	assert.Equal(t, draft.StateIdle, view.Composer.State)
	assert.Equal(t, 0, f.store.Len())
	assert.Equal(t, notice{level: "warn", message: "2 variants discarded."}, f.notifier.last(id))
}

func TestEditorService_Submit_Create(t *testing.T) {
	f := setupEditorServiceTest(t)
	ctx := context.Background()
	id := f.open(t)

	_, err := f.svc.UpdateFields(id, draft.Fields{
		Name:       strPtr("Juice"),
		Price:      strPtr("100"),
		OfferPrice: strPtr("80"),
		Category:   strPtr("c1"),
	})
	require.NoError(t, err)
	_, _, err = f.svc.AddImages(ctx, id, ImageOwner{Kind: OwnerProduct}, pngs(1))
	require.NoError(t, err)

	result, err := f.svc.Submit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionCreate, result.Mode)
	assert.Equal(t, "juice", result.Slug)
	assert.Equal(t, "Product created", result.Message)

	require.Len(t, f.api.created, 1)
	payload := f.api.created[0]
	for name, want := range map[string]string{"price": "100", "offerPrice": "80", "discount": "20"} {
		got, ok := payload.Value(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, err = f.svc.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound, "success closes the session")
	assert.Equal(t, 0, f.store.Len())

	require.Len(t, f.recorder.records, 1)
	record := f.recorder.records[0]
	assert.Equal(t, model.SubmissionSucceeded, record.Status)
	assert.Equal(t, "juice", record.ProductSlug)
	assert.Equal(t, 1, record.StagedImages)
	assert.Contains(t, record.Fields, "productImages")
	assert.Equal(t, "success", f.notifier.last(id).level)
}

func TestEditorService_Submit_UpdateAddressedByOriginalSlug(t *testing.T) {
	f := setupEditorServiceTest(t)
	ctx := context.Background()
	f.api.products["old-slug"] = &catalog.Product{Name: "Tea", Slug: "old-slug", Category: "c1"}

	view, err := f.svc.Open(ctx, "old-slug")
	require.NoError(t, err)
	_, err = f.svc.UpdateFields(view.ID, draft.Fields{Slug: strPtr("new slug")})
	require.NoError(t, err)

	result, err := f.svc.Submit(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionUpdate, result.Mode)
	assert.Equal(t, "old-slug", f.api.updatedSlug)

	slug, _ := f.api.updated[0].Value("slug")
	assert.Equal(t, "new-slug", slug)
	assert.Equal(t, "Product saved successfully!", f.notifier.last(view.ID).message)
}

func TestEditorService_Submit_FailureKeepsSession(t *testing.T) {
	f := setupEditorServiceTest(t)
	ctx := context.Background()
	id := f.open(t)

	_, err := f.svc.UpdateFields(id, draft.Fields{Name: strPtr("Juice"), Category: strPtr("c1")})
	require.NoError(t, err)
	_, _, err = f.svc.AddImages(ctx, id, ImageOwner{Kind: OwnerProduct}, pngs(1))
	require.NoError(t, err)

	f.api.submitErr = &catalog.RemoteError{Op: "create product", Status: 409, Message: "slug taken", Err: catalog.ErrConflict}
	_, err = f.svc.Submit(ctx, id)
	assert.ErrorIs(t, err, catalog.ErrConflict)
	assert.Equal(t, notice{level: "error", message: "slug taken"}, f.notifier.last(id))

	view, err := f.svc.Get(id)
	require.NoError(t, err)
	assert.False(t, view.Submitting)
	assert.Equal(t, "Juice", view.Draft.Name)
	assert.Equal(t, 1, f.store.Len())

	require.Len(t, f.recorder.records, 1)
	assert.Equal(t, model.SubmissionFailed, f.recorder.records[0].Status)
	assert.Equal(t, 409, f.recorder.records[0].RemoteStatus)

	f.api.submitErr = nil
	_, err = f.svc.Submit(ctx, id)
	require.NoError(t, err, "the operator can retry")
}

func TestEditorService_Submit_EditsRejectedWhileInFlight(t *testing.T) {
	f := setupEditorServiceTest(t)
	ctx := context.Background()
	id := f.open(t)

	_, err := f.svc.UpdateFields(id, draft.Fields{Name: strPtr("Juice"), Category: strPtr("c1")})
	require.NoError(t, err)

	var editErr, imageErr error
	f.api.onSubmit = func() {
		_, editErr = f.svc.UpdateFields(id, draft.Fields{Name: strPtr("Other")})
		_, _, imageErr = f.svc.AddImages(ctx, id, ImageOwner{Kind: OwnerProduct}, pngs(1))
	}

	_, err = f.svc.Submit(ctx, id)
	require.NoError(t, err)

	assert.ErrorIs(t, editErr, ErrSubmitInProgress)
	assert.ErrorIs(t, imageErr, ErrSubmitInProgress)
	assert.Equal(t, 0, f.store.Len(), "no preview is staged for a rejected upload")
	name, _ := f.api.created[0].Value("name")
	assert.Equal(t, "Juice", name)
}

func TestEditorService_Submit_Rejections(t *testing.T) {
	f := setupEditorServiceTest(t)
	ctx := context.Background()
	id := f.open(t)

	_, err := f.svc.Submit(ctx, id)
	var verr *draft.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	_, err = f.svc.UpdateFields(id, draft.Fields{Name: strPtr("Juice")})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, id)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category", verr.Field)

	_, err = f.svc.UpdateFields(id, draft.Fields{Category: strPtr("c1")})
	require.NoError(t, err)
	release, ok, err := f.guard.Acquire(ctx, "create:juice")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.svc.Submit(ctx, id)
	assert.ErrorIs(t, err, ErrSubmitInProgress)
	assert.Empty(t, f.api.created)

	require.NoError(t, release(ctx))
	_, err = f.svc.Submit(ctx, id)
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, "unknown")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestEditorService_Sweep(t *testing.T) {
	f := setupEditorServiceTest(t)
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	stale := f.open(t)
	_, _, err := f.svc.AddImages(ctx, stale, ImageOwner{Kind: OwnerProduct}, pngs(2))
	require.NoError(t, err)

	now = now.Add(90 * time.Minute)
	fresh := f.open(t)

	now = now.Add(45 * time.Minute)
	swept := f.svc.Sweep(ctx, 2*time.Hour)
	assert.Equal(t, 1, swept)
	assert.Equal(t, 0, f.store.Len())

	_, err = f.svc.Get(stale)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = f.svc.Get(fresh)
	assert.NoError(t, err)
}

func TestEditorService_Shutdown(t *testing.T) {
	f := setupEditorServiceTest(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		id := f.open(t)
		_, _, err := f.svc.AddImages(ctx, id, ImageOwner{Kind: OwnerProduct}, pngs(1))
		require.NoError(t, err)
	}
	assert.Equal(t, 3, f.store.Len())

	f.svc.Shutdown(ctx)
	assert.Equal(t, 0, f.svc.Count())
	assert.Equal(t, 0, f.store.Len())
}
