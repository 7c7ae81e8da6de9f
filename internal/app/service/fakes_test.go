package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/ikkim/catalog-console/internal/app/draft"
	"github.com/ikkim/catalog-console/internal/app/model"
	"github.com/ikkim/catalog-console/pkg/catalog"
)

type fakeCatalog struct {
	mu       sync.Mutex
	types    []catalog.AttributeType
	values   map[string][]catalog.TypeName
	products map[string]*catalog.Product
	nextID   int

	typeCalls  int
	valueCalls map[string]int
	createdFor []string
	valuesErr  error
	createErr  error
	submitErr  error
	onSubmit   func() // runs while the submit is in flight

	created     []*draft.Payload
	updated     []*draft.Payload
	updatedSlug string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		types: []catalog.AttributeType{
			{ID: "color", Name: "Color", DisplayType: "color"},
			{ID: "size", Name: "Size", DisplayType: "unit"},
			{ID: "material", Name: "Material", DisplayType: "text"},
		},
		values: map[string][]catalog.TypeName{
			"color": {
				{ID: "red", Name: "#ff0000", ColorCode: "#ff0000"},
				{ID: "blue", Name: "#0000ff", ColorCode: "#0000ff"},
			},
			"size": {
				{ID: "small", Name: "250", Unit: "ml"},
			},
		},
		products:   map[string]*catalog.Product{},
		valueCalls: map[string]int{},
	}
}

func remoteErr(op string, status int, sentinel error) error {
	return &catalog.RemoteError{Op: op, Status: status, Message: http.StatusText(status), Err: sentinel}
}

func (f *fakeCatalog) ListTypes(context.Context) ([]catalog.AttributeType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.typeCalls++
	return append([]catalog.AttributeType(nil), f.types...), nil
}

func (f *fakeCatalog) ListValues(_ context.Context, typeID string) ([]catalog.TypeName, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.valueCalls[typeID]++
	if f.valuesErr != nil {
		return nil, f.valuesErr
	}
	return append([]catalog.TypeName(nil), f.values[typeID]...), nil
}

func (f *fakeCatalog) CreateValue(_ context.Context, typeID string, names []catalog.NewTypeName) ([]catalog.TypeName, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdFor = append(f.createdFor, typeID)
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, n := range names {
		f.nextID++
		f.values[typeID] = append(f.values[typeID], catalog.TypeName{
			ID:        fmt.Sprintf("new-%d", f.nextID),
			Name:      n.Name,
			ColorCode: n.ColorCode,
			Unit:      n.Unit,
		})
	}
	return f.values[typeID], nil
}

func (f *fakeCatalog) ListBrands(context.Context) ([]catalog.Option, error) {
	return []catalog.Option{{ID: "b1", Name: "Acme"}}, nil
}

func (f *fakeCatalog) ListSubcategories(context.Context) ([]catalog.Option, error) {
	return nil, nil
}

func (f *fakeCatalog) GetProduct(_ context.Context, slug string) (*catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[slug]
	if !ok {
		return nil, remoteErr("get product", http.StatusNotFound, catalog.ErrNotFound)
	}
	return p, nil
}

func (f *fakeCatalog) CreateProduct(_ context.Context, form catalog.Form) (*catalog.Ack, error) {
	if f.onSubmit != nil {
		f.onSubmit()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.created = append(f.created, form.(*draft.Payload))
	return &catalog.Ack{Success: true, Message: "Product created"}, nil
}

func (f *fakeCatalog) UpdateProduct(_ context.Context, slug string, form catalog.Form) (*catalog.Ack, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.updatedSlug = slug
	f.updated = append(f.updated, form.(*draft.Payload))
	return &catalog.Ack{Success: true}, nil
}

type notice struct {
	level   string
	message string
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices map[string][]notice
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{notices: map[string][]notice{}}
}

func (n *recordingNotifier) add(sessionID, level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices[sessionID] = append(n.notices[sessionID], notice{level: level, message: message})
}

func (n *recordingNotifier) Warn(sessionID, message string)    { n.add(sessionID, "warn", message) }
func (n *recordingNotifier) Success(sessionID, message string) { n.add(sessionID, "success", message) }
func (n *recordingNotifier) Error(sessionID, message string)   { n.add(sessionID, "error", message) }

func (n *recordingNotifier) last(sessionID string) notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	list := n.notices[sessionID]
	if len(list) == 0 {
		return notice{}
	}
	return list[len(list)-1]
}

type recordingRecorder struct {
	mu      sync.Mutex
	records []*model.SubmissionRecord
}

func (r *recordingRecorder) Record(_ context.Context, record *model.SubmissionRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
}

func png(name string) Upload {
	return Upload{
		Filename: name,
		Data:     []byte("\x89PNG\r\n\x1a\n" + name),
	}
}

func pngs(n int) []Upload {
	out := make([]Upload, n)
	for i := range out {
		out[i] = png(fmt.Sprintf("img-%d.png", i))
	}
	return out
}

func strPtr(s string) *string { return &s }
