package service

import (
	"context"
	"sync"

	"github.com/ikkim/catalog-console/pkg/catalog"
)

// CatalogAPI is the remote catalog the console edits
type CatalogAPI interface {
	ListTypes(ctx context.Context) ([]catalog.AttributeType, error)
	ListValues(ctx context.Context, typeID string) ([]catalog.TypeName, error)
	CreateValue(ctx context.Context, typeID string, names []catalog.NewTypeName) ([]catalog.TypeName, error)
	ListBrands(ctx context.Context) ([]catalog.Option, error)
	ListSubcategories(ctx context.Context) ([]catalog.Option, error)
	GetProduct(ctx context.Context, slug string) (*catalog.Product, error)
	CreateProduct(ctx context.Context, form catalog.Form) (*catalog.Ack, error)
	UpdateProduct(ctx context.Context, slug string, form catalog.Form) (*catalog.Ack, error)
}

// Notifier is the operator notification surface. Calls never block on
// delivery and report nothing back.
type Notifier interface {
	Warn(sessionID, message string)
	Success(sessionID, message string)
	Error(sessionID, message string)
}

// SubmitGuard serializes submits of the same product. ok is false when the
// key is already held.
type SubmitGuard interface {
	Acquire(ctx context.Context, key string) (release func(context.Context) error, ok bool, err error)
}

type nopNotifier struct{}

func (nopNotifier) Warn(string, string)    {}
func (nopNotifier) Success(string, string) {}
func (nopNotifier) Error(string, string)   {}

// LocalGuard is the in-process SubmitGuard used when Redis is not configured
type LocalGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{held: make(map[string]struct{})}
}

func (g *LocalGuard) Acquire(_ context.Context, key string) (func(context.Context) error, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.held[key]; busy {
		return nil, false, nil
	}
	g.held[key] = struct{}{}

	var once sync.Once
	release := func(context.Context) error {
		once.Do(func() {
			g.mu.Lock()
			delete(g.held, key)
			g.mu.Unlock()
		})
		return nil
	}
	return release, true, nil
}
