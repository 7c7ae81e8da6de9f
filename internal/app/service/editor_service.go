package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ikkim/catalog-console/internal/app/draft"
	"github.com/ikkim/catalog-console/internal/app/model"
	"github.com/ikkim/catalog-console/internal/storage"
	"github.com/ikkim/catalog-console/pkg/catalog"
	"github.com/ikkim/catalog-console/pkg/logger"
	"github.com/ikkim/catalog-console/pkg/metrics"
)

// EditorService hosts the in-memory editing sessions and every operator
// operation on them. Network calls run outside the session lock.
type EditorService interface {
	Open(ctx context.Context, productSlug string) (*SessionView, error)
	Get(sessionID string) (*SessionView, error)
	Discard(ctx context.Context, sessionID string) error

	UpdateFields(sessionID string, fields draft.Fields) (*SessionView, error)
	AddTag(sessionID, tag string) (*SessionView, error)
	RemoveTag(sessionID, tag string) (*SessionView, error)
	AddKeyword(sessionID, keyword string) (*SessionView, error)
	RemoveKeyword(sessionID, keyword string) (*SessionView, error)
	SetVariantMode(ctx context.Context, sessionID string, on bool) (*SessionView, int, error)

	AddImages(ctx context.Context, sessionID string, owner ImageOwner, uploads []Upload) (*SessionView, *draft.QuotaWarning, error)
	RemoveImage(ctx context.Context, sessionID string, owner ImageOwner, index int) (*SessionView, error)

	ListTypes(ctx context.Context, sessionID string) ([]model.AttributeType, error)
	ListValues(ctx context.Context, sessionID, typeID string) ([]model.AttributeValue, error)
	SelectType(ctx context.Context, sessionID, typeID string) (*SessionView, error)
	SelectValue(ctx context.Context, sessionID, valueID string) (*SessionView, error)
	CreateValue(ctx context.Context, sessionID string, payload model.ValuePayload) (*model.AttributeValue, *SessionView, error)
	CancelCreateValue(sessionID string) (*SessionView, error)
	UpdateComposer(sessionID string, patch draft.VariantPatch) (*SessionView, error)
	CommitVariant(sessionID string) (*draft.VariantView, *SessionView, error)
	UpdateVariant(sessionID, localID string, patch draft.VariantPatch) (*SessionView, error)
	RemoveVariant(ctx context.Context, sessionID, localID string) (*SessionView, error)

	Submit(ctx context.Context, sessionID string) (*SubmitResult, error)

	Sweep(ctx context.Context, idle time.Duration) int
	Shutdown(ctx context.Context)
	Count() int
}

// EditorConfig carries the per-session limits
type EditorConfig struct {
	ImageLimit     int
	MaxUploadBytes int64
}

// SubmitResult is returned once the catalog acknowledged a submit
type SubmitResult struct {
	SessionID string               `json:"session_id"`
	Mode      model.SubmissionMode `json:"mode"`
	Slug      string               `json:"slug"`
	Message   string               `json:"message"`
	Fields    int                  `json:"fields"`
}

// SubmissionRecorder receives the outcome of every submit attempt
type SubmissionRecorder interface {
	Record(ctx context.Context, record *model.SubmissionRecord)
}

type editorService struct {
	api      CatalogAPI
	previews storage.PreviewStore
	notifier Notifier
	guard    SubmitGuard
	recorder SubmissionRecorder
	cfg      EditorConfig
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*editingSession
}

func NewEditorService(
	api CatalogAPI,
	previews storage.PreviewStore,
	notifier Notifier,
	guard SubmitGuard,
	recorder SubmissionRecorder,
	cfg EditorConfig,
) EditorService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if guard == nil {
		guard = NewLocalGuard()
	}
	if cfg.ImageLimit <= 0 {
		cfg.ImageLimit = draft.DefaultImageLimit
	}
	return &editorService{
		api:      api,
		previews: previews,
		notifier: notifier,
		guard:    guard,
		recorder: recorder,
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[string]*editingSession),
	}
}

// Open starts a create session, or an edit session hydrated from the catalog
// when productSlug is set.
func (s *editorService) Open(ctx context.Context, productSlug string) (*SessionView, error) {
	productSlug = strings.TrimSpace(productSlug)

	d := draft.New(s.cfg.ImageLimit)
	if productSlug != "" {
		product, err := s.api.GetProduct(ctx, productSlug)
		if err != nil {
			logger.Error("Failed to load product for editing", err, map[string]interface{}{
				"slug": productSlug,
			})
			return nil, err
		}
		if d, err = draft.FromProduct(product, s.cfg.ImageLimit); err != nil {
			logger.Error("Failed to hydrate product draft", err, map[string]interface{}{
				"slug": productSlug,
			})
			return nil, err
		}
	}

	sess := &editingSession{
		id:         uuid.NewString(),
		registry:   NewAttributeRegistry(s.api),
		draft:      d,
		composer:   draft.NewComposer(s.cfg.ImageLimit),
		lastActive: s.now(),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	active := len(s.sessions)
	s.mu.Unlock()
	metrics.ActiveSessions.Set(float64(active))

	logger.Info("Editing session opened", map[string]interface{}{
		"session_id": sess.id,
		"mode":       sess.mode(),
		"slug":       productSlug,
	})

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

func (s *editorService) Get(sessionID string) (*SessionView, error) {
	return s.mutate(context.Background(), sessionID, func(*editingSession) ([]model.ImageAsset, error) {
		return nil, nil
	})
}

// Discard closes the session and releases its previews. Nothing is sent to
// the catalog.
func (s *editorService) Discard(ctx context.Context, sessionID string) error {
	sess := s.detach(sessionID)
	if sess == nil {
		return ErrSessionNotFound
	}
	released := s.close(ctx, sess)

	logger.Info("Editing session discarded", map[string]interface{}{
		"session_id": sessionID,
		"released":   released,
	})
	return nil
}

func (s *editorService) UpdateFields(sessionID string, fields draft.Fields) (*SessionView, error) {
	return s.mutate(context.Background(), sessionID, func(sess *editingSession) ([]model.ImageAsset, error) {
		return nil, sess.draft.Apply(fields)
	})
}

func (s *editorService) AddTag(sessionID, tag string) (*SessionView, error) {
	return s.mutate(context.Background(), sessionID, func(sess *editingSession) ([]model.ImageAsset, error) {
		return nil, sess.draft.AddTag(tag)
	})
}

func (s *editorService) RemoveTag(sessionID, tag string) (*SessionView, error) {
	return s.mutate(context.Background(), sessionID, func(sess *editingSession) ([]model.ImageAsset, error) {
		sess.draft.RemoveTag(tag)
		return nil, nil
	})
}

func (s *editorService) AddKeyword(sessionID, keyword string) (*SessionView, error) {
	return s.mutate(context.Background(), sessionID, func(sess *editingSession) ([]model.ImageAsset, error) {
		return nil, sess.draft.AddKeyword(keyword)
	})
}

func (s *editorService) RemoveKeyword(sessionID, keyword string) (*SessionView, error) {
	return s.mutate(context.Background(), sessionID, func(sess *editingSession) ([]model.ImageAsset, error) {
		sess.draft.RemoveKeyword(keyword)
		return nil, nil
	})
}

// SetVariantMode toggles the pricing mode. Turning it off discards every
// variant and the draft variant; the number of discarded variants is returned.
func (s *editorService) SetVariantMode(ctx context.Context, sessionID string, on bool) (*SessionView, int, error) {
	discarded := 0
	view, err := s.mutate(ctx, sessionID, func(sess *editingSession) ([]model.ImageAsset, error) {
		removed, err := sess.draft.SetVariantMode(on)
		if err != nil {
			return nil, err
		}
		var assets []model.ImageAsset
		for _, v := range removed {
			assets = append(assets, v.Images.Items()...)
		}
		if !on {
			assets = append(assets, sess.composer.Reset()...)
		}
		discarded = len(removed)
		return assets, nil
	})
	if err != nil {
		return nil, 0, err
	}

	if discarded > 0 {
		s.notifier.Warn(sessionID, fmt.Sprintf("%d variants discarded.", discarded))
	}
	logger.Info("Variant mode changed", map[string]interface{}{
		"session_id": sessionID,
		"variants":   on,
		"discarded":  discarded,
	})
	return view, discarded, nil
}

// AddImages stages uploads into one image list. Previews are created only
// for files that fit the remaining quota; the rest are reported through the
// returned warning.
func (s *editorService) AddImages(ctx context.Context, sessionID string, owner ImageOwner, uploads []Upload) (*SessionView, *draft.QuotaWarning, error) {
	if len(uploads) == 0 {
		err := &draft.ValidationError{Field: "files", Message: "Please select at least one image."}
		s.rejected(sessionID, err)
		return nil, nil, err
	}
	for i := range uploads {
		u := &uploads[i]
		u.ContentType = storage.DetectContentType(u.ContentType, u.Data)
		if err := storage.ValidateUpload(int64(len(u.Data)), s.cfg.MaxUploadBytes, u.ContentType); err != nil {
			verr := uploadError(u.Filename, err)
			s.rejected(sessionID, verr)
			return nil, nil, verr
		}
	}

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, nil, err
	}

	sess.mu.Lock()
	if sess.closed {
		sess.mu.Unlock()
		return nil, nil, ErrSessionNotFound
	}
	if sess.submitting {
		sess.mu.Unlock()
		return nil, nil, ErrSubmitInProgress
	}
	free, err := sess.remaining(owner)
	sess.mu.Unlock()
	if err != nil {
		s.rejected(sessionID, err)
		return nil, nil, err
	}

	fit := len(uploads)
	if fit > free {
		fit = free
	}
	files := make([]*model.StagedImage, 0, fit)
	for _, u := range uploads[:fit] {
		preview, err := s.previews.Put(ctx, u.Filename, u.ContentType, u.Data)
		if err != nil {
			logger.Error("Failed to stage image preview", err, map[string]interface{}{
				"session_id": sessionID,
				"filename":   u.Filename,
			})
			draft.ReleaseStaged(ctx, s.previews, draft.StagedFiles(files)...)
			return nil, nil, err
		}
		files = append(files, &model.StagedImage{
			Filename:    u.Filename,
			ContentType: u.ContentType,
			Data:        u.Data,
			Preview:     preview,
		})
	}

	var free2 int
	var accepted []*model.StagedImage
	view, err := s.mutate(ctx, sessionID, func(sess *editingSession) ([]model.ImageAsset, error) {
		n, err := sess.remaining(owner)
		if err != nil {
			return draft.StagedFiles(files), err
		}
		free2 = n
		added, dropped, err := sess.addImages(owner, files)
		accepted = added
		return draft.StagedFiles(dropped), err
	})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSubmitInProgress) {
			draft.ReleaseStaged(ctx, s.previews, draft.StagedFiles(files)...)
		}
		return nil, nil, err
	}

	var warn *draft.QuotaWarning
	if rejected := len(uploads) - len(accepted); rejected > 0 {
		if free2 > free {
			free2 = free
		}
		warn = &draft.QuotaWarning{Remaining: free2, Rejected: rejected}
		metrics.ImagesRejected.Add(float64(rejected))
		s.notifier.Warn(sessionID, warn.Message())
		logger.Warn("Images rejected by quota", map[string]interface{}{
			"session_id": sessionID,
			"owner":      owner.Kind,
			"rejected":   rejected,
		})
	}

	logger.Debug("Images staged", map[string]interface{}{
		"session_id": sessionID,
		"owner":      owner.Kind,
		"accepted":   len(accepted),
	})
	return view, warn, nil
}

func (s *editorService) RemoveImage(ctx context.Context, sessionID string, owner ImageOwner, index int) (*SessionView, error) {
	return s.mutate(ctx, sessionID, func(sess *editingSession) ([]model.ImageAsset, error) {
		list, err := sess.images(owner)
		if err != nil {
			return nil, err
		}
		removed, err := list.Remove(index)
		if err != nil {
			return nil, err
		}
		return []model.ImageAsset{removed}, nil
	})
}

func (s *editorService) ListTypes(ctx context.Context, sessionID string) ([]model.AttributeType, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	types, err := sess.registry.ListTypes(ctx)
	if err != nil {
		s.remoteFailed(sessionID, err)
		return nil, err
	}
	return types, nil
}

func (s *editorService) ListValues(ctx context.Context, sessionID, typeID string) ([]model.AttributeValue, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	values, err := sess.registry.ValuesFor(ctx, typeID)
	if err != nil {
		s.remoteFailed(sessionID, err)
		return nil, err
	}
	return values, nil
}

// SelectType loads the type's values before switching, so a failed fetch
// leaves the composer as it was.
func (s *editorService) SelectType(ctx context.Context, sessionID, typeID string) (*SessionView, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	attrType, err := sess.registry.Type(ctx, typeID)
	if err != nil {
		s.remoteFailed(sessionID, err)
		return nil, err
	}
	if _, err := sess.registry.ValuesFor(ctx, typeID); err != nil {
		s.remoteFailed(sessionID, err)
		return nil, err
	}

	return s.mutate(ctx, sessionID, func(sess *editingSession) ([]model.ImageAsset, error) {
		return sess.composer.SelectType(attrType), nil
	})
}

func (s *editorService) SelectValue(ctx context.Context, sessionID, valueID string) (*SessionView, error) {
	if valueID == AddNewValue {
		return s.mutate(ctx, sessionID, func(sess *editingSession) ([]model.ImageAsset, error) {
			return nil, sess.composer.BeginCreateValue()
		})
	}

	sess, typeID, err := s.selectedType(sessionID)
	if err != nil {
		return nil, err
	}
	value, err := sess.registry.Value(ctx, typeID, valueID)
	if err != nil {
		s.remoteFailed(sessionID, err)
		return nil, err
	}

	return s.mutate(ctx, sessionID, func(sess *editingSession) ([]model.ImageAsset, error) {
		return nil, sess.composer.SelectValue(value)
	})
}

// CreateValue creates a value of the selected type and selects it, provided
// the composer is still on that type when the catalog answers.
func (s *editorService) CreateValue(ctx context.Context, sessionID string, payload model.ValuePayload) (*model.AttributeValue, *SessionView, error) {
	sess, typeID, err := s.selectedType(sessionID)
	if err != nil {
		return nil, nil, err
	}

	value, err := sess.registry.CreateValue(ctx, typeID, payload)
	if err != nil {
		if errors.Is(err, draft.ErrValidation) {
			s.rejected(sessionID, err)
		} else {
			s.remoteFailed(sessionID, err)
		}
		return nil, nil, err
	}

	view, err := s.mutate(ctx, sessionID, func(sess *editingSession) ([]model.ImageAsset, error) {
		if t, ok := sess.composer.Type(); !ok || t.ID != typeID {
			logger.Debug("Composer moved on before value creation finished", map[string]interface{}{
				"session_id": sessionID,
				"type_id":    typeID,
			})
			return nil, nil
		}
		return nil, sess.composer.CompleteCreateValue(value)
	})
	if err != nil {
		return nil, nil, err
	}

	s.notifier.Success(sessionID, "Value created successfully!")
	logger.Info("Attribute value created", map[string]interface{}{
		"session_id": sessionID,
		"type_id":    typeID,
		"value_id":   value.ID,
	})
	return &value, view, nil
}

func (s *editorService) CancelCreateValue(sessionID string) (*SessionView, error) {
	return s.mutate(context.Background(), sessionID, func(sess *editingSession) ([]model.ImageAsset, error) {
		sess.composer.CancelCreateValue()
		return nil, nil
	})
}

func (s *editorService) UpdateComposer(sessionID string, patch draft.VariantPatch) (*SessionView, error) {
	return s.mutate(context.Background(), sessionID, func(sess *editingSession) ([]model.ImageAsset, error) {
		return nil, sess.composer.Apply(patch)
	})
}

func (s *editorService) CommitVariant(sessionID string) (*draft.VariantView, *SessionView, error) {
	var added draft.VariantView
	view, err := s.mutate(context.Background(), sessionID, func(sess *editingSession) ([]model.ImageAsset, error) {
		v, err := sess.composer.Commit(sess.draft)
		if err != nil {
			return nil, err
		}
		added = v.View()
		return nil, nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.notifier.Success(sessionID, "Variant added successfully!")
	logger.Info("Variant added", map[string]interface{}{
		"session_id": sessionID,
		"local_id":   added.LocalID,
		"value_id":   added.AttributeValueID,
	})
	return &added, view, nil
}

func (s *editorService) UpdateVariant(sessionID, localID string, patch draft.VariantPatch) (*SessionView, error) {
	return s.mutate(context.Background(), sessionID, func(sess *editingSession) ([]model.ImageAsset, error) {
		v, err := sess.draft.Variant(localID)
		if err != nil {
			return nil, err
		}
		return nil, v.Apply(patch)
	})
}

func (s *editorService) RemoveVariant(ctx context.Context, sessionID, localID string) (*SessionView, error) {
	return s.mutate(ctx, sessionID, func(sess *editingSession) ([]model.ImageAsset, error) {
		v, err := sess.draft.RemoveVariant(localID)
		if err != nil {
			return nil, err
		}
		return v.Images.Items(), nil
	})
}

// Submit encodes the draft and creates or updates the product. On success
// the session is closed; on failure it is left intact for a retry.
func (s *editorService) Submit(ctx context.Context, sessionID string) (*SubmitResult, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.closed {
		sess.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if sess.submitting {
		sess.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if err := sess.draft.ValidateForSubmit(); err != nil {
		sess.mu.Unlock()
		s.rejected(sessionID, err)
		return nil, err
	}

	payload := draft.Encode(sess.draft)
	mode := sess.mode()
	target := sess.draft.Slug()
	if mode == model.SubmissionUpdate {
		target = sess.draft.OriginalSlug()
	}
	record := &model.SubmissionRecord{
		SessionID:    sessionID,
		Mode:         mode,
		ProductSlug:  target,
		ProductName:  sess.draft.Name(),
		VariantMode:  sess.draft.IsVariantMode(),
		VariantCount: len(sess.draft.Variants()),
		Fields:       model.FieldList(payload.Names()),
	}
	for _, asset := range sess.draft.AllAssets() {
		if _, staged := asset.(*model.StagedImage); staged {
			record.StagedImages++
		} else {
			record.Persisted++
		}
	}
	sess.submitting = true
	sess.lastActive = s.now()
	sess.mu.Unlock()

	succeeded := false
	defer func() {
		if !succeeded {
			sess.mu.Lock()
			sess.submitting = false
			sess.mu.Unlock()
		}
	}()

	release, ok, err := s.guard.Acquire(ctx, string(mode)+":"+target)
	if err != nil {
		logger.Error("Failed to acquire submit guard", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	if !ok {
		logger.Warn("Submit already in progress", map[string]interface{}{
			"session_id": sessionID,
			"slug":       target,
		})
		return nil, ErrSubmitInProgress
	}
	defer func() {
		if err := release(context.Background()); err != nil {
			logger.Warn("Failed to release submit guard", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		}
	}()

	logger.Info("Submitting product", map[string]interface{}{
		"session_id": sessionID,
		"mode":       mode,
		"slug":       target,
		"variants":   record.VariantCount,
	})

	start := time.Now()
	var ack *catalog.Ack
	if mode == model.SubmissionUpdate {
		ack, err = s.api.UpdateProduct(ctx, target, payload)
	} else {
		ack, err = s.api.CreateProduct(ctx, payload)
	}
	elapsed := time.Since(start)
	record.DurationMS = elapsed.Milliseconds()
	metrics.SubmissionDuration.WithLabelValues(string(mode)).Observe(elapsed.Seconds())

	if err != nil {
		record.Status = model.SubmissionFailed
		record.ErrorMessage = err.Error()
		var remote *catalog.RemoteError
		if errors.As(err, &remote) {
			record.RemoteStatus = remote.Status
		}
		metrics.SubmissionsTotal.WithLabelValues(string(mode), string(model.SubmissionFailed)).Inc()
		s.record(ctx, record)
		s.remoteFailed(sessionID, err)
		return nil, err
	}

	record.Status = model.SubmissionSucceeded
	metrics.SubmissionsTotal.WithLabelValues(string(mode), string(model.SubmissionSucceeded)).Inc()
	s.record(ctx, record)

	message := "Product saved successfully!"
	if ack != nil && ack.Message != "" {
		message = ack.Message
	}
	s.notifier.Success(sessionID, message)

	succeeded = true
	if closing := s.detach(sessionID); closing != nil {
		s.close(ctx, closing)
	}

	logger.Info("Product submitted", map[string]interface{}{
		"session_id":  sessionID,
		"mode":        mode,
		"slug":        target,
		"duration_ms": record.DurationMS,
	})
	return &SubmitResult{
		SessionID: sessionID,
		Mode:      mode,
		Slug:      target,
		Message:   message,
		Fields:    len(payload.Fields),
	}, nil
}

// Sweep discards sessions idle for longer than idle. Sessions with a submit
// in flight are kept.
func (s *editorService) Sweep(ctx context.Context, idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	var stale []*editingSession
	s.mu.Lock()
	for id, sess := range s.sessions {
		sess.mu.Lock()
		expired := !sess.submitting && sess.lastActive.Before(cutoff)
		sess.mu.Unlock()
		if expired {
			stale = append(stale, sess)
			delete(s.sessions, id)
		}
	}
	active := len(s.sessions)
	s.mu.Unlock()
	metrics.ActiveSessions.Set(float64(active))

	for _, sess := range stale {
		released := s.close(ctx, sess)
		logger.Info("Idle editing session discarded", map[string]interface{}{
			"session_id": sess.id,
			"released":   released,
		})
	}
	metrics.SessionsSwept.Add(float64(len(stale)))
	return len(stale)
}

// Shutdown discards every session so no preview outlives the process
func (s *editorService) Shutdown(ctx context.Context) {
	s.mu.Lock()
	all := make([]*editingSession, 0, len(s.sessions))
	for id, sess := range s.sessions {
		all = append(all, sess)
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	metrics.ActiveSessions.Set(0)

	for _, sess := range all {
		s.close(ctx, sess)
	}
	logger.Info("Editing sessions closed", map[string]interface{}{
		"count": len(all),
	})
}

func (s *editorService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *editorService) session(sessionID string) (*editingSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// mutate runs fn under the session lock and returns the resulting view. The
// assets fn hands back are released after the lock is dropped, whether or
// not fn failed.
func (s *editorService) mutate(ctx context.Context, sessionID string, fn func(*editingSession) ([]model.ImageAsset, error)) (*SessionView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.closed {
		sess.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	// a successful submit closes the session, so later edits would be lost
	if sess.submitting {
		sess.mu.Unlock()
		s.notifier.Warn(sessionID, "Please wait until the product is saved.")
		return nil, ErrSubmitInProgress
	}
	released, err := fn(sess)
	var view *SessionView
	if err == nil {
		sess.lastActive = s.now()
		view = sess.view()
	}
	sess.mu.Unlock()

	if len(released) > 0 {
		draft.ReleaseStaged(ctx, s.previews, released...)
	}
	if err != nil {
		s.rejected(sessionID, err)
		return nil, err
	}
	return view, nil
}

func (s *editorService) touch(sessionID string) (*editingSession, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return nil, ErrSessionNotFound
	}
	sess.lastActive = s.now()
	return sess, nil
}

func (s *editorService) selectedType(sessionID string) (*editingSession, string, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, "", err
	}
	sess.mu.Lock()
	t, ok := sess.composer.Type()
	sess.mu.Unlock()
	if !ok {
		err := &draft.ValidationError{Field: "type", Message: "Please select a variant type!"}
		s.rejected(sessionID, err)
		return nil, "", err
	}
	return sess, t.ID, nil
}

func (s *editorService) detach(sessionID string) *editingSession {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	active := len(s.sessions)
	s.mu.Unlock()
	if !ok {
		return nil
	}
	metrics.ActiveSessions.Set(float64(active))
	return sess
}

// close marks a detached session closed and releases its previews
func (s *editorService) close(ctx context.Context, sess *editingSession) int {
	sess.mu.Lock()
	sess.closed = true
	assets := sess.assets()
	sess.mu.Unlock()
	return draft.ReleaseStaged(ctx, s.previews, assets...)
}

func (s *editorService) record(ctx context.Context, record *model.SubmissionRecord) {
	if s.recorder != nil {
		s.recorder.Record(ctx, record)
	}
}

// rejected surfaces a validation failure as an operator warning
func (s *editorService) rejected(sessionID string, err error) {
	var verr *draft.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	metrics.ValidationRejections.WithLabelValues(verr.Field).Inc()
	s.notifier.Warn(sessionID, verr.Message)
	logger.Warn("Operator action rejected", map[string]interface{}{
		"session_id": sessionID,
		"field":      verr.Field,
		"reason":     verr.Message,
	})
}

// remoteFailed surfaces a catalog failure as an operator error
func (s *editorService) remoteFailed(sessionID string, err error) {
	var remote *catalog.RemoteError
	if !errors.As(err, &remote) {
		return
	}
	message := remote.Message
	if message == "" {
		message = "Something went wrong. Please try again."
	}
	s.notifier.Error(sessionID, message)
}

func uploadError(filename string, err error) error {
	switch {
	case errors.Is(err, storage.ErrFileTooLarge):
		return &draft.ValidationError{Field: "files", Message: filename + " is too large."}
	case errors.Is(err, storage.ErrContentType):
		return &draft.ValidationError{Field: "files", Message: filename + " is not a supported image."}
	default:
		return &draft.ValidationError{Field: "files", Message: err.Error()}
	}
}
