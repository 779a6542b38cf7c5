// Package photos keeps the client's in-memory photo collection and the
// backend-computed statistics in step with the backend.
//
// Local state changes only after the backend confirms an operation. Admin
// operations read the session credential from a TokenSource at call time.
package photos

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gallerykeeper/internal/client/gateway"
	"github.com/dmitrijs2005/gallerykeeper/internal/client/imagefile"
	"github.com/dmitrijs2005/gallerykeeper/internal/client/models"
	"github.com/dmitrijs2005/gallerykeeper/internal/client/notify"
	"github.com/dmitrijs2005/gallerykeeper/internal/logging"
)

var (
	ErrSessionRequired = errors.New("session required")
	ErrUploadRejected  = errors.New("upload rejected")
	ErrRejected        = errors.New("request rejected")
)

const (
	msgSessionRequired = "Session required"
	msgLoadFailed      = "Failed to load photos"
	msgUploaded        = "Photo uploaded"
	msgUploadFailed    = "Failed to upload photo"
	msgDeleted         = "Photo deleted"
	msgDeleteFailed    = "Failed to delete photo"
	msgUpdated         = "Photo updated"
	msgUpdateFailed    = "Failed to update photo"
)

// TokenSource yields the current session credential, empty when there is
// no session. *session.Store satisfies it.
type TokenSource interface {
	Token() string
}

// Snapshot is a read-only view of the store.
type Snapshot struct {
	Photos    []models.Photo
	Stats     *models.PhotoStats
	Loading   bool
	Uploading bool
}

// Store is the client's copy of the photo collection and statistics. It is
// safe for concurrent use; no lock is held across a backend call.
type Store struct {
	gw       gateway.Gateway
	tokens   TokenSource
	notifier notify.Notifier
	log      logging.Logger

	// pubMu orders changes with their notifications; subscribers see
	// snapshots in the order the changes happened.
	pubMu  sync.Mutex
	mu     sync.RWMutex
	photos []models.Photo
	stats  *models.PhotoStats
	// in-flight counts; the flags are raised while any call is running
	loading   int
	uploading int
	journal   journal

	changes notify.Broadcaster[Snapshot]
}

// Option configures a Store.
type Option func(*Store)

// WithNotifier sets where user-facing outcomes are reported.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithLogger sets the store's logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewStore builds an empty store. Admin operations read the credential from
// tokens at call time.
func NewStore(gw gateway.Gateway, tokens TokenSource, opts ...Option) *Store {
	s := &Store{
		gw:       gw,
		tokens:   tokens,
		notifier: notify.Discard{},
		log:      logging.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("component", "photos")
	return s
}

// FetchPublic replaces the collection with the public photos.
func (s *Store) FetchPublic(ctx context.Context) error {
	return s.fetchList(ctx, listRequest{Action: actionGetPublic})
}

// FetchAllForAdmin replaces the collection with every photo, public or
// not. It fails with ErrSessionRequired, without a network call, when
// there is no session.
func (s *Store) FetchAllForAdmin(ctx context.Context) error {
	token, err := s.requireToken(ctx, actionGetAllAdmin)
	if err != nil {
		return err
	}
	return s.fetchList(ctx, listRequest{Action: actionGetAllAdmin, SessionToken: token})
}

func (s *Store) fetchList(ctx context.Context, req listRequest) error {
	var seq uint64
	s.update(func() {
		seq = s.journal.beginFetch()
		s.loading++
	})

	var resp listResponse
	err := s.gw.Invoke(ctx, gateway.ProcManagePhotos, req, &resp)

	applied := false
	s.update(func() {
		s.loading--
		if err != nil {
			s.journal.abandonFetch(seq)
			return
		}
		list := resp.Photos
		if list == nil {
			list = []models.Photo{}
		}
		if list, applied = s.journal.completeFetch(seq, list); applied {
			s.photos = list
		}
	})

	if err != nil {
		s.log.Error(ctx, "fetch photos failed", "action", req.Action, "error", err)
		s.notifier.Error(msgLoadFailed)
		return fmt.Errorf("fetch photos: %w", err)
	}
	if !applied {
		s.log.Debug(ctx, "dropped stale photo list", "action", req.Action)
		return nil
	}
	s.log.Debug(ctx, "photo list replaced", "action", req.Action, "count", len(resp.Photos))
	return nil
}

// FetchStats refreshes the statistics snapshot. Without a session it does
// nothing and reports no error, since it usually runs next to
// FetchAllForAdmin which already tells the user. Failures are logged only.
func (s *Store) FetchStats(ctx context.Context) error {
	token := s.tokens.Token()
	if token == "" {
		return nil
	}

	var stats models.PhotoStats
	err := s.gw.Invoke(ctx, gateway.ProcManagePhotos, statsRequest{Action: actionGetStats, SessionToken: token}, &stats)
	if err != nil {
		s.log.Error(ctx, "fetch stats failed", "error", err)
		return fmt.Errorf("fetch stats: %w", err)
	}

	s.update(func() { s.stats = &stats })
	return nil
}

// Upload validates f locally, sends it and prepends the created photo to
// the collection. A file with an unsupported type or over the size limit is
// rejected without a network call. The caller makes sure title is not
// blank; description and category are optional.
func (s *Store) Upload(ctx context.Context, f imagefile.File, title, description string, category models.Category) (*models.Photo, error) {
	if err := imagefile.Validate(f); err != nil {
		s.log.Warn(ctx, "upload rejected locally", "file", f.Name(), "error", err)
		s.notifier.Error(validationMessage(err))
		return nil, err
	}

	s.setUploading(1)
	defer s.setUploading(-1)

	data, err := imagefile.EncodeToTransferable(ctx, f)
	if err != nil {
		s.log.Error(ctx, "cannot read upload", "file", f.Name(), "error", err)
		s.notifier.Error(msgUploadFailed)
		return nil, fmt.Errorf("encode %s: %w", f.Name(), err)
	}

	var resp uploadResponse
	err = s.gw.Invoke(ctx, gateway.ProcUploadPhoto, uploadRequest{
		ImageData:   data,
		FileName:    f.Name(),
		Title:       title,
		Description: description,
		Category:    category,
	}, &resp)
	if err != nil {
		s.log.Error(ctx, "upload failed", "file", f.Name(), "error", err)
		s.notifier.Error(gateway.Message(err, msgUploadFailed))
		return nil, fmt.Errorf("upload %s: %w", f.Name(), err)
	}
	if resp.Photo == nil {
		msg := orDefault(resp.Message, msgUploadFailed)
		s.log.Warn(ctx, "upload not confirmed", "file", f.Name(), "message", resp.Message)
		s.notifier.Error(msg)
		return nil, fmt.Errorf("%w: %s", ErrUploadRejected, msg)
	}

	created := resp.Photo.Clone()
	s.mutate(mutation{kind: mutationCreated, id: created.ID, photo: created})

	s.log.Info(ctx, "photo uploaded", "id", created.ID, "file", f.Name())
	s.notifier.Success(orDefault(resp.Message, msgUploaded))
	return &created, nil
}

// DeletePhoto removes the photo on the backend and, once confirmed, from
// the collection. On failure the collection is left as it was.
func (s *Store) DeletePhoto(ctx context.Context, id int64) error {
	token, err := s.requireToken(ctx, actionDelete)
	if err != nil {
		return err
	}

	var resp deleteResponse
	err = s.gw.Invoke(ctx, gateway.ProcManagePhotos, deleteRequest{
		Action:       actionDelete,
		SessionToken: token,
		PhotoID:      id,
	}, &resp)
	if err != nil {
		s.log.Error(ctx, "delete failed", "id", id, "error", err)
		s.notifier.Error(gateway.Message(err, msgDeleteFailed))
		return fmt.Errorf("delete photo %d: %w", id, err)
	}
	if !resp.Success {
		msg := orDefault(resp.Message, msgDeleteFailed)
		s.log.Warn(ctx, "delete not confirmed", "id", id, "message", resp.Message)
		s.notifier.Error(msg)
		return fmt.Errorf("delete photo %d: %w: %s", id, ErrRejected, msg)
	}

	s.mutate(mutation{kind: mutationDeleted, id: id})

	s.log.Info(ctx, "photo deleted", "id", id)
	s.notifier.Success(orDefault(resp.Message, msgDeleted))
	return nil
}

// UpdatePhoto sends patch for photo id. Once confirmed, only the fields the
// backend echoes back are merged into the local entry.
func (s *Store) UpdatePhoto(ctx context.Context, id int64, patch models.PhotoPatch) error {
	token, err := s.requireToken(ctx, actionUpdate)
	if err != nil {
		return err
	}

	var resp updateResponse
	err = s.gw.Invoke(ctx, gateway.ProcManagePhotos, updateRequest{
		Action:       actionUpdate,
		SessionToken: token,
		PhotoID:      id,
		UpdateData:   patch,
	}, &resp)
	if err != nil {
		s.log.Error(ctx, "update failed", "id", id, "error", err)
		s.notifier.Error(gateway.Message(err, msgUpdateFailed))
		return fmt.Errorf("update photo %d: %w", id, err)
	}
	if !resp.Success {
		msg := orDefault(resp.Message, msgUpdateFailed)
		s.log.Warn(ctx, "update not confirmed", "id", id, "message", resp.Message)
		s.notifier.Error(msg)
		return fmt.Errorf("update photo %d: %w: %s", id, ErrRejected, msg)
	}

	if resp.Photo != nil {
		s.mutate(mutation{kind: mutationUpdated, id: id, patch: *resp.Photo})
	}

	s.log.Info(ctx, "photo updated", "id", id)
	s.notifier.Success(orDefault(resp.Message, msgUpdated))
	return nil
}

func (s *Store) requireToken(ctx context.Context, action string) (string, error) {
	token := s.tokens.Token()
	if token == "" {
		s.log.Warn(ctx, "admin operation without session", "action", action)
		s.notifier.Error(msgSessionRequired)
		return "", ErrSessionRequired
	}
	return token, nil
}

// mutate applies a confirmed change to the collection and records it for
// fetches still in flight.
func (s *Store) mutate(m mutation) {
	s.update(func() {
		s.photos = m.apply(s.photos)
		s.journal.record(m)
	})
}

func (s *Store) setUploading(delta int) {
	s.update(func() { s.uploading += delta })
}

// update runs fn under the state lock and publishes the resulting snapshot
// before any other change can. Subscribers must not call back into the
// store's operations.
func (s *Store) update(fn func()) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	fn()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.changes.Publish(snap)
}

// Photos returns a copy of the collection, newest uploads first.
func (s *Store) Photos() []models.Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.ClonePhotos(s.photos)
}

// Stats returns the last fetched statistics, nil before the first fetch.
func (s *Store) Stats() *models.PhotoStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stats == nil {
		return nil
	}
	st := *s.stats
	return &st
}

// Loading reports whether a list fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading > 0
}

// Uploading reports whether an upload is in flight.
func (s *Store) Uploading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.uploading > 0
}

// Snapshot returns a copy of the whole store state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Photos:    models.ClonePhotos(s.photos),
		Loading:   s.loading > 0,
		Uploading: s.uploading > 0,
	}
	if s.stats != nil {
		st := *s.stats
		snap.Stats = &st
	}
	return snap
}

// Subscribe registers fn to receive a snapshot after every change.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, imagefile.ErrInvalidType):
		return "Only image files are allowed (JPEG, PNG, GIF, WebP)"
	case errors.Is(err, imagefile.ErrTooLarge):
		return "File must not exceed 10MB"
	}
	return msgUploadFailed
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
