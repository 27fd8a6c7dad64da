package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/empetur/consolidacao/internal/domain/activity"
	"github.com/empetur/consolidacao/internal/domain/inventory"
	"github.com/empetur/consolidacao/internal/repository"
	"github.com/google/uuid"
)

// Service holds the master table of one editing session. Every operation
// runs to completion under a single lock, so a page interaction is never
// interleaved with another one or with a reload.
type Service struct {
	repo     TableRepository
	activity ActivityLogger
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	loaded   bool
	id       string
	master   []inventory.Item
	version  repository.Version
	state    State
	stale    bool
	loadedAt time.Time
	savedAt  *time.Time
}

// NewService creates a new session service. activity may be nil.
func NewService(repo TableRepository, activity ActivityLogger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		activity: activity,
		logger:   logger,
		now:      time.Now,
	}
}

// Open loads and normalizes the source. Opening an already loaded session
// only checks the source for changes.
func (s *Service) Open(ctx context.Context) (Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		if err := s.refresh(ctx); err != nil {
			return Info{}, err
		}
		return s.info(), nil
	}

	s.id = uuid.NewString()
	if err := s.load(ctx); err != nil {
		return Info{}, err
	}

	s.logger.Info("source loaded", "session_id", s.id, "rows", len(s.master), "version", s.version)
	s.record(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypeSourceLoaded,
		Summary:      "source loaded",
		Rows:         len(s.master),
	})
	return s.info(), nil
}

// Status returns the session state after checking the source.
func (s *Service) Status(ctx context.Context) (Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensure(ctx); err != nil {
		return Info{}, err
	}
	return s.info(), nil
}

// Municipalities lists the scope choices of the master table.
func (s *Service) Municipalities(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	return inventory.MunicipalityOptions(s.master), nil
}

// Snapshot returns a copy of the master table.
func (s *Service) Snapshot(ctx context.Context) ([]inventory.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	out := make([]inventory.Item, len(s.master))
	copy(out, s.master)
	return out, nil
}

// OfficeView selects the scope, applies the filter and projects the rows on
// the office page columns.
func (s *Service) OfficeView(ctx context.Context, req ViewRequest) (*OfficeView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	muni := inventory.ResolveMunicipality(s.master, req.Municipality)
	scope := inventory.SelectScope(s.master, muni)
	filtered := req.Filter.Apply(scope.Items)
	page := inventory.OfficePage

	return &OfficeView{
		Municipality:    muni,
		Columns:         columnNames(page.Columns),
		Editable:        page.EditableColumns(),
		Rows:            page.Project(filtered),
		Summary:         inventory.Summarize(filtered),
		Categories:      inventory.CategoryCounts(filtered),
		CategoryOptions: inventory.CategoryOptions(scope.Items),
		Session:         s.info(),
	}, nil
}

// FieldView lists the routed rows of the scope that match the filter,
// projected on the field page columns.
func (s *Service) FieldView(ctx context.Context, req ViewRequest) (*FieldView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	muni := inventory.ResolveMunicipality(s.master, req.Municipality)
	scope := inventory.SelectScope(s.master, muni)
	route := inventory.Filter{OnlyRoute: true}.Apply(scope.Items)
	filtered := req.Filter.Apply(route)
	page := inventory.FieldPage

	return &FieldView{
		Municipality:    muni,
		Columns:         columnNames(page.Columns),
		Editable:        page.EditableColumns(),
		Rows:            page.Project(filtered),
		Progress:        inventory.FieldProgress(route),
		Filtered:        inventory.FieldProgress(filtered),
		CategoryOptions: inventory.CategoryOptions(route),
		Session:         s.info(),
	}, nil
}

// ApplyEdits reconciles an edited page view into the master table. The
// session becomes dirty only when the master content changed.
func (s *Service) ApplyEdits(ctx context.Context, req EditRequest) (*EditResult, error) {
	page, ok := inventory.PageFor(req.Page)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, req.Page)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	muni := inventory.ResolveMunicipality(s.master, req.Municipality)
	next, changed := inventory.ApplyToScope(s.master, muni, req.View, page.Editable)
	if changed {
		s.master = next
		s.state = StateDirty
	}

	s.logger.Info("edits applied",
		"session_id", s.id,
		"page", req.Page,
		"municipio", muni,
		"edited_rows", req.View.Len(),
		"changed", changed,
		"state", s.state,
	)
	if changed {
		s.record(ctx, &activity.ActivityEntry{
			ActivityType: activity.TypeEditsApplied,
			Municipality: muni,
			Page:         string(req.Page),
			Summary:      "edits applied",
			Details:      activity.Details(map[string]int{"edited_rows": req.View.Len()}),
			Rows:         len(s.master),
		})
	}

	return &EditResult{Changed: changed, Session: s.info()}, nil
}

// Save writes the whole master table back to the source. A stale session
// is only saved when force is set, overwriting the external change.
func (s *Service) Save(ctx context.Context, force bool) (Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensure(ctx); err != nil {
		return Info{}, err
	}
	if s.stale && !force {
		return Info{}, ErrStaleSource
	}

	version, err := s.repo.Save(ctx, inventory.ToTable(s.master))
	if err != nil {
		return Info{}, fmt.Errorf("saving source: %w", err)
	}

	now := s.now()
	s.version = version
	s.state = StateClean
	s.stale = false
	s.savedAt = &now

	s.logger.Info("source saved", "session_id", s.id, "rows", len(s.master), "version", version, "forced", force)
	s.record(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypeSaved,
		Summary:      "source saved",
		Details:      activity.Details(map[string]bool{"forced": force}),
		Rows:         len(s.master),
	})
	return s.info(), nil
}

// Reload replaces the master table with the persisted source. Unsaved edits
// are only dropped when discard is set.
func (s *Service) Reload(ctx context.Context, discard bool) (Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return Info{}, ErrNotLoaded
	}
	if s.state == StateDirty && !discard {
		return Info{}, ErrUnsavedChanges
	}

	if err := s.load(ctx); err != nil {
		return Info{}, err
	}

	s.logger.Info("source reloaded", "session_id", s.id, "rows", len(s.master), "version", s.version, "discarded", discard)
	s.record(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypeReloaded,
		Summary:      "source reloaded on request",
		Details:      activity.Details(map[string]bool{"discarded": discard}),
		Rows:         len(s.master),
	})
	return s.info(), nil
}

// RouteExport returns the routed rows of a scope in export order.
func (s *Service) RouteExport(ctx context.Context, municipality string) (inventory.RouteExport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensure(ctx); err != nil {
		return inventory.RouteExport{}, err
	}

	muni := inventory.ResolveMunicipality(s.master, municipality)
	exp := inventory.BuildRouteExport(inventory.SelectScope(s.master, muni))

	s.record(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypeRouteExported,
		Municipality: muni,
		Summary:      exp.Name,
		Rows:         len(exp.Items),
	})
	return exp, nil
}

// MarkSourceChanged is called when the source is reported modified outside
// the session. It applies the same rules as the per-operation check.
func (s *Service) MarkSourceChanged(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return
	}
	if err := s.refresh(ctx); err != nil {
		s.logger.Warn("source change check failed", "session_id", s.id, "error", err)
	}
}

func (s *Service) ensure(ctx context.Context) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	return s.refresh(ctx)
}

// refresh compares the persisted version with the loaded one. A clean
// session follows the source; a dirty one is marked stale instead.
func (s *Service) refresh(ctx context.Context) error {
	current, err := s.repo.Version(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrSourceNotFound) {
			s.logger.Warn("source unavailable, serving loaded table", "session_id", s.id, "error", err)
			return nil
		}
		return fmt.Errorf("checking source version: %w", err)
	}
	if current == s.version {
		return nil
	}

	if s.state == StateClean {
		if err := s.load(ctx); err != nil {
			return err
		}
		s.logger.Info("source changed, reloaded", "session_id", s.id, "rows", len(s.master), "version", s.version)
		s.record(ctx, &activity.ActivityEntry{
			ActivityType: activity.TypeReloaded,
			Summary:      "source changed on disk",
			Rows:         len(s.master),
		})
		return nil
	}

	if !s.stale {
		s.stale = true
		s.logger.Warn("source changed while edits are unsaved",
			"session_id", s.id,
			"loaded_version", s.version,
			"current_version", current,
		)
		s.record(ctx, &activity.ActivityEntry{
			ActivityType: activity.TypeStaleDetected,
			Summary:      "source changed while edits are unsaved",
			Rows:         len(s.master),
		})
	}
	return nil
}

func (s *Service) load(ctx context.Context) error {
	table, version, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading source: %w", err)
	}
	s.master = inventory.Normalize(table)
	s.version = version
	s.state = StateClean
	s.stale = false
	s.loadedAt = s.now()
	s.loaded = true
	return nil
}

func (s *Service) info() Info {
	return Info{
		ID:       s.id,
		State:    s.state,
		Stale:    s.stale,
		Rows:     len(s.master),
		Version:  s.version,
		LoadedAt: s.loadedAt,
		SavedAt:  s.savedAt,
	}
}

func (s *Service) record(ctx context.Context, entry *activity.ActivityEntry) {
	if s.activity == nil {
		return
	}
	entry.SessionID = s.id
	if err := s.activity.LogActivity(ctx, entry); err != nil {
		s.logger.Warn("activity log failed", "type", entry.ActivityType, "error", err)
	}
}

func columnNames(cols []inventory.Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = string(c)
	}
	return out
}
