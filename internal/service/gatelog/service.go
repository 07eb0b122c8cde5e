// internal/service/gatelog/service.go
package gatelog

import (
	"context"
	"sync"
	"time"

	"hostel-portal/internal/domain/gatelog"
	xerrors "hostel-portal/internal/pkg/errors"
	"hostel-portal/internal/upstream"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Repository is the journal storage used by the service.
type Repository interface {
	Create(ctx context.Context, s *gatelog.ScanLog) error
	FindByID(ctx context.Context, id string) (*gatelog.ScanLog, error)
	List(ctx context.Context, filters *gatelog.ListFilters) ([]gatelog.ScanLog, error)
	FindUnsynced(ctx context.Context, limit int) ([]gatelog.ScanLog, error)
	MarkSynced(ctx context.Context, id string) error
	CountUnsynced(ctx context.Context) (int64, error)
}

// Service journals gate scans locally and forwards them to the upstream API
// in the background. Devices at the gate only talk to the portal, so scans
// are never lost while the upstream is down.
type Service struct {
	repo   Repository
	api    *upstream.Client
	logger *zap.Logger

	// Forwarding runs against the most recent warden session. Until a
	// warden logs in the journal only accumulates.
	mu      sync.RWMutex
	syncSID string
}

func NewService(repo Repository, api *upstream.Client, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		api:    api,
		logger: logger,
	}
}

// SetSyncSession records the session the sync worker forwards with.
// Called when a warden logs in.
func (s *Service) SetSyncSession(sid string) {
	s.mu.Lock()
	s.syncSID = sid
	s.mu.Unlock()
	s.logger.Info("gatelog sync session updated")
}

// ClearSyncSession drops the forwarding session, e.g. on warden logout.
func (s *Service) ClearSyncSession(sid string) {
	s.mu.Lock()
	if s.syncSID == sid {
		s.syncSID = ""
	}
	s.mu.Unlock()
}

func (s *Service) syncSession() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.syncSID
}

// RecordScan validates and journals a scan from a gate device.
func (s *Service) RecordScan(ctx context.Context, req *gatelog.ScanRequest) (*gatelog.ScanLog, error) {
	direction := gatelog.Direction(req.Direction)
	if !direction.Valid() {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "direction must be entry or exit")
	}

	method := req.Method
	if method == "" {
		method = "qr"
	}

	scan := &gatelog.ScanLog{
		ID:         ulid.Make().String(),
		StudentID:  req.StudentID,
		Direction:  direction,
		Method:     method,
		DeviceName: req.DeviceName,
		Tags:       req.Tags,
		RecordedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, scan); err != nil {
		return nil, xerrors.Wrap(xerrors.ErrInternal, "failed to journal scan")
	}

	s.logger.Info("gate scan journaled",
		zap.String("id", scan.ID),
		zap.String("student_id", scan.StudentID),
		zap.String("direction", string(scan.Direction)),
		zap.String("device", scan.DeviceName),
	)
	return scan, nil
}

// List returns journaled scans for the warden security view.
func (s *Service) List(ctx context.Context, filters *gatelog.ListFilters) ([]gatelog.ScanLog, error) {
	return s.repo.List(ctx, filters)
}

// Backlog reports how many scans still wait to be forwarded.
func (s *Service) Backlog(ctx context.Context) (int64, error) {
	return s.repo.CountUnsynced(ctx)
}

// RunSyncWorker forwards unsynced scans upstream at a fixed interval until
// ctx is cancelled.
func (s *Service) RunSyncWorker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("gatelog sync worker started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("gatelog sync worker stopped")
			return
		case <-ticker.C:
			s.syncBatch(ctx)
		}
	}
}

// syncBatch pushes one batch of pending scans. Stops on the first upstream
// outage so order is preserved and the batch retries next tick.
func (s *Service) syncBatch(ctx context.Context) {
	sid := s.syncSession()
	if sid == "" {
		s.logger.Debug("gatelog sync skipped, no warden session available")
		return
	}

	pending, err := s.repo.FindUnsynced(ctx, 50)
	if err != nil {
		s.logger.Error("gatelog sync failed to load backlog", zap.Error(err))
		return
	}
	if len(pending) == 0 {
		return
	}

	for i := range pending {
		scan := &pending[i]
		if err := s.forward(ctx, sid, scan); err != nil {
			if upstream.IsUnavailable(err) {
				s.logger.Warn("upstream unavailable, gatelog sync deferred",
					zap.Int("remaining", len(pending)-i),
				)
				return
			}
			// Auth problems mean the session went stale. Keep the
			// backlog and wait for the next warden login.
			if apiErr, ok := upstream.AsError(err); ok &&
				(apiErr.Category == upstream.CategoryUnauthorized || apiErr.Category == upstream.CategoryForbidden) {
				s.ClearSyncSession(sid)
				s.logger.Warn("gatelog sync session rejected upstream, cleared")
				return
			}
			s.logger.Error("failed to forward scan",
				zap.String("id", scan.ID),
				zap.Error(err),
			)
			continue
		}

		if err := s.repo.MarkSynced(ctx, scan.ID); err != nil {
			s.logger.Error("failed to mark scan synced",
				zap.String("id", scan.ID),
				zap.Error(err),
			)
		}
	}
}

func (s *Service) forward(ctx context.Context, sid string, scan *gatelog.ScanLog) error {
	mark := &upstream.EntryExitMark{
		StudentID: scan.StudentID,
		Method:    scan.Method,
	}

	var err error
	switch scan.Direction {
	case gatelog.DirectionEntry:
		_, err = s.api.MarkEntry(ctx, sid, mark)
	case gatelog.DirectionExit:
		_, err = s.api.MarkExit(ctx, sid, mark)
	}
	return err
}
