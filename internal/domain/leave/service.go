package leave

import (
	"context"
	"errors"
)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

var (
	ErrInvalidDecision = errors.New("invalid decision")
	ErrInvalidType     = errors.New("unknown leave type")
	ErrAlreadyDecided  = errors.New("request already decided")
)

// Service drives the pending -> approved/rejected transition.
type Service struct {
	Store *Store

	// AllowRedecision lets a later approve/reject overwrite an earlier
	// decision, decider stamp included. The historical behavior of the
	// system is to allow it; switching it off turns a second decision
	// into ErrAlreadyDecided.
	AllowRedecision bool
}

func NewService(store *Store, allowRedecision bool) *Service {
	return &Service{Store: store, AllowRedecision: allowRedecision}
}

func (s *Service) Submit(ctx context.Context, req NewRequest) (Request, error) {
	if _, err := DurationDays(req.StartDate, req.EndDate); err != nil {
		return Request{}, err
	}
	if !ValidType(req.LeaveType) {
		return Request{}, ErrInvalidType
	}
	return s.Store.Create(ctx, req)
}

// Decide applies an admin decision. Whatever the outcome, the acting
// admin is stamped as the decider.
func (s *Service) Decide(ctx context.Context, requestID int64, decision, notes string, adminUserID int64) (Request, error) {
	var status string
	switch decision {
	case DecisionApprove:
		status = StatusApproved
	case DecisionReject:
		status = StatusRejected
	default:
		return Request{}, ErrInvalidDecision
	}

	current, err := s.Store.Get(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if !s.AllowRedecision && current.Status != StatusPending {
		return Request{}, ErrAlreadyDecided
	}

	return s.Store.updateDecision(ctx, requestID, status, notes, adminUserID)
}
