package service

import (
	"context"
	"errors"

	"github.com/questdeck/questdeck-backend/internal/repository"
	"github.com/questdeck/questdeck-backend/internal/types"
)

type JoinRequestService interface {
	List(ctx context.Context, campaignID, accountID string) ([]*repository.JoinRequest, error)

	// Review approves or rejects a pending request. Approval creates a
	// viewer membership in the same transaction, unless one appeared
	// through another path in the meantime.
	Review(ctx context.Context, campaignID, actorID, requestID, action string) (*repository.JoinRequest, error)
}

type joinRequestService struct {
	joinRequestRepo repository.JoinRequestRepository
	enrollmentRepo  repository.EnrollmentRepository
	access          AccessService
}

func NewJoinRequestService(
	joinRequestRepo repository.JoinRequestRepository,
	enrollmentRepo repository.EnrollmentRepository,
	access AccessService,
) JoinRequestService {
	return &joinRequestService{
		joinRequestRepo: joinRequestRepo,
		enrollmentRepo:  enrollmentRepo,
		access:          access,
	}
}

func (s *joinRequestService) List(ctx context.Context, campaignID, accountID string) ([]*repository.JoinRequest, error) {
	if _, err := s.access.Require(ctx, campaignID, accountID, types.RoleOwner); err != nil {
		return nil, err
	}
	return s.joinRequestRepo.FindByCampaign(ctx, campaignID)
}

func (s *joinRequestService) Review(ctx context.Context, campaignID, actorID, requestID, action string) (*repository.JoinRequest, error) {
	if action != types.ReviewActionApprove && action != types.ReviewActionReject {
		return nil, ErrInvalidInput
	}
	if _, err := s.access.Require(ctx, campaignID, actorID, types.RoleOwner); err != nil {
		return nil, err
	}

	request, err := s.joinRequestRepo.FindByID(ctx, campaignID, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrNotFound
	}
	if request.Status != types.JoinRequestPending {
		return nil, ErrAlreadyReviewed
	}

	approve := action == types.ReviewActionApprove
	if _, err := s.enrollmentRepo.ReviewJoinRequest(ctx, request, approve, actorID); err != nil {
		if errors.Is(err, repository.ErrRequestNotPending) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	return s.joinRequestRepo.FindByID(ctx, campaignID, requestID)
}
