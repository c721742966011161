package service

import (
	"context"

	"github.com/questdeck/questdeck-backend/internal/repository"
	"github.com/questdeck/questdeck-backend/internal/types"
)

// AccessService is the authorization gate for campaign-scoped operations.
// Every handler path that touches a campaign resolves the caller's
// membership here before doing anything else. Non-members get ErrForbidden
// regardless of whether the campaign exists, so campaign IDs cannot be
// probed.
type AccessService interface {
	// Require resolves the caller's membership and checks it carries at
	// least minRole. Returns the membership on success.
	Require(ctx context.Context, campaignID, accountID, minRole string) (*repository.Membership, error)

	// Membership resolves the caller's membership without a role check.
	// Returns ErrForbidden when the caller is not a member.
	Membership(ctx context.Context, campaignID, accountID string) (*repository.Membership, error)

	// CampaignForMember returns the campaign only when the caller is a
	// member of it.
	CampaignForMember(ctx context.Context, campaignID, accountID string) (*repository.Campaign, error)
}

type accessService struct {
	campaignRepo   repository.CampaignRepository
	membershipRepo repository.MembershipRepository
}

func NewAccessService(campaignRepo repository.CampaignRepository, membershipRepo repository.MembershipRepository) AccessService {
	return &accessService{
		campaignRepo:   campaignRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *accessService) Membership(ctx context.Context, campaignID, accountID string) (*repository.Membership, error) {
	if campaignID == "" || accountID == "" {
		return nil, ErrForbidden
	}
	member, err := s.membershipRepo.FindByAccount(ctx, campaignID, accountID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrForbidden
	}
	return member, nil
}

func (s *accessService) Require(ctx context.Context, campaignID, accountID, minRole string) (*repository.Membership, error) {
	member, err := s.Membership(ctx, campaignID, accountID)
	if err != nil {
		return nil, err
	}
	if !types.RoleAtLeast(member.Role, minRole) {
		return nil, ErrForbidden
	}
	return member, nil
}

func (s *accessService) CampaignForMember(ctx context.Context, campaignID, accountID string) (*repository.Campaign, error) {
	if _, err := s.Membership(ctx, campaignID, accountID); err != nil {
		return nil, err
	}
	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrNotFound
	}
	return campaign, nil
}
