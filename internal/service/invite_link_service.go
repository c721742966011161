package service

import (
	"context"
	"errors"
	"time"

	"github.com/questdeck/questdeck-backend/internal/repository"
	"github.com/questdeck/questdeck-backend/internal/types"
)

// ConsumeResult is the outcome of consuming an invite link: either an
// immediate membership or a join request awaiting review. Existing is
// true when a previously filed pending request was returned instead of
// a new one.
type ConsumeResult struct {
	Member   *repository.Membership
	Request  *repository.JoinRequest
	Existing bool
}

type InviteLinkService interface {
	Create(ctx context.Context, campaignID, actorID string, expiresAt *time.Time, maxUses *int, requireApproval bool) (*repository.InviteLink, error)
	List(ctx context.Context, campaignID, accountID string) ([]*repository.InviteLink, error)
	Revoke(ctx context.Context, campaignID, actorID, linkID string) error

	// Consume joins the authenticated account through the link, either
	// immediately or by filing a join request when the link requires
	// approval. A repeat attempt while a request is pending returns the
	// existing request without burning a use.
	Consume(ctx context.Context, token string, account *repository.Account) (*ConsumeResult, error)
}

type inviteLinkService struct {
	linkRepo        repository.InviteLinkRepository
	membershipRepo  repository.MembershipRepository
	joinRequestRepo repository.JoinRequestRepository
	enrollmentRepo  repository.EnrollmentRepository
	access          AccessService
}

func NewInviteLinkService(
	linkRepo repository.InviteLinkRepository,
	membershipRepo repository.MembershipRepository,
	joinRequestRepo repository.JoinRequestRepository,
	enrollmentRepo repository.EnrollmentRepository,
	access AccessService,
) InviteLinkService {
	return &inviteLinkService{
		linkRepo:        linkRepo,
		membershipRepo:  membershipRepo,
		joinRequestRepo: joinRequestRepo,
		enrollmentRepo:  enrollmentRepo,
		access:          access,
	}
}

func (s *inviteLinkService) Create(ctx context.Context, campaignID, actorID string, expiresAt *time.Time, maxUses *int, requireApproval bool) (*repository.InviteLink, error) {
	if _, err := s.access.Require(ctx, campaignID, actorID, types.RoleOwner); err != nil {
		return nil, err
	}

	if expiresAt != nil && !expiresAt.After(time.Now()) {
		return nil, ErrInvalidInput
	}
	if maxUses != nil && *maxUses < 1 {
		return nil, ErrInvalidInput
	}

	link := &repository.InviteLink{
		CampaignID:      campaignID,
		CreatedBy:       actorID,
		ExpiresAt:       expiresAt,
		MaxUses:         maxUses,
		RequireApproval: requireApproval,
	}
	if err := s.linkRepo.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *inviteLinkService) List(ctx context.Context, campaignID, accountID string) ([]*repository.InviteLink, error) {
	if _, err := s.access.Membership(ctx, campaignID, accountID); err != nil {
		return nil, err
	}
	return s.linkRepo.FindByCampaign(ctx, campaignID)
}

func (s *inviteLinkService) Revoke(ctx context.Context, campaignID, actorID, linkID string) error {
	if _, err := s.access.Require(ctx, campaignID, actorID, types.RoleOwner); err != nil {
		return err
	}

	link, err := s.linkRepo.FindByID(ctx, campaignID, linkID)
	if err != nil {
		return err
	}
	if link == nil {
		return ErrNotFound
	}

	return s.linkRepo.Revoke(ctx, link.ID, actorID)
}

func (s *inviteLinkService) Consume(ctx context.Context, token string, account *repository.Account) (*ConsumeResult, error) {
	if token == "" || account == nil || account.ID == "" {
		return nil, ErrInvalidInput
	}

	link, err := s.linkRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrNotFound
	}
	if err := linkUsableError(link, time.Now()); err != nil {
		return nil, err
	}

	member, err := s.membershipRepo.FindByAccount(ctx, link.CampaignID, account.ID)
	if err != nil {
		return nil, err
	}
	if member != nil {
		return nil, ErrAlreadyMember
	}

	if account.DisplayName == "" {
		account.DisplayName = emailLocalPart(account.Email)
	}

	if !link.RequireApproval {
		joined, err := s.enrollmentRepo.ConsumeLinkDirect(ctx, link, account)
		if err != nil {
			return nil, s.classifyBurnError(ctx, link.CampaignID, link.ID, err)
		}
		if !joined {
			return nil, ErrAlreadyMember
		}
		member, err := s.membershipRepo.FindByAccount(ctx, link.CampaignID, account.ID)
		if err != nil {
			return nil, err
		}
		return &ConsumeResult{Member: member}, nil
	}

	// A prior request decides the outcome before any use is burned: a
	// pending one is simply returned again, a rejected one is a lockout.
	existing, err := s.joinRequestRepo.FindByAccount(ctx, link.CampaignID, account.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status == types.JoinRequestRejected {
			return nil, ErrRequestRejected
		}
		return &ConsumeResult{Request: existing, Existing: true}, nil
	}

	request, created, err := s.enrollmentRepo.ConsumeLinkRequest(ctx, link, account)
	if err != nil {
		return nil, s.classifyBurnError(ctx, link.CampaignID, link.ID, err)
	}
	if !created {
		// Lost a race with a concurrent submission; hand back whatever
		// request won.
		existing, err := s.joinRequestRepo.FindByAccount(ctx, link.CampaignID, account.ID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		if existing.Status == types.JoinRequestRejected {
			return nil, ErrRequestRejected
		}
		return &ConsumeResult{Request: existing, Existing: true}, nil
	}

	return &ConsumeResult{Request: request}, nil
}

// classifyBurnError re-reads the link after a failed burn so a race loss
// reports the same reason a fresh attempt would see.
func (s *inviteLinkService) classifyBurnError(ctx context.Context, campaignID, linkID string, err error) error {
	if !errors.Is(err, repository.ErrLinkNotUsable) {
		return err
	}
	link, lookupErr := s.linkRepo.FindByID(ctx, campaignID, linkID)
	if lookupErr != nil || link == nil {
		return ErrNotFound
	}
	if usableErr := linkUsableError(link, time.Now()); usableErr != nil {
		return usableErr
	}
	return ErrMaxUsesReached
}

func linkUsableError(link *repository.InviteLink, now time.Time) error {
	if !link.IsActive {
		return ErrLinkRevoked
	}
	if link.ExpiresAt != nil && !link.ExpiresAt.After(now) {
		return ErrLinkExpired
	}
	if link.MaxUses != nil && link.UseCount >= *link.MaxUses {
		return ErrMaxUsesReached
	}
	return nil
}
