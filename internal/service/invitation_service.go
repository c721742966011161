package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/questdeck/questdeck-backend/internal/email"
	"github.com/questdeck/questdeck-backend/internal/repository"
	"github.com/questdeck/questdeck-backend/internal/types"
)

const invitationTTL = 30 * 24 * time.Hour

// AddMemberResult is the outcome of AddMemberByEmail: exactly one of
// Member or Invitation is set.
type AddMemberResult struct {
	Member     *repository.Membership
	Invitation *repository.Invitation
}

type InvitationService interface {
	// AddMemberByEmail adds the account with the given email directly when
	// it exists in the directory, and falls back to creating a direct
	// invitation when it does not.
	AddMemberByEmail(ctx context.Context, campaignID, actorID, emailAddr, role string) (*AddMemberResult, error)

	ListPending(ctx context.Context, campaignID, accountID string) ([]*repository.Invitation, error)

	// Resend re-sends the notification and unconditionally extends expiry
	// to 30 days from now. An expired invitation is revived.
	Resend(ctx context.Context, campaignID, actorID, invitationID string) (*repository.Invitation, error)

	// Revoke hard-deletes the invitation.
	Revoke(ctx context.Context, campaignID, actorID, invitationID string) error

	// Accept consumes the invitation for the authenticated account. A
	// second accept of an already-accepted invitation succeeds without
	// mutating anything.
	Accept(ctx context.Context, token string, account *repository.Account) error
}

type invitationService struct {
	invitationRepo repository.InvitationRepository
	membershipRepo repository.MembershipRepository
	accountRepo    repository.AccountRepository
	enrollmentRepo repository.EnrollmentRepository
	access         AccessService
	emailSvc       *email.Service
}

func NewInvitationService(
	invitationRepo repository.InvitationRepository,
	membershipRepo repository.MembershipRepository,
	accountRepo repository.AccountRepository,
	enrollmentRepo repository.EnrollmentRepository,
	access AccessService,
	emailSvc *email.Service,
) InvitationService {
	return &invitationService{
		invitationRepo: invitationRepo,
		membershipRepo: membershipRepo,
		accountRepo:    accountRepo,
		enrollmentRepo: enrollmentRepo,
		access:         access,
		emailSvc:       emailSvc,
	}
}

func (s *invitationService) AddMemberByEmail(ctx context.Context, campaignID, actorID, emailAddr, role string) (*AddMemberResult, error) {
	emailAddr = strings.TrimSpace(emailAddr)
	if emailAddr == "" || !types.IsAssignableRole(role) {
		return nil, ErrInvalidInput
	}

	actor, err := s.access.Require(ctx, campaignID, actorID, types.RoleOwner)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}

	if account != nil {
		created, err := s.membershipRepo.Create(ctx, &repository.Membership{
			CampaignID: campaignID,
			AccountID:  account.ID,
			Role:       role,
		})
		if err != nil {
			return nil, err
		}
		if !created {
			return nil, ErrAlreadyMember
		}
		member, err := s.membershipRepo.FindByAccount(ctx, campaignID, account.ID)
		if err != nil {
			return nil, err
		}
		return &AddMemberResult{Member: member}, nil
	}

	invitation := &repository.Invitation{
		CampaignID: campaignID,
		Email:      emailAddr,
		Role:       role,
		InvitedBy:  actorID,
		ExpiresAt:  time.Now().Add(invitationTTL),
	}
	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		return nil, err
	}

	s.notify(ctx, campaignID, actorID, invitation, actorDisplayName(actor))
	return &AddMemberResult{Invitation: invitation}, nil
}

func (s *invitationService) ListPending(ctx context.Context, campaignID, accountID string) ([]*repository.Invitation, error) {
	if _, err := s.access.Membership(ctx, campaignID, accountID); err != nil {
		return nil, err
	}
	return s.invitationRepo.FindPendingByCampaign(ctx, campaignID)
}

func (s *invitationService) Resend(ctx context.Context, campaignID, actorID, invitationID string) (*repository.Invitation, error) {
	actor, err := s.access.Require(ctx, campaignID, actorID, types.RoleOwner)
	if err != nil {
		return nil, err
	}

	invitation, err := s.invitationRepo.FindByID(ctx, campaignID, invitationID)
	if err != nil {
		return nil, err
	}
	if invitation == nil {
		return nil, ErrNotFound
	}

	// Expiry extension is unconditional; an expired invitation comes
	// back to life here.
	invitation.ExpiresAt = time.Now().Add(invitationTTL)
	if err := s.invitationRepo.ExtendExpiry(ctx, invitation.ID, invitation.ExpiresAt); err != nil {
		return nil, err
	}

	s.notify(ctx, campaignID, actorID, invitation, actorDisplayName(actor))
	return invitation, nil
}

func (s *invitationService) Revoke(ctx context.Context, campaignID, actorID, invitationID string) error {
	if _, err := s.access.Require(ctx, campaignID, actorID, types.RoleOwner); err != nil {
		return err
	}

	invitation, err := s.invitationRepo.FindByID(ctx, campaignID, invitationID)
	if err != nil {
		return err
	}
	if invitation == nil {
		return ErrNotFound
	}

	return s.invitationRepo.Delete(ctx, invitation.ID)
}

func (s *invitationService) Accept(ctx context.Context, token string, account *repository.Account) error {
	if token == "" || account == nil || account.ID == "" {
		return ErrInvalidInput
	}

	invitation, err := s.invitationRepo.FindByToken(ctx, token)
	if err != nil {
		return err
	}
	if invitation == nil {
		return ErrNotFound
	}

	// The match is against the authenticated identity's email, exact.
	if invitation.Email != account.Email {
		return ErrEmailMismatch
	}
	if invitation.Accepted {
		return nil
	}
	if invitation.ExpiresAt.Before(time.Now()) {
		return ErrInvitationExpired
	}

	if account.DisplayName == "" {
		account.DisplayName = emailLocalPart(account.Email)
	}

	_, err = s.enrollmentRepo.AcceptInvitation(ctx, invitation, account)
	return err
}

// notify sends the invitation email without blocking or failing the
// request.
func (s *invitationService) notify(ctx context.Context, campaignID, actorID string, invitation *repository.Invitation, inviterName string) {
	if s.emailSvc == nil {
		return
	}

	campaign, err := s.access.CampaignForMember(ctx, campaignID, actorID)
	if err != nil || campaign == nil {
		log.Printf("[Invitation] Could not load campaign %s for notification: %v", campaignID, err)
		return
	}

	go func(name, to, role, token string) {
		if err := s.emailSvc.SendInvitation(name, to, inviterName, role, token); err != nil {
			log.Printf("[Invitation] Failed to send invitation email to %s: %v", to, err)
		}
	}(campaign.Name, invitation.Email, invitation.Role, invitation.Token)
}

func actorDisplayName(member *repository.Membership) string {
	if member != nil && member.Account != nil {
		return member.Account.DisplayName
	}
	return ""
}

func emailLocalPart(emailAddr string) string {
	if i := strings.Index(emailAddr, "@"); i > 0 {
		return emailAddr[:i]
	}
	return emailAddr
}
