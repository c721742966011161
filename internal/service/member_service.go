package service

import (
	"context"

	"github.com/questdeck/questdeck-backend/internal/repository"
	"github.com/questdeck/questdeck-backend/internal/types"
)

type MemberService interface {
	List(ctx context.Context, campaignID, accountID string) ([]*repository.Membership, error)

	// ChangeRole assigns co-gm or viewer to a member. The owner membership
	// is immutable.
	ChangeRole(ctx context.Context, campaignID, actorID, memberID, role string) (*repository.Membership, error)

	// Remove deletes a membership. The owner membership cannot be removed.
	Remove(ctx context.Context, campaignID, actorID, memberID string) error

	// Leave removes the caller's own membership. Owners cannot leave their
	// campaign; they delete it or keep it.
	Leave(ctx context.Context, campaignID, accountID string) error

	// UpdateCharacterName sets the caller's character name on their own
	// membership.
	UpdateCharacterName(ctx context.Context, campaignID, accountID string, characterName *string) (*repository.Membership, error)
}

type memberService struct {
	membershipRepo repository.MembershipRepository
	access         AccessService
}

func NewMemberService(membershipRepo repository.MembershipRepository, access AccessService) MemberService {
	return &memberService{
		membershipRepo: membershipRepo,
		access:         access,
	}
}

func (s *memberService) List(ctx context.Context, campaignID, accountID string) ([]*repository.Membership, error) {
	if _, err := s.access.Membership(ctx, campaignID, accountID); err != nil {
		return nil, err
	}
	return s.membershipRepo.FindByCampaign(ctx, campaignID)
}

func (s *memberService) ChangeRole(ctx context.Context, campaignID, actorID, memberID, role string) (*repository.Membership, error) {
	if !types.IsAssignableRole(role) {
		return nil, ErrInvalidInput
	}
	if _, err := s.access.Require(ctx, campaignID, actorID, types.RoleOwner); err != nil {
		return nil, err
	}

	member, err := s.membershipRepo.FindByID(ctx, campaignID, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}
	if member.Role == types.RoleOwner {
		return nil, ErrCannotModifyOwner
	}

	if err := s.membershipRepo.UpdateRole(ctx, member.ID, role); err != nil {
		return nil, err
	}
	member.Role = role
	return member, nil
}

func (s *memberService) Remove(ctx context.Context, campaignID, actorID, memberID string) error {
	if _, err := s.access.Require(ctx, campaignID, actorID, types.RoleOwner); err != nil {
		return err
	}

	member, err := s.membershipRepo.FindByID(ctx, campaignID, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotFound
	}
	if member.Role == types.RoleOwner {
		return ErrCannotRemoveOwner
	}

	return s.membershipRepo.Delete(ctx, member.ID)
}

func (s *memberService) Leave(ctx context.Context, campaignID, accountID string) error {
	member, err := s.access.Membership(ctx, campaignID, accountID)
	if err != nil {
		return err
	}
	if member.Role == types.RoleOwner {
		return ErrCannotRemoveOwner
	}
	return s.membershipRepo.Delete(ctx, member.ID)
}

func (s *memberService) UpdateCharacterName(ctx context.Context, campaignID, accountID string, characterName *string) (*repository.Membership, error) {
	member, err := s.access.Membership(ctx, campaignID, accountID)
	if err != nil {
		return nil, err
	}

	updated, err := s.membershipRepo.UpdateCharacterName(ctx, campaignID, accountID, characterName)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrNotFound
	}
	member.CharacterName = characterName
	return member, nil
}
