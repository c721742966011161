package service

import (
	"context"
	"strings"

	"github.com/questdeck/questdeck-backend/internal/repository"
	"github.com/questdeck/questdeck-backend/internal/types"
)

type OrganizationService interface {
	Create(ctx context.Context, campaignID, actorID, name string, description, kind *string) (*repository.Organization, error)
	List(ctx context.Context, campaignID, accountID string) ([]*repository.Organization, error)
	Update(ctx context.Context, campaignID, actorID, orgID string, name *string, description, kind *string) (*repository.Organization, error)
	Delete(ctx context.Context, campaignID, actorID, orgID string) error
}

type organizationService struct {
	orgRepo repository.OrganizationRepository
	access  AccessService
}

func NewOrganizationService(orgRepo repository.OrganizationRepository, access AccessService) OrganizationService {
	return &organizationService{orgRepo: orgRepo, access: access}
}

func (s *organizationService) Create(ctx context.Context, campaignID, actorID, name string, description, kind *string) (*repository.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.access.Require(ctx, campaignID, actorID, types.RoleCoGM); err != nil {
		return nil, err
	}

	org := &repository.Organization{
		CampaignID:  campaignID,
		Name:        name,
		Description: description,
		Kind:        kind,
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *organizationService) List(ctx context.Context, campaignID, accountID string) ([]*repository.Organization, error) {
	if _, err := s.access.Membership(ctx, campaignID, accountID); err != nil {
		return nil, err
	}
	return s.orgRepo.FindByCampaign(ctx, campaignID)
}

func (s *organizationService) Update(ctx context.Context, campaignID, actorID, orgID string, name *string, description, kind *string) (*repository.Organization, error) {
	if _, err := s.access.Require(ctx, campaignID, actorID, types.RoleCoGM); err != nil {
		return nil, err
	}

	org, err := s.orgRepo.FindByID(ctx, campaignID, orgID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, ErrNotFound
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, ErrInvalidInput
		}
		org.Name = trimmed
	}
	if description != nil {
		org.Description = description
	}
	if kind != nil {
		org.Kind = kind
	}

	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *organizationService) Delete(ctx context.Context, campaignID, actorID, orgID string) error {
	if _, err := s.access.Require(ctx, campaignID, actorID, types.RoleCoGM); err != nil {
		return err
	}

	org, err := s.orgRepo.FindByID(ctx, campaignID, orgID)
	if err != nil {
		return err
	}
	if org == nil {
		return ErrNotFound
	}

	return s.orgRepo.Delete(ctx, org.ID)
}
