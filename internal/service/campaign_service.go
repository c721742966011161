package service

import (
	"context"
	"strings"

	"github.com/questdeck/questdeck-backend/internal/repository"
	"github.com/questdeck/questdeck-backend/internal/types"
)

type CampaignService interface {
	// Create inserts the campaign and its owner membership together.
	Create(ctx context.Context, owner *repository.Account, name string, description, gameSystem *string) (*repository.Campaign, error)
	Get(ctx context.Context, campaignID, accountID string) (*repository.Campaign, error)
	ListForAccount(ctx context.Context, accountID string) ([]*repository.Campaign, error)
	Update(ctx context.Context, campaignID, accountID string, name *string, description, gameSystem *string) (*repository.Campaign, error)
	Delete(ctx context.Context, campaignID, accountID string) error
}

type campaignService struct {
	campaignRepo   repository.CampaignRepository
	enrollmentRepo repository.EnrollmentRepository
	access         AccessService
}

func NewCampaignService(
	campaignRepo repository.CampaignRepository,
	enrollmentRepo repository.EnrollmentRepository,
	access AccessService,
) CampaignService {
	return &campaignService{
		campaignRepo:   campaignRepo,
		enrollmentRepo: enrollmentRepo,
		access:         access,
	}
}

func (s *campaignService) Create(ctx context.Context, owner *repository.Account, name string, description, gameSystem *string) (*repository.Campaign, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	campaign := &repository.Campaign{
		Name:        name,
		Description: description,
		GameSystem:  gameSystem,
		OwnerID:     owner.ID,
	}
	if err := s.enrollmentRepo.CreateCampaignWithOwner(ctx, campaign, owner); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *campaignService) Get(ctx context.Context, campaignID, accountID string) (*repository.Campaign, error) {
	return s.access.CampaignForMember(ctx, campaignID, accountID)
}

func (s *campaignService) ListForAccount(ctx context.Context, accountID string) ([]*repository.Campaign, error) {
	return s.campaignRepo.FindByAccountID(ctx, accountID)
}

func (s *campaignService) Update(ctx context.Context, campaignID, accountID string, name *string, description, gameSystem *string) (*repository.Campaign, error) {
	if _, err := s.access.Require(ctx, campaignID, accountID, types.RoleCoGM); err != nil {
		return nil, err
	}

	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrNotFound
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, ErrInvalidInput
		}
		campaign.Name = trimmed
	}
	if description != nil {
		campaign.Description = description
	}
	if gameSystem != nil {
		campaign.GameSystem = gameSystem
	}

	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *campaignService) Delete(ctx context.Context, campaignID, accountID string) error {
	if _, err := s.access.Require(ctx, campaignID, accountID, types.RoleOwner); err != nil {
		return err
	}
	return s.campaignRepo.Delete(ctx, campaignID)
}
