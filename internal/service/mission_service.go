package service

import (
	"context"
	"strings"

	"github.com/questdeck/questdeck-backend/internal/repository"
	"github.com/questdeck/questdeck-backend/internal/types"
)

type MissionTypeService interface {
	Create(ctx context.Context, campaignID, actorID, name string, description *string) (*repository.MissionType, error)
	List(ctx context.Context, campaignID, accountID string) ([]*repository.MissionType, error)
	Delete(ctx context.Context, campaignID, actorID, missionTypeID string) error
}

type missionTypeService struct {
	missionRepo repository.MissionTypeRepository
	access      AccessService
}

func NewMissionTypeService(missionRepo repository.MissionTypeRepository, access AccessService) MissionTypeService {
	return &missionTypeService{missionRepo: missionRepo, access: access}
}

func (s *missionTypeService) Create(ctx context.Context, campaignID, actorID, name string, description *string) (*repository.MissionType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.access.Require(ctx, campaignID, actorID, types.RoleCoGM); err != nil {
		return nil, err
	}

	mt := &repository.MissionType{
		CampaignID:  campaignID,
		Name:        name,
		Description: description,
	}
	if err := s.missionRepo.Create(ctx, mt); err != nil {
		return nil, err
	}
	return mt, nil
}

func (s *missionTypeService) List(ctx context.Context, campaignID, accountID string) ([]*repository.MissionType, error) {
	if _, err := s.access.Membership(ctx, campaignID, accountID); err != nil {
		return nil, err
	}
	return s.missionRepo.FindByCampaign(ctx, campaignID)
}

func (s *missionTypeService) Delete(ctx context.Context, campaignID, actorID, missionTypeID string) error {
	if _, err := s.access.Require(ctx, campaignID, actorID, types.RoleCoGM); err != nil {
		return err
	}

	mt, err := s.missionRepo.FindByID(ctx, campaignID, missionTypeID)
	if err != nil {
		return err
	}
	if mt == nil {
		return ErrNotFound
	}

	return s.missionRepo.Delete(ctx, mt.ID)
}
