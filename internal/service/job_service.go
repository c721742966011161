package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/questdeck/questdeck-backend/internal/db"
	"github.com/questdeck/questdeck-backend/internal/genai"
	"github.com/questdeck/questdeck-backend/internal/repository"
	"github.com/questdeck/questdeck-backend/internal/socket"
	"github.com/questdeck/questdeck-backend/internal/types"
)

// GenerateJobInput narrows the campaign context used to prompt the
// generator. Organization and mission type are optional.
type GenerateJobInput struct {
	OrganizationID *string
	MissionTypeID  *string
	Prompt         string
}

type JobService interface {
	// Generate asks the external generation service for a job posting and
	// persists the result.
	Generate(ctx context.Context, campaignID, actorID string, input *GenerateJobInput) (*repository.Job, error)
	List(ctx context.Context, campaignID, accountID, status string) ([]*repository.Job, error)
	Get(ctx context.Context, campaignID, accountID, jobID string) (*repository.Job, error)
	UpdateStatus(ctx context.Context, campaignID, actorID, jobID, status string) (*repository.Job, error)
	Delete(ctx context.Context, campaignID, actorID, jobID string) error
}

type jobService struct {
	jobRepo      repository.JobRepository
	orgRepo      repository.OrganizationRepository
	missionRepo  repository.MissionTypeRepository
	campaignRepo repository.CampaignRepository
	access       AccessService
	generator    genai.JobGenerator
	broadcaster  socket.Broadcaster
	cache        *db.RedisDB
}

func NewJobService(
	jobRepo repository.JobRepository,
	orgRepo repository.OrganizationRepository,
	missionRepo repository.MissionTypeRepository,
	campaignRepo repository.CampaignRepository,
	access AccessService,
	generator genai.JobGenerator,
	broadcaster socket.Broadcaster,
	cache *db.RedisDB,
) JobService {
	return &jobService{
		jobRepo:      jobRepo,
		orgRepo:      orgRepo,
		missionRepo:  missionRepo,
		campaignRepo: campaignRepo,
		access:       access,
		generator:    generator,
		broadcaster:  broadcaster,
		cache:        cache,
	}
}

func tallyCacheKey(campaignID string) string {
	return fmt.Sprintf("poll:tally:%s", campaignID)
}

func (s *jobService) Generate(ctx context.Context, campaignID, actorID string, input *GenerateJobInput) (*repository.Job, error) {
	if s.generator == nil {
		return nil, ErrGeneratorFailed
	}
	if _, err := s.access.Require(ctx, campaignID, actorID, types.RoleCoGM); err != nil {
		return nil, err
	}

	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrNotFound
	}

	req := &genai.GenerateRequest{
		CampaignName: campaign.Name,
		Prompt:       strings.TrimSpace(input.Prompt),
	}
	if campaign.GameSystem != nil {
		req.GameSystem = *campaign.GameSystem
	}

	if input.OrganizationID != nil {
		org, err := s.orgRepo.FindByID(ctx, campaignID, *input.OrganizationID)
		if err != nil {
			return nil, err
		}
		if org == nil {
			return nil, ErrNotFound
		}
		req.Organization = org.Name
	}
	if input.MissionTypeID != nil {
		mt, err := s.missionRepo.FindByID(ctx, campaignID, *input.MissionTypeID)
		if err != nil {
			return nil, err
		}
		if mt == nil {
			return nil, ErrNotFound
		}
		req.MissionType = mt.Name
	}

	generated, err := s.generator.Generate(ctx, req)
	if err != nil {
		log.Printf("[Job] Generation failed for campaign %s: %v", campaignID, err)
		return nil, ErrGeneratorFailed
	}

	job := &repository.Job{
		CampaignID:     campaignID,
		OrganizationID: input.OrganizationID,
		MissionTypeID:  input.MissionTypeID,
		Title:          generated.Title,
		Body:           generated.Body,
		CreatedBy:      actorID,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	if campaign.PollToken != nil {
		s.broadcaster.JobPosted(*campaign.PollToken, job.ID, job.Title)
	}
	return job, nil
}

func (s *jobService) List(ctx context.Context, campaignID, accountID, status string) ([]*repository.Job, error) {
	if _, err := s.access.Membership(ctx, campaignID, accountID); err != nil {
		return nil, err
	}
	if status != "" && !types.IsValidJobStatus(status) {
		return nil, ErrInvalidInput
	}
	return s.jobRepo.FindByCampaign(ctx, campaignID, status)
}

func (s *jobService) Get(ctx context.Context, campaignID, accountID, jobID string) (*repository.Job, error) {
	if _, err := s.access.Membership(ctx, campaignID, accountID); err != nil {
		return nil, err
	}
	job, err := s.jobRepo.FindByID(ctx, campaignID, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrNotFound
	}
	return job, nil
}

func (s *jobService) UpdateStatus(ctx context.Context, campaignID, actorID, jobID, status string) (*repository.Job, error) {
	if !types.IsValidJobStatus(status) {
		return nil, ErrInvalidInput
	}
	if _, err := s.access.Require(ctx, campaignID, actorID, types.RoleCoGM); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.FindByID(ctx, campaignID, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, ErrNotFound
	}

	if err := s.jobRepo.UpdateStatus(ctx, job.ID, status); err != nil {
		return nil, err
	}
	job.Status = status

	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err == nil && campaign != nil && campaign.PollToken != nil {
		s.broadcaster.JobStatusChanged(*campaign.PollToken, job.ID, status)
	}
	return job, nil
}

func (s *jobService) Delete(ctx context.Context, campaignID, actorID, jobID string) error {
	if _, err := s.access.Require(ctx, campaignID, actorID, types.RoleCoGM); err != nil {
		return err
	}

	job, err := s.jobRepo.FindByID(ctx, campaignID, jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return ErrNotFound
	}

	if err := s.jobRepo.Delete(ctx, job.ID); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.DeleteCache(ctx, tallyCacheKey(campaignID))
	}
	return nil
}
