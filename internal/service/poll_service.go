package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/questdeck/questdeck-backend/internal/db"
	"github.com/questdeck/questdeck-backend/internal/repository"
	"github.com/questdeck/questdeck-backend/internal/socket"
	"github.com/questdeck/questdeck-backend/internal/types"
)

const tallyCacheTTL = 30 * time.Second

// PollView is the public poll page payload: the campaign's open jobs and
// their current vote counts. No account data is exposed.
type PollView struct {
	CampaignName string
	Jobs         []*repository.Job
	Tallies      map[string]int
}

type PollService interface {
	// Open publishes the campaign's job poll under a fresh unguessable
	// token. Opening an already-open poll rotates the token; the old one
	// stops resolving and its live viewers are told the poll closed.
	Open(ctx context.Context, campaignID, actorID string) (*repository.Campaign, error)
	Close(ctx context.Context, campaignID, actorID string) error

	// View renders the public poll page for a token. No authentication.
	View(ctx context.Context, pollToken string) (*PollView, error)

	// Vote records a named vote for a job. A repeat vote by the same name
	// succeeds without double-counting.
	Vote(ctx context.Context, pollToken, jobID, voterName string) (int, error)

	// IsLive reports whether a poll token refers to an open poll.
	IsLive(ctx context.Context, pollToken string) (bool, error)
}

type pollService struct {
	campaignRepo repository.CampaignRepository
	jobRepo      repository.JobRepository
	voteRepo     repository.VoteRepository
	access       AccessService
	broadcaster  socket.Broadcaster
	cache        *db.RedisDB
}

func NewPollService(
	campaignRepo repository.CampaignRepository,
	jobRepo repository.JobRepository,
	voteRepo repository.VoteRepository,
	access AccessService,
	broadcaster socket.Broadcaster,
	cache *db.RedisDB,
) PollService {
	return &pollService{
		campaignRepo: campaignRepo,
		jobRepo:      jobRepo,
		voteRepo:     voteRepo,
		access:       access,
		broadcaster:  broadcaster,
		cache:        cache,
	}
}

func (s *pollService) Open(ctx context.Context, campaignID, actorID string) (*repository.Campaign, error) {
	if _, err := s.access.Require(ctx, campaignID, actorID, types.RoleOwner); err != nil {
		return nil, err
	}

	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrNotFound
	}
	old := campaign.PollToken

	token := uuid.New().String()
	if err := s.campaignRepo.SetPollToken(ctx, campaignID, &token); err != nil {
		return nil, err
	}
	campaign.PollToken = &token
	if old != nil {
		s.broadcaster.PollClosed(*old)
	}
	return campaign, nil
}

func (s *pollService) Close(ctx context.Context, campaignID, actorID string) error {
	if _, err := s.access.Require(ctx, campaignID, actorID, types.RoleOwner); err != nil {
		return err
	}

	campaign, err := s.campaignRepo.FindByID(ctx, campaignID)
	if err != nil {
		return err
	}
	if campaign == nil {
		return ErrNotFound
	}
	if campaign.PollToken == nil {
		return nil
	}

	token := *campaign.PollToken
	if err := s.campaignRepo.SetPollToken(ctx, campaignID, nil); err != nil {
		return err
	}
	s.broadcaster.PollClosed(token)
	if s.cache != nil {
		s.cache.DeleteCache(ctx, tallyCacheKey(campaignID))
	}
	return nil
}

func (s *pollService) View(ctx context.Context, pollToken string) (*PollView, error) {
	campaign, err := s.liveCampaign(ctx, pollToken)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobRepo.FindByCampaign(ctx, campaign.ID, types.JobOpen)
	if err != nil {
		return nil, err
	}

	tallies, err := s.tallies(ctx, campaign.ID)
	if err != nil {
		return nil, err
	}

	return &PollView{
		CampaignName: campaign.Name,
		Jobs:         jobs,
		Tallies:      tallies,
	}, nil
}

func (s *pollService) Vote(ctx context.Context, pollToken, jobID, voterName string) (int, error) {
	voterName = strings.TrimSpace(voterName)
	if voterName == "" || jobID == "" {
		return 0, ErrInvalidInput
	}

	campaign, err := s.liveCampaign(ctx, pollToken)
	if err != nil {
		return 0, err
	}

	job, err := s.jobRepo.FindByID(ctx, campaign.ID, jobID)
	if err != nil {
		return 0, err
	}
	if job == nil || job.Status != types.JobOpen {
		return 0, ErrNotFound
	}

	created, err := s.voteRepo.Cast(ctx, &repository.JobVote{
		CampaignID: campaign.ID,
		JobID:      jobID,
		VoterName:  voterName,
	})
	if err != nil {
		return 0, err
	}

	if created {
		if s.cache != nil {
			s.cache.DeleteCache(ctx, tallyCacheKey(campaign.ID))
		}
		votes := job.VoteCount + 1
		s.broadcaster.TallyUpdated(pollToken, jobID, votes)
		return votes, nil
	}
	return job.VoteCount, nil
}

func (s *pollService) IsLive(ctx context.Context, pollToken string) (bool, error) {
	campaign, err := s.campaignRepo.FindByPollToken(ctx, pollToken)
	if err != nil {
		return false, err
	}
	return campaign != nil, nil
}

func (s *pollService) liveCampaign(ctx context.Context, pollToken string) (*repository.Campaign, error) {
	if pollToken == "" {
		return nil, ErrNotFound
	}
	campaign, err := s.campaignRepo.FindByPollToken(ctx, pollToken)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrNotFound
	}
	return campaign, nil
}

func (s *pollService) tallies(ctx context.Context, campaignID string) (map[string]int, error) {
	key := tallyCacheKey(campaignID)

	if s.cache != nil {
		var cached map[string]int
		if err := s.cache.GetCache(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	rows, err := s.voteRepo.TallyByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	tallies := make(map[string]int, len(rows))
	for _, row := range rows {
		tallies[row.JobID] = row.Votes
	}

	if s.cache != nil {
		if err := s.cache.SetCache(ctx, key, tallies, tallyCacheTTL); err != nil {
			log.Printf("[Poll] Failed to cache tallies for campaign %s: %v", campaignID, err)
		}
	}
	return tallies, nil
}
