package cron

import (
	"context"
	"log"
	"time"

	"github.com/questdeck/questdeck-backend/internal/repository"
	"github.com/robfig/cron/v3"
)

// Invitations stay resendable for a while after expiry; only rows expired
// longer than this are pruned.
const expiredInvitationGrace = 90 * 24 * time.Hour

// Scheduler handles scheduled maintenance tasks
type Scheduler struct {
	cron           *cron.Cron
	invitationRepo repository.InvitationRepository
	linkRepo       repository.InviteLinkRepository
}

// NewScheduler creates a new scheduler
func NewScheduler(invitationRepo repository.InvitationRepository, linkRepo repository.InviteLinkRepository) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		invitationRepo: invitationRepo,
		linkRepo:       linkRepo,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	// Run every day at 3 AM - prune long-expired invitations
	s.cron.AddFunc("0 3 * * *", func() {
		log.Println("[Cron] Running expired invitation cleanup...")
		s.pruneExpiredInvitations()
	})

	// Run every hour - deactivate exhausted invite links
	s.cron.AddFunc("0 * * * *", func() {
		log.Println("[Cron] Running invite link exhaustion sweep...")
		s.deactivateExhaustedLinks()
	})

	s.cron.Start()
	log.Println("[Cron] Scheduler started")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[Cron] Scheduler stopped")
}

func (s *Scheduler) pruneExpiredInvitations() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-expiredInvitationGrace)
	deleted, err := s.invitationRepo.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		log.Printf("[Cron] Invitation cleanup failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[Cron] Pruned %d expired invitations", deleted)
	}
}

func (s *Scheduler) deactivateExhaustedLinks() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deactivated, err := s.linkRepo.DeactivateExhausted(ctx)
	if err != nil {
		log.Printf("[Cron] Link exhaustion sweep failed: %v", err)
		return
	}
	if deactivated > 0 {
		log.Printf("[Cron] Deactivated %d exhausted invite links", deactivated)
	}
}
