// internal/seed/seed.go
package seed

import (
	"context"
	"log"
	"time"

	"github.com/questdeck/questdeck-backend/internal/repository"
)

// SeedData populates a development database with a small campaign so the
// frontend has something to render. Safe to run repeatedly: account
// inserts are upserts and the campaign is skipped when the owner already
// has one.
func SeedData(repos *repository.Repositories) {
	ctx := context.Background()

	log.Println("[Seed] Creating development data...")

	// Accounts mirror identities the dev auth provider hands out.
	rhea := &repository.Account{
		ID:          "dev-rhea",
		Email:       "rhea@questdeck.dev",
		DisplayName: "Rhea Moran",
		Role:        "gm",
	}
	repos.AccountRepo.Ensure(ctx, rhea)

	callum := &repository.Account{
		ID:          "dev-callum",
		Email:       "callum@questdeck.dev",
		DisplayName: "Callum Voss",
		Role:        "player",
	}
	repos.AccountRepo.Ensure(ctx, callum)

	existing, err := repos.CampaignRepo.FindByAccountID(ctx, rhea.ID)
	if err != nil {
		log.Printf("[Seed] Lookup failed: %v", err)
		return
	}
	if len(existing) > 0 {
		log.Println("[Seed] Data already exists, skipping...")
		return
	}

	description := "A smuggling crew scraping by on the edge of the Reach."
	system := "Scum and Villainy"
	campaign := &repository.Campaign{
		Name:        "Shadows of the Reach",
		Description: &description,
		GameSystem:  &system,
		OwnerID:     rhea.ID,
	}
	if err := repos.EnrollmentRepo.CreateCampaignWithOwner(ctx, campaign, rhea); err != nil {
		log.Printf("[Seed] Campaign create failed: %v", err)
		return
	}

	repos.MembershipRepo.Create(ctx, &repository.Membership{
		CampaignID: campaign.ID,
		AccountID:  callum.ID,
		Role:       "viewer",
	})

	kind := "criminal syndicate"
	desc := "Runs every dock on the lower rings."
	org := &repository.Organization{
		CampaignID:  campaign.ID,
		Name:        "The Brass Ring",
		Description: &desc,
		Kind:        &kind,
	}
	repos.OrganizationRepo.Create(ctx, org)

	heistDesc := "Get in, grab the goods, get out."
	repos.MissionTypeRepo.Create(ctx, &repository.MissionType{
		CampaignID:  campaign.ID,
		Name:        "Heist",
		Description: &heistDesc,
	})

	repos.JobRepo.Create(ctx, &repository.Job{
		CampaignID:     campaign.ID,
		OrganizationID: &org.ID,
		Title:          "The Customs Vault",
		Body:           "The Brass Ring wants a sealed crate lifted from the customs vault on Dock 7 before the next inspection cycle.",
		CreatedBy:      rhea.ID,
	})

	// A pending invitation so the invite flow is visible in dev.
	repos.InvitationRepo.Create(ctx, &repository.Invitation{
		CampaignID: campaign.ID,
		Email:      "mira@questdeck.dev",
		Role:       "co-gm",
		InvitedBy:  rhea.ID,
		ExpiresAt:  time.Now().Add(30 * 24 * time.Hour),
	})

	log.Println("[Seed] Development data created")
}
