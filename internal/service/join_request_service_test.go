package service

import (
	"context"
	"errors"
	"testing"

	"github.com/questdeck/questdeck-backend/internal/repository"
	"github.com/questdeck/questdeck-backend/internal/types"
)

// pendingRequest walks an account through an approval link so the
// campaign has a pending join request to review.
func pendingRequest(t *testing.T, f *fixture, campaignID, accountID string) *repository.JoinRequest {
	t.Helper()
	link := f.link(t, campaignID, nil, nil, true)
	result, err := f.services.InviteLink.Consume(context.Background(), link.Token, f.account(accountID, accountID+"@example.com"))
	if err != nil {
		t.Fatalf("consume approval link: %v", err)
	}
	return result.Request
}

func TestReviewJoinRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("approve grants viewer membership", func(t *testing.T) {
		f := newFixture()
		campaign := f.campaign(t, "gm-1")
		request := pendingRequest(t, f, campaign.ID, "ally-1")

		reviewed, err := f.services.JoinRequest.Review(ctx, campaign.ID, "gm-1", request.ID, types.ReviewActionApprove)
		if err != nil {
			t.Fatalf("Review: %v", err)
		}
		if reviewed.Status != types.JoinRequestApproved {
			t.Errorf("status = %q, want approved", reviewed.Status)
		}
		if reviewed.ReviewedBy == nil || *reviewed.ReviewedBy != "gm-1" {
			t.Errorf("reviewed by = %v, want gm-1", reviewed.ReviewedBy)
		}
		m := f.membershipOf(campaign.ID, "ally-1")
		if m == nil || m.Role != types.RoleViewer {
			t.Fatalf("membership = %+v, want viewer", m)
		}
	})

	t.Run("reject leaves no membership", func(t *testing.T) {
		f := newFixture()
		campaign := f.campaign(t, "gm-1")
		request := pendingRequest(t, f, campaign.ID, "ally-1")

		reviewed, err := f.services.JoinRequest.Review(ctx, campaign.ID, "gm-1", request.ID, types.ReviewActionReject)
		if err != nil {
			t.Fatalf("Review: %v", err)
		}
		if reviewed.Status != types.JoinRequestRejected {
			t.Errorf("status = %q, want rejected", reviewed.Status)
		}
		if f.membershipOf(campaign.ID, "ally-1") != nil {
			t.Error("rejected request produced a membership")
		}
	})

	t.Run("second review fails", func(t *testing.T) {
		f := newFixture()
		campaign := f.campaign(t, "gm-1")
		request := pendingRequest(t, f, campaign.ID, "ally-1")

		if _, err := f.services.JoinRequest.Review(ctx, campaign.ID, "gm-1", request.ID, types.ReviewActionApprove); err != nil {
			t.Fatalf("first Review: %v", err)
		}
		_, err := f.services.JoinRequest.Review(ctx, campaign.ID, "gm-1", request.ID, types.ReviewActionReject)
		if !errors.Is(err, ErrAlreadyReviewed) {
			t.Fatalf("err = %v, want ErrAlreadyReviewed", err)
		}
	})

	t.Run("invalid action", func(t *testing.T) {
		f := newFixture()
		campaign := f.campaign(t, "gm-1")
		request := pendingRequest(t, f, campaign.ID, "ally-1")

		_, err := f.services.JoinRequest.Review(ctx, campaign.ID, "gm-1", request.ID, "defer")
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("err = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("co-gm cannot review", func(t *testing.T) {
		f := newFixture()
		campaign := f.campaign(t, "gm-1")
		f.store.insertMembership(campaign.ID, "cogm-1", types.RoleCoGM)
		request := pendingRequest(t, f, campaign.ID, "ally-1")

		_, err := f.services.JoinRequest.Review(ctx, campaign.ID, "cogm-1", request.ID, types.ReviewActionApprove)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newFixture()
		campaign := f.campaign(t, "gm-1")

		_, err := f.services.JoinRequest.Review(ctx, campaign.ID, "gm-1", "no-such-request", types.ReviewActionApprove)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestListJoinRequestsOwnerOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	campaign := f.campaign(t, "gm-1")
	f.store.insertMembership(campaign.ID, "cogm-1", types.RoleCoGM)
	pendingRequest(t, f, campaign.ID, "ally-1")

	requests, err := f.services.JoinRequest.List(ctx, campaign.ID, "gm-1")
	if err != nil {
		t.Fatalf("List as owner: %v", err)
	}
	if len(requests) != 1 {
		t.Errorf("len(requests) = %d, want 1", len(requests))
	}

	if _, err := f.services.JoinRequest.List(ctx, campaign.ID, "cogm-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("List as co-gm: err = %v, want ErrForbidden", err)
	}
}
