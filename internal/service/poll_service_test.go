package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/questdeck/questdeck-backend/internal/genai"
	"github.com/questdeck/questdeck-backend/internal/repository"
	"github.com/questdeck/questdeck-backend/internal/types"
)

type stubGenerator struct {
	lastReq *genai.GenerateRequest
	err     error
}

func (g *stubGenerator) Generate(_ context.Context, req *genai.GenerateRequest) (*genai.GeneratedJob, error) {
	g.lastReq = req
	if g.err != nil {
		return nil, g.err
	}
	return &genai.GeneratedJob{Title: "The Customs Vault", Body: "A heist brief."}, nil
}

type recordingBroadcaster struct {
	mu      sync.Mutex
	tallies []int
	posted  []string
	closed  []string
}

func (b *recordingBroadcaster) TallyUpdated(_, _ string, votes int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tallies = append(b.tallies, votes)
}

func (b *recordingBroadcaster) JobPosted(_, jobID, _ string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.posted = append(b.posted, jobID)
}

func (b *recordingBroadcaster) JobStatusChanged(string, string, string) {}

func (b *recordingBroadcaster) PollClosed(pollToken string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = append(b.closed, pollToken)
}

// openPoll opens the campaign poll and returns its public token.
func openPoll(t *testing.T, f *fixture, campaignID string) string {
	t.Helper()
	campaign, err := f.services.Poll.Open(context.Background(), campaignID, "gm-1")
	if err != nil {
		t.Fatalf("open poll: %v", err)
	}
	return *campaign.PollToken
}

func (f *fixture) openJob(t *testing.T, campaignID, title string) *repository.Job {
	t.Helper()
	job := &repository.Job{CampaignID: campaignID, Title: title, Body: "body", CreatedBy: "gm-1"}
	f.store.mu.Lock()
	job.ID = f.store.nextID("job")
	job.Status = types.JobOpen
	f.store.jobs[job.ID] = job
	f.store.mu.Unlock()
	return job
}

func TestPollOpenClose(t *testing.T) {
	ctx := context.Background()

	t.Run("reopening rotates the token", func(t *testing.T) {
		b := &recordingBroadcaster{}
		f := newFixtureWith(nil, b)
		campaign := f.campaign(t, "gm-1")

		token := openPoll(t, f, campaign.ID)
		if token == "" {
			t.Fatal("poll token is empty")
		}
		again, err := f.services.Poll.Open(ctx, campaign.ID, "gm-1")
		if err != nil {
			t.Fatalf("second Open: %v", err)
		}
		if *again.PollToken == token {
			t.Fatal("second open kept the old token")
		}
		if live, _ := f.services.Poll.IsLive(ctx, token); live {
			t.Error("old token still live after rotation")
		}
		if live, _ := f.services.Poll.IsLive(ctx, *again.PollToken); !live {
			t.Error("rotated token is not live")
		}
		if len(b.closed) != 1 || b.closed[0] != token {
			t.Errorf("closed broadcasts = %v, want [%s]", b.closed, token)
		}
	})

	t.Run("only the owner can open", func(t *testing.T) {
		f := newFixture()
		campaign := f.campaign(t, "gm-1")
		f.store.insertMembership(campaign.ID, "cogm-1", types.RoleCoGM)
		f.store.insertMembership(campaign.ID, "viewer-1", types.RoleViewer)

		for _, actor := range []string{"cogm-1", "viewer-1"} {
			if _, err := f.services.Poll.Open(ctx, campaign.ID, actor); !errors.Is(err, ErrForbidden) {
				t.Errorf("Open as %s: err = %v, want ErrForbidden", actor, err)
			}
			if err := f.services.Poll.Close(ctx, campaign.ID, actor); !errors.Is(err, ErrForbidden) {
				t.Errorf("Close as %s: err = %v, want ErrForbidden", actor, err)
			}
		}
	})

	t.Run("close invalidates the token and notifies viewers", func(t *testing.T) {
		b := &recordingBroadcaster{}
		f := newFixtureWith(nil, b)
		campaign := f.campaign(t, "gm-1")
		token := openPoll(t, f, campaign.ID)

		if err := f.services.Poll.Close(ctx, campaign.ID, "gm-1"); err != nil {
			t.Fatalf("Close: %v", err)
		}
		if live, _ := f.services.Poll.IsLive(ctx, token); live {
			t.Error("poll still live after close")
		}
		if len(b.closed) != 1 || b.closed[0] != token {
			t.Errorf("closed broadcasts = %v, want [%s]", b.closed, token)
		}

		// Closing again is a no-op.
		if err := f.services.Poll.Close(ctx, campaign.ID, "gm-1"); err != nil {
			t.Fatalf("second Close: %v", err)
		}
	})
}

func TestPollViewAndVote(t *testing.T) {
	ctx := context.Background()

	t.Run("view lists open jobs with tallies", func(t *testing.T) {
		f := newFixture()
		campaign := f.campaign(t, "gm-1")
		token := openPoll(t, f, campaign.ID)
		job := f.openJob(t, campaign.ID, "The Customs Vault")
		archived := f.openJob(t, campaign.ID, "Old Business")
		f.store.mu.Lock()
		f.store.jobs[archived.ID].Status = types.JobArchived
		f.store.mu.Unlock()

		if _, err := f.services.Poll.Vote(ctx, token, job.ID, "Rhea"); err != nil {
			t.Fatalf("Vote: %v", err)
		}

		view, err := f.services.Poll.View(ctx, token)
		if err != nil {
			t.Fatalf("View: %v", err)
		}
		if len(view.Jobs) != 1 || view.Jobs[0].ID != job.ID {
			t.Fatalf("view jobs = %+v, want only the open job", view.Jobs)
		}
		if view.Tallies[job.ID] != 1 {
			t.Errorf("tally = %d, want 1", view.Tallies[job.ID])
		}
	})

	t.Run("duplicate vote does not double count", func(t *testing.T) {
		b := &recordingBroadcaster{}
		f := newFixtureWith(nil, b)
		campaign := f.campaign(t, "gm-1")
		token := openPoll(t, f, campaign.ID)
		job := f.openJob(t, campaign.ID, "The Customs Vault")

		first, err := f.services.Poll.Vote(ctx, token, job.ID, "Rhea")
		if err != nil {
			t.Fatalf("first Vote: %v", err)
		}
		if first != 1 {
			t.Errorf("first vote count = %d, want 1", first)
		}
		second, err := f.services.Poll.Vote(ctx, token, job.ID, "Rhea")
		if err != nil {
			t.Fatalf("second Vote: %v", err)
		}
		if second != 1 {
			t.Errorf("second vote count = %d, want 1", second)
		}
		if len(b.tallies) != 1 {
			t.Errorf("tally broadcasts = %v, want exactly one", b.tallies)
		}
	})

	t.Run("voting on a non-open job fails", func(t *testing.T) {
		f := newFixture()
		campaign := f.campaign(t, "gm-1")
		token := openPoll(t, f, campaign.ID)
		job := f.openJob(t, campaign.ID, "Old Business")
		f.store.mu.Lock()
		f.store.jobs[job.ID].Status = types.JobPlayed
		f.store.mu.Unlock()

		_, err := f.services.Poll.Vote(ctx, token, job.ID, "Rhea")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("stale token", func(t *testing.T) {
		f := newFixture()
		campaign := f.campaign(t, "gm-1")
		token := openPoll(t, f, campaign.ID)
		if err := f.services.Poll.Close(ctx, campaign.ID, "gm-1"); err != nil {
			t.Fatalf("Close: %v", err)
		}

		if _, err := f.services.Poll.View(ctx, token); !errors.Is(err, ErrNotFound) {
			t.Fatalf("View: err = %v, want ErrNotFound", err)
		}
		if _, err := f.services.Poll.Vote(ctx, token, "job-1", "Rhea"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Vote: err = %v, want ErrNotFound", err)
		}
	})

	t.Run("blank voter name", func(t *testing.T) {
		f := newFixture()
		campaign := f.campaign(t, "gm-1")
		token := openPoll(t, f, campaign.ID)
		job := f.openJob(t, campaign.ID, "The Customs Vault")

		_, err := f.services.Poll.Vote(ctx, token, job.ID, "   ")
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("err = %v, want ErrInvalidInput", err)
		}
	})
}
