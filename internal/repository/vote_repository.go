package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type JobVote struct {
	ID         string    `db:"id"`
	CampaignID string    `db:"campaign_id"`
	JobID      string    `db:"job_id"`
	VoterName  string    `db:"voter_name"`
	CreatedAt  time.Time `db:"created_at"`
}

type JobTally struct {
	JobID string `db:"job_id"`
	Votes int    `db:"votes"`
}

type VoteRepository interface {
	// Cast records a vote. created=false means this voter already voted for
	// the job; the existing vote is left untouched.
	Cast(ctx context.Context, vote *JobVote) (created bool, err error)
	TallyByCampaign(ctx context.Context, campaignID string) ([]*JobTally, error)
	VotesByVoter(ctx context.Context, campaignID, voterName string) ([]string, error)
}

type sqlVoteRepository struct {
	db *sqlx.DB
}

func NewVoteRepository(db *sqlx.DB) VoteRepository {
	return &sqlVoteRepository{db: db}
}

func (r *sqlVoteRepository) Cast(ctx context.Context, vote *JobVote) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO job_votes (campaign_id, job_id, voter_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (job_id, voter_name) DO NOTHING
	`, vote.CampaignID, vote.JobID, vote.VoterName)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *sqlVoteRepository) TallyByCampaign(ctx context.Context, campaignID string) ([]*JobTally, error) {
	var tallies []*JobTally
	err := r.db.SelectContext(ctx, &tallies, `
		SELECT job_id, COUNT(*) AS votes
		FROM job_votes
		WHERE campaign_id = $1
		GROUP BY job_id
	`, campaignID)
	if err != nil {
		return nil, err
	}
	return tallies, nil
}

func (r *sqlVoteRepository) VotesByVoter(ctx context.Context, campaignID, voterName string) ([]string, error) {
	var jobIDs []string
	err := r.db.SelectContext(ctx, &jobIDs, `
		SELECT job_id
		FROM job_votes
		WHERE campaign_id = $1 AND voter_name = $2
	`, campaignID, voterName)
	if err != nil {
		return nil, err
	}
	return jobIDs, nil
}
