package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

type Job struct {
	ID             string    `db:"id"`
	CampaignID     string    `db:"campaign_id"`
	OrganizationID *string   `db:"organization_id"`
	MissionTypeID  *string   `db:"mission_type_id"`
	Title          string    `db:"title"`
	Body           string    `db:"body"`
	Status         string    `db:"status"`
	CreatedBy      string    `db:"created_by"`
	CreatedAt      time.Time `db:"created_at"`
	Organization   *string   `db:"organization_name"`
	MissionType    *string   `db:"mission_type_name"`
	VoteCount      int       `db:"vote_count"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	FindByID(ctx context.Context, campaignID, id string) (*Job, error)
	FindByCampaign(ctx context.Context, campaignID string, status string) ([]*Job, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type sqlJobRepository struct {
	db *sqlx.DB
}

func NewJobRepository(db *sqlx.DB) JobRepository {
	return &sqlJobRepository{db: db}
}

const jobColumns = `
	j.id, j.campaign_id, j.organization_id, j.mission_type_id,
	j.title, j.body, j.status, j.created_by, j.created_at,
	o.name AS organization_name,
	mt.name AS mission_type_name,
	COUNT(v.id) AS vote_count
`

const jobJoins = `
	LEFT JOIN organizations o ON o.id = j.organization_id
	LEFT JOIN mission_types mt ON mt.id = j.mission_type_id
	LEFT JOIN job_votes v ON v.job_id = j.id
`

func (r *sqlJobRepository) Create(ctx context.Context, job *Job) error {
	return r.db.QueryRowxContext(ctx, `
		INSERT INTO jobs (campaign_id, organization_id, mission_type_id, title, body, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, status, created_at
	`, job.CampaignID, job.OrganizationID, job.MissionTypeID, job.Title, job.Body, job.CreatedBy).
		Scan(&job.ID, &job.Status, &job.CreatedAt)
}

func (r *sqlJobRepository) FindByID(ctx context.Context, campaignID, id string) (*Job, error) {
	job := &Job{}
	err := r.db.GetContext(ctx, job, `
		SELECT `+jobColumns+`
		FROM jobs j `+jobJoins+`
		WHERE j.id = $1 AND j.campaign_id = $2
		GROUP BY j.id, o.name, mt.name
	`, id, campaignID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *sqlJobRepository) FindByCampaign(ctx context.Context, campaignID string, status string) ([]*Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs j ` + jobJoins + `
		WHERE j.campaign_id = $1
	`
	args := []interface{}{campaignID}
	if status != "" {
		query += ` AND j.status = $2`
		args = append(args, status)
	}
	query += ` GROUP BY j.id, o.name, mt.name ORDER BY j.created_at DESC`

	var jobs []*Job
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *sqlJobRepository) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE jobs SET status = $2 WHERE id = $1`, id, status)
	return err
}

func (r *sqlJobRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	return err
}
