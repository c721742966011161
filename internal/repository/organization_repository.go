package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Organization struct {
	ID          string
	CampaignID  string
	Name        string
	Description *string
	Kind        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrganizationRepository interface {
	Create(ctx context.Context, org *Organization) error
	FindByID(ctx context.Context, campaignID, id string) (*Organization, error)
	FindByCampaign(ctx context.Context, campaignID string) ([]*Organization, error)
	Update(ctx context.Context, org *Organization) error
	Delete(ctx context.Context, id string) error
}

type pgOrganizationRepository struct {
	pool *pgxpool.Pool
}

func NewOrganizationRepository(pool *pgxpool.Pool) OrganizationRepository {
	return &pgOrganizationRepository{pool: pool}
}

func (r *pgOrganizationRepository) Create(ctx context.Context, org *Organization) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO organizations (campaign_id, name, description, kind)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, org.CampaignID, org.Name, org.Description, org.Kind).
		Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)
}

func (r *pgOrganizationRepository) FindByID(ctx context.Context, campaignID, id string) (*Organization, error) {
	org := &Organization{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, campaign_id, name, description, kind, created_at, updated_at
		FROM organizations
		WHERE id = $1 AND campaign_id = $2
	`, id, campaignID).
		Scan(&org.ID, &org.CampaignID, &org.Name, &org.Description, &org.Kind, &org.CreatedAt, &org.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return org, nil
}

func (r *pgOrganizationRepository) FindByCampaign(ctx context.Context, campaignID string) ([]*Organization, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, campaign_id, name, description, kind, created_at, updated_at
		FROM organizations
		WHERE campaign_id = $1
		ORDER BY name
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []*Organization
	for rows.Next() {
		org := &Organization{}
		if err := rows.Scan(&org.ID, &org.CampaignID, &org.Name, &org.Description, &org.Kind, &org.CreatedAt, &org.UpdatedAt); err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

func (r *pgOrganizationRepository) Update(ctx context.Context, org *Organization) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE organizations
		SET name = $2, description = $3, kind = $4, updated_at = NOW()
		WHERE id = $1
	`, org.ID, org.Name, org.Description, org.Kind)
	return err
}

func (r *pgOrganizationRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	return err
}
