package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Campaign struct {
	ID          string
	Name        string
	Description *string
	GameSystem  *string
	OwnerID     string
	PollToken   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CampaignRepository interface {
	FindByID(ctx context.Context, id string) (*Campaign, error)
	FindByPollToken(ctx context.Context, token string) (*Campaign, error)
	FindByAccountID(ctx context.Context, accountID string) ([]*Campaign, error)
	Update(ctx context.Context, campaign *Campaign) error
	SetPollToken(ctx context.Context, campaignID string, token *string) error
	Delete(ctx context.Context, id string) error
}

type pgCampaignRepository struct {
	pool *pgxpool.Pool
}

func NewCampaignRepository(pool *pgxpool.Pool) CampaignRepository {
	return &pgCampaignRepository{pool: pool}
}

func (r *pgCampaignRepository) FindByID(ctx context.Context, id string) (*Campaign, error) {
	query := `
		SELECT id, name, description, game_system, owner_id, poll_token, created_at, updated_at
		FROM campaigns WHERE id = $1
	`
	c := &Campaign{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.GameSystem, &c.OwnerID, &c.PollToken,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *pgCampaignRepository) FindByPollToken(ctx context.Context, token string) (*Campaign, error) {
	query := `
		SELECT id, name, description, game_system, owner_id, poll_token, created_at, updated_at
		FROM campaigns WHERE poll_token = $1
	`
	c := &Campaign{}
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&c.ID, &c.Name, &c.Description, &c.GameSystem, &c.OwnerID, &c.PollToken,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *pgCampaignRepository) FindByAccountID(ctx context.Context, accountID string) ([]*Campaign, error) {
	query := `
		SELECT c.id, c.name, c.description, c.game_system, c.owner_id, c.poll_token, c.created_at, c.updated_at
		FROM campaigns c
		JOIN memberships m ON c.id = m.campaign_id
		WHERE m.account_id = $1
		ORDER BY c.name
	`
	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []*Campaign
	for rows.Next() {
		c := &Campaign{}
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.GameSystem, &c.OwnerID, &c.PollToken,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}

func (r *pgCampaignRepository) Update(ctx context.Context, campaign *Campaign) error {
	query := `
		UPDATE campaigns SET name = $2, description = $3, game_system = $4, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, campaign.ID, campaign.Name, campaign.Description, campaign.GameSystem)
	return err
}

func (r *pgCampaignRepository) SetPollToken(ctx context.Context, campaignID string, token *string) error {
	query := `UPDATE campaigns SET poll_token = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, campaignID, token)
	return err
}

func (r *pgCampaignRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM campaigns WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
