package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type JoinRequest struct {
	ID           string
	CampaignID   string
	AccountID    string
	InviteLinkID string
	Status       string
	RequestedAt  time.Time
	ReviewedAt   *time.Time
	ReviewedBy   *string
	Account      *Account
}

type JoinRequestRepository interface {
	FindByID(ctx context.Context, campaignID, id string) (*JoinRequest, error)
	FindByAccount(ctx context.Context, campaignID, accountID string) (*JoinRequest, error)
	FindByCampaign(ctx context.Context, campaignID string) ([]*JoinRequest, error)
}

type pgJoinRequestRepository struct {
	pool *pgxpool.Pool
}

func NewJoinRequestRepository(pool *pgxpool.Pool) JoinRequestRepository {
	return &pgJoinRequestRepository{pool: pool}
}

func (r *pgJoinRequestRepository) FindByID(ctx context.Context, campaignID, id string) (*JoinRequest, error) {
	query := `
		SELECT id, campaign_id, account_id, invite_link_id, status, requested_at, reviewed_at, reviewed_by
		FROM join_requests WHERE campaign_id = $1 AND id = $2
	`
	req := &JoinRequest{}
	err := r.pool.QueryRow(ctx, query, campaignID, id).Scan(
		&req.ID, &req.CampaignID, &req.AccountID, &req.InviteLinkID, &req.Status,
		&req.RequestedAt, &req.ReviewedAt, &req.ReviewedBy,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *pgJoinRequestRepository) FindByAccount(ctx context.Context, campaignID, accountID string) (*JoinRequest, error) {
	query := `
		SELECT id, campaign_id, account_id, invite_link_id, status, requested_at, reviewed_at, reviewed_by
		FROM join_requests WHERE campaign_id = $1 AND account_id = $2
	`
	req := &JoinRequest{}
	err := r.pool.QueryRow(ctx, query, campaignID, accountID).Scan(
		&req.ID, &req.CampaignID, &req.AccountID, &req.InviteLinkID, &req.Status,
		&req.RequestedAt, &req.ReviewedAt, &req.ReviewedBy,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *pgJoinRequestRepository) FindByCampaign(ctx context.Context, campaignID string) ([]*JoinRequest, error) {
	query := `
		SELECT jr.id, jr.campaign_id, jr.account_id, jr.invite_link_id, jr.status,
		       jr.requested_at, jr.reviewed_at, jr.reviewed_by,
		       a.id, a.email, a.display_name, a.role
		FROM join_requests jr
		JOIN accounts a ON jr.account_id = a.id
		WHERE jr.campaign_id = $1
		ORDER BY jr.requested_at DESC
	`
	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*JoinRequest
	for rows.Next() {
		req := &JoinRequest{Account: &Account{}}
		if err := rows.Scan(
			&req.ID, &req.CampaignID, &req.AccountID, &req.InviteLinkID, &req.Status,
			&req.RequestedAt, &req.ReviewedAt, &req.ReviewedBy,
			&req.Account.ID, &req.Account.Email, &req.Account.DisplayName, &req.Account.Role,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}
