package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InviteLink is a shareable campaign join token. use_count only ever grows;
// revocation deactivates the link but keeps the row for audit.
type InviteLink struct {
	ID              string
	CampaignID      string
	Token           string
	CreatedBy       string
	ExpiresAt       *time.Time
	MaxUses         *int
	UseCount        int
	RequireApproval bool
	IsActive        bool
	RevokedAt       *time.Time
	RevokedBy       *string
	CreatedAt       time.Time
}

// Usable reports whether the link can still admit a join attempt at t.
func (l *InviteLink) Usable(t time.Time) bool {
	if !l.IsActive {
		return false
	}
	if l.ExpiresAt != nil && !l.ExpiresAt.After(t) {
		return false
	}
	if l.MaxUses != nil && l.UseCount >= *l.MaxUses {
		return false
	}
	return true
}

type InviteLinkRepository interface {
	Create(ctx context.Context, link *InviteLink) error
	FindByID(ctx context.Context, campaignID, id string) (*InviteLink, error)
	FindByToken(ctx context.Context, token string) (*InviteLink, error)
	FindByCampaign(ctx context.Context, campaignID string) ([]*InviteLink, error)
	Revoke(ctx context.Context, id, revokedBy string) error
	DeactivateExhausted(ctx context.Context) (int, error)
}

type pgInviteLinkRepository struct {
	pool *pgxpool.Pool
}

func NewInviteLinkRepository(pool *pgxpool.Pool) InviteLinkRepository {
	return &pgInviteLinkRepository{pool: pool}
}

func (r *pgInviteLinkRepository) Create(ctx context.Context, link *InviteLink) error {
	link.Token = uuid.New().String()
	query := `
		INSERT INTO invite_links (campaign_id, token, created_by, expires_at, max_uses, require_approval)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, use_count, is_active, created_at
	`
	return r.pool.QueryRow(ctx, query,
		link.CampaignID, link.Token, link.CreatedBy, link.ExpiresAt, link.MaxUses, link.RequireApproval,
	).Scan(&link.ID, &link.UseCount, &link.IsActive, &link.CreatedAt)
}

func (r *pgInviteLinkRepository) FindByID(ctx context.Context, campaignID, id string) (*InviteLink, error) {
	query := `
		SELECT id, campaign_id, token, created_by, expires_at, max_uses, use_count,
		       require_approval, is_active, revoked_at, revoked_by, created_at
		FROM invite_links WHERE campaign_id = $1 AND id = $2
	`
	link := &InviteLink{}
	err := r.pool.QueryRow(ctx, query, campaignID, id).Scan(
		&link.ID, &link.CampaignID, &link.Token, &link.CreatedBy, &link.ExpiresAt,
		&link.MaxUses, &link.UseCount, &link.RequireApproval, &link.IsActive,
		&link.RevokedAt, &link.RevokedBy, &link.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return link, nil
}

func (r *pgInviteLinkRepository) FindByToken(ctx context.Context, token string) (*InviteLink, error) {
	query := `
		SELECT id, campaign_id, token, created_by, expires_at, max_uses, use_count,
		       require_approval, is_active, revoked_at, revoked_by, created_at
		FROM invite_links WHERE token = $1
	`
	link := &InviteLink{}
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&link.ID, &link.CampaignID, &link.Token, &link.CreatedBy, &link.ExpiresAt,
		&link.MaxUses, &link.UseCount, &link.RequireApproval, &link.IsActive,
		&link.RevokedAt, &link.RevokedBy, &link.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return link, nil
}

func (r *pgInviteLinkRepository) FindByCampaign(ctx context.Context, campaignID string) ([]*InviteLink, error) {
	query := `
		SELECT id, campaign_id, token, created_by, expires_at, max_uses, use_count,
		       require_approval, is_active, revoked_at, revoked_by, created_at
		FROM invite_links WHERE campaign_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*InviteLink
	for rows.Next() {
		link := &InviteLink{}
		if err := rows.Scan(
			&link.ID, &link.CampaignID, &link.Token, &link.CreatedBy, &link.ExpiresAt,
			&link.MaxUses, &link.UseCount, &link.RequireApproval, &link.IsActive,
			&link.RevokedAt, &link.RevokedBy, &link.CreatedAt,
		); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}

func (r *pgInviteLinkRepository) Revoke(ctx context.Context, id, revokedBy string) error {
	query := `
		UPDATE invite_links
		SET is_active = FALSE, revoked_at = NOW(), revoked_by = $2
		WHERE id = $1 AND is_active = TRUE
	`
	_, err := r.pool.Exec(ctx, query, id, revokedBy)
	return err
}

func (r *pgInviteLinkRepository) DeactivateExhausted(ctx context.Context) (int, error) {
	query := `
		UPDATE invite_links SET is_active = FALSE
		WHERE is_active = TRUE
		  AND ((expires_at IS NOT NULL AND expires_at < NOW())
		    OR (max_uses IS NOT NULL AND use_count >= max_uses))
	`
	result, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return int(result.RowsAffected()), nil
}
