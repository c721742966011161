package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Invitation is an email-targeted, single-use invitation to join a campaign.
// Accepted invitations are kept for audit; pending ones expire.
type Invitation struct {
	ID         string
	CampaignID string
	Email      string
	Role       string
	Token      string
	InvitedBy  string
	ExpiresAt  time.Time
	Accepted   bool
	AcceptedAt *time.Time
	AcceptedBy *string
	CreatedAt  time.Time
}

type InvitationRepository interface {
	Create(ctx context.Context, invitation *Invitation) error
	FindByID(ctx context.Context, campaignID, id string) (*Invitation, error)
	FindByToken(ctx context.Context, token string) (*Invitation, error)
	FindPendingByCampaign(ctx context.Context, campaignID string) ([]*Invitation, error)
	ExtendExpiry(ctx context.Context, id string, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int, error)
}

type pgInvitationRepository struct {
	pool *pgxpool.Pool
}

func NewInvitationRepository(pool *pgxpool.Pool) InvitationRepository {
	return &pgInvitationRepository{pool: pool}
}

func (r *pgInvitationRepository) Create(ctx context.Context, invitation *Invitation) error {
	invitation.Token = uuid.New().String()
	query := `
		INSERT INTO invitations (campaign_id, email, role, token, invited_by, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query,
		invitation.CampaignID, invitation.Email, invitation.Role,
		invitation.Token, invitation.InvitedBy, invitation.ExpiresAt,
	).Scan(&invitation.ID, &invitation.CreatedAt)
}

func (r *pgInvitationRepository) FindByID(ctx context.Context, campaignID, id string) (*Invitation, error) {
	query := `
		SELECT id, campaign_id, email, role, token, invited_by, expires_at,
		       accepted, accepted_at, accepted_by, created_at
		FROM invitations WHERE campaign_id = $1 AND id = $2
	`
	invitation := &Invitation{}
	err := r.pool.QueryRow(ctx, query, campaignID, id).Scan(
		&invitation.ID, &invitation.CampaignID, &invitation.Email, &invitation.Role,
		&invitation.Token, &invitation.InvitedBy, &invitation.ExpiresAt,
		&invitation.Accepted, &invitation.AcceptedAt, &invitation.AcceptedBy, &invitation.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return invitation, nil
}

func (r *pgInvitationRepository) FindByToken(ctx context.Context, token string) (*Invitation, error) {
	query := `
		SELECT id, campaign_id, email, role, token, invited_by, expires_at,
		       accepted, accepted_at, accepted_by, created_at
		FROM invitations WHERE token = $1
	`
	invitation := &Invitation{}
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&invitation.ID, &invitation.CampaignID, &invitation.Email, &invitation.Role,
		&invitation.Token, &invitation.InvitedBy, &invitation.ExpiresAt,
		&invitation.Accepted, &invitation.AcceptedAt, &invitation.AcceptedBy, &invitation.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return invitation, nil
}

func (r *pgInvitationRepository) FindPendingByCampaign(ctx context.Context, campaignID string) ([]*Invitation, error) {
	query := `
		SELECT id, campaign_id, email, role, token, invited_by, expires_at,
		       accepted, accepted_at, accepted_by, created_at
		FROM invitations WHERE campaign_id = $1 AND accepted = FALSE
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []*Invitation
	for rows.Next() {
		invitation := &Invitation{}
		if err := rows.Scan(
			&invitation.ID, &invitation.CampaignID, &invitation.Email, &invitation.Role,
			&invitation.Token, &invitation.InvitedBy, &invitation.ExpiresAt,
			&invitation.Accepted, &invitation.AcceptedAt, &invitation.AcceptedBy, &invitation.CreatedAt,
		); err != nil {
			return nil, err
		}
		invitations = append(invitations, invitation)
	}
	return invitations, nil
}

func (r *pgInvitationRepository) ExtendExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	query := `UPDATE invitations SET expires_at = $2 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, expiresAt)
	return err
}

func (r *pgInvitationRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM invitations WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// DeleteExpiredBefore prunes pending invitations whose expiry passed before
// the cutoff. Recently expired rows are kept so a resend can still revive
// them.
func (r *pgInvitationRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int, error) {
	query := `DELETE FROM invitations WHERE expires_at < $1 AND accepted = FALSE`
	result, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return int(result.RowsAffected()), nil
}
