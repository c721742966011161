package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Membership struct {
	ID            string
	CampaignID    string
	AccountID     string
	Role          string
	CharacterName *string
	JoinedAt      time.Time
	UpdatedAt     time.Time
	Account       *Account
}

type MembershipRepository interface {
	// Create inserts a membership. created reports whether a row was
	// actually inserted; a (campaign, account) collision is absorbed by the
	// unique constraint and returns created=false with the existing row left
	// untouched.
	Create(ctx context.Context, member *Membership) (created bool, err error)
	FindByID(ctx context.Context, campaignID, memberID string) (*Membership, error)
	FindByAccount(ctx context.Context, campaignID, accountID string) (*Membership, error)
	FindByCampaign(ctx context.Context, campaignID string) ([]*Membership, error)
	UpdateRole(ctx context.Context, memberID, role string) error
	UpdateCharacterName(ctx context.Context, campaignID, accountID string, name *string) (updated bool, err error)
	Delete(ctx context.Context, memberID string) error
}

type pgMembershipRepository struct {
	pool *pgxpool.Pool
}

func NewMembershipRepository(pool *pgxpool.Pool) MembershipRepository {
	return &pgMembershipRepository{pool: pool}
}

func (r *pgMembershipRepository) Create(ctx context.Context, member *Membership) (bool, error) {
	query := `
		INSERT INTO memberships (campaign_id, account_id, role, character_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (campaign_id, account_id) DO NOTHING
		RETURNING id, joined_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		member.CampaignID, member.AccountID, member.Role, member.CharacterName,
	).Scan(&member.ID, &member.JoinedAt, &member.UpdatedAt)
	if err == pgx.ErrNoRows {
		// Conflict path: a membership already exists for this pair.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *pgMembershipRepository) FindByID(ctx context.Context, campaignID, memberID string) (*Membership, error) {
	query := `
		SELECT id, campaign_id, account_id, role, character_name, joined_at, updated_at
		FROM memberships WHERE campaign_id = $1 AND id = $2
	`
	m := &Membership{}
	err := r.pool.QueryRow(ctx, query, campaignID, memberID).Scan(
		&m.ID, &m.CampaignID, &m.AccountID, &m.Role, &m.CharacterName, &m.JoinedAt, &m.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *pgMembershipRepository) FindByAccount(ctx context.Context, campaignID, accountID string) (*Membership, error) {
	query := `
		SELECT id, campaign_id, account_id, role, character_name, joined_at, updated_at
		FROM memberships WHERE campaign_id = $1 AND account_id = $2
	`
	m := &Membership{}
	err := r.pool.QueryRow(ctx, query, campaignID, accountID).Scan(
		&m.ID, &m.CampaignID, &m.AccountID, &m.Role, &m.CharacterName, &m.JoinedAt, &m.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *pgMembershipRepository) FindByCampaign(ctx context.Context, campaignID string) ([]*Membership, error) {
	query := `
		SELECT m.id, m.campaign_id, m.account_id, m.role, m.character_name, m.joined_at, m.updated_at,
		       a.id, a.email, a.display_name, a.role
		FROM memberships m
		JOIN accounts a ON m.account_id = a.id
		WHERE m.campaign_id = $1
		ORDER BY m.joined_at
	`
	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*Membership
	for rows.Next() {
		m := &Membership{Account: &Account{}}
		if err := rows.Scan(
			&m.ID, &m.CampaignID, &m.AccountID, &m.Role, &m.CharacterName, &m.JoinedAt, &m.UpdatedAt,
			&m.Account.ID, &m.Account.Email, &m.Account.DisplayName, &m.Account.Role,
		); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

func (r *pgMembershipRepository) UpdateRole(ctx context.Context, memberID, role string) error {
	query := `UPDATE memberships SET role = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, memberID, role)
	return err
}

func (r *pgMembershipRepository) UpdateCharacterName(ctx context.Context, campaignID, accountID string, name *string) (bool, error) {
	query := `
		UPDATE memberships SET character_name = $3, updated_at = NOW()
		WHERE campaign_id = $1 AND account_id = $2
	`
	result, err := r.pool.Exec(ctx, query, campaignID, accountID, name)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *pgMembershipRepository) Delete(ctx context.Context, memberID string) error {
	query := `DELETE FROM memberships WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, memberID)
	return err
}
