package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrLinkNotUsable is returned when the serialized use-count check finds
	// the link revoked, expired or exhausted at commit time. Callers re-read
	// the link to report the precise reason.
	ErrLinkNotUsable = errors.New("invite link is not usable")

	// ErrRequestNotPending is returned when a review races another reviewer.
	ErrRequestNotPending = errors.New("join request is not pending")
)

// EnrollmentRepository runs the multi-table lifecycle mutations in single
// transactions: membership grants paired with the record that authorized
// them. It is the only writer allowed to touch memberships together with
// invitations, invite links or join requests, and is invoked only after the
// access gate has approved the action.
type EnrollmentRepository interface {
	// CreateCampaignWithOwner inserts the campaign and its owner membership
	// together, bootstrapping the owner's directory entry if absent.
	CreateCampaignWithOwner(ctx context.Context, campaign *Campaign, owner *Account) error

	// AcceptInvitation bootstraps the directory entry, inserts the
	// membership (a duplicate is absorbed) and marks the invitation
	// accepted, all in one transaction.
	AcceptInvitation(ctx context.Context, invitation *Invitation, account *Account) (memberCreated bool, err error)

	// ConsumeLinkDirect burns one use of the link and inserts a viewer
	// membership. The use-count check and increment are a single conditional
	// update, so two racing consumers of a one-use link cannot both join.
	// joined=false with a nil error means the account was already a member;
	// the transaction is rolled back and no use is burned.
	ConsumeLinkDirect(ctx context.Context, link *InviteLink, account *Account) (joined bool, err error)

	// ConsumeLinkRequest burns one use of the link and files a pending join
	// request. created=false with a nil error means a request for this
	// (campaign, account) already exists; the transaction is rolled back.
	ConsumeLinkRequest(ctx context.Context, link *InviteLink, account *Account) (request *JoinRequest, created bool, err error)

	// ReviewJoinRequest stamps the review outcome; on approval it inserts a
	// viewer membership unless one appeared through another path since the
	// request was filed.
	ReviewJoinRequest(ctx context.Context, request *JoinRequest, approve bool, reviewerID string) (memberCreated bool, err error)
}

type pgEnrollmentRepository struct {
	pool *pgxpool.Pool
}

func NewEnrollmentRepository(pool *pgxpool.Pool) EnrollmentRepository {
	return &pgEnrollmentRepository{pool: pool}
}

func (r *pgEnrollmentRepository) CreateCampaignWithOwner(ctx context.Context, campaign *Campaign, owner *Account) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := ensureAccount(ctx, tx, owner); err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO campaigns (name, description, game_system, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, campaign.Name, campaign.Description, campaign.GameSystem, campaign.OwnerID).
		Scan(&campaign.ID, &campaign.CreatedAt, &campaign.UpdatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO memberships (campaign_id, account_id, role)
		VALUES ($1, $2, 'owner')
	`, campaign.ID, campaign.OwnerID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *pgEnrollmentRepository) AcceptInvitation(ctx context.Context, invitation *Invitation, account *Account) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	if err := ensureAccount(ctx, tx, account); err != nil {
		return false, err
	}

	created, err := insertMembership(ctx, tx, invitation.CampaignID, account.ID, invitation.Role)
	if err != nil {
		return false, err
	}

	// accepted = FALSE guards the race between two accepts of the same
	// token; the loser still commits its (absorbed) membership insert.
	_, err = tx.Exec(ctx, `
		UPDATE invitations
		SET accepted = TRUE, accepted_at = NOW(), accepted_by = $2
		WHERE id = $1 AND accepted = FALSE
	`, invitation.ID, account.ID)
	if err != nil {
		return false, err
	}

	return created, tx.Commit(ctx)
}

func (r *pgEnrollmentRepository) ConsumeLinkDirect(ctx context.Context, link *InviteLink, account *Account) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	if err := burnLinkUse(ctx, tx, link.ID); err != nil {
		return false, err
	}

	if err := ensureAccount(ctx, tx, account); err != nil {
		return false, err
	}

	created, err := insertMembership(ctx, tx, link.CampaignID, account.ID, "viewer")
	if err != nil {
		return false, err
	}
	if !created {
		// Already a member through another path; do not burn the use.
		return false, nil
	}

	return true, tx.Commit(ctx)
}

func (r *pgEnrollmentRepository) ConsumeLinkRequest(ctx context.Context, link *InviteLink, account *Account) (*JoinRequest, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	if err := burnLinkUse(ctx, tx, link.ID); err != nil {
		return nil, false, err
	}

	if err := ensureAccount(ctx, tx, account); err != nil {
		return nil, false, err
	}

	request := &JoinRequest{
		CampaignID:   link.CampaignID,
		AccountID:    account.ID,
		InviteLinkID: link.ID,
		Status:       "pending",
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO join_requests (campaign_id, account_id, invite_link_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (campaign_id, account_id) DO NOTHING
		RETURNING id, status, requested_at
	`, link.CampaignID, account.ID, link.ID).
		Scan(&request.ID, &request.Status, &request.RequestedAt)
	if err == pgx.ErrNoRows {
		// A request already exists for this pair; roll back the burned use.
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return request, true, tx.Commit(ctx)
}

func (r *pgEnrollmentRepository) ReviewJoinRequest(ctx context.Context, request *JoinRequest, approve bool, reviewerID string) (bool, error) {
	status := "rejected"
	if approve {
		status = "approved"
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE join_requests
		SET status = $2, reviewed_at = NOW(), reviewed_by = $3
		WHERE id = $1 AND status = 'pending'
	`, request.ID, status, reviewerID)
	if err != nil {
		return false, err
	}
	if result.RowsAffected() == 0 {
		return false, ErrRequestNotPending
	}

	created := false
	if approve {
		// The requester may have joined through another path since filing;
		// the conflict clause absorbs that.
		created, err = insertMembership(ctx, tx, request.CampaignID, request.AccountID, "viewer")
		if err != nil {
			return false, err
		}
	}

	return created, tx.Commit(ctx)
}

func ensureAccount(ctx context.Context, tx pgx.Tx, account *Account) error {
	if account.Role == "" {
		account.Role = "player"
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO accounts (id, email, display_name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`, account.ID, account.Email, account.DisplayName, account.Role)
	return err
}

func insertMembership(ctx context.Context, tx pgx.Tx, campaignID, accountID, role string) (bool, error) {
	result, err := tx.Exec(ctx, `
		INSERT INTO memberships (campaign_id, account_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (campaign_id, account_id) DO NOTHING
	`, campaignID, accountID, role)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

// burnLinkUse serializes the check-then-increment on the link counter. The
// conditional update matches zero rows once the link is revoked, expired or
// out of uses, which surfaces as ErrLinkNotUsable.
func burnLinkUse(ctx context.Context, tx pgx.Tx, linkID string) error {
	result, err := tx.Exec(ctx, `
		UPDATE invite_links
		SET use_count = use_count + 1
		WHERE id = $1
		  AND is_active = TRUE
		  AND (expires_at IS NULL OR expires_at > NOW())
		  AND (max_uses IS NULL OR use_count < max_uses)
	`, linkID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrLinkNotUsable
	}
	return nil
}
