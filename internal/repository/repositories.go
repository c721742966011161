package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	// Core repositories (pgxpool)
	AccountRepo      AccountRepository
	CampaignRepo     CampaignRepository
	MembershipRepo   MembershipRepository
	InvitationRepo   InvitationRepository
	InviteLinkRepo   InviteLinkRepository
	JoinRequestRepo  JoinRequestRepository
	EnrollmentRepo   EnrollmentRepository
	OrganizationRepo OrganizationRepository
	MissionTypeRepo  MissionTypeRepository

	// Job board repositories (sqlx)
	JobRepo  JobRepository
	VoteRepo VoteRepository
}

func NewRepositories(pool *pgxpool.Pool, db *sqlx.DB) *Repositories {
	return &Repositories{
		AccountRepo:      NewAccountRepository(pool),
		CampaignRepo:     NewCampaignRepository(pool),
		MembershipRepo:   NewMembershipRepository(pool),
		InvitationRepo:   NewInvitationRepository(pool),
		InviteLinkRepo:   NewInviteLinkRepository(pool),
		JoinRequestRepo:  NewJoinRequestRepository(pool),
		EnrollmentRepo:   NewEnrollmentRepository(pool),
		OrganizationRepo: NewOrganizationRepository(pool),
		MissionTypeRepo:  NewMissionTypeRepository(pool),

		JobRepo:  NewJobRepository(db),
		VoteRepo: NewVoteRepository(db),
	}
}
