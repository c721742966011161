package service

import (
	"errors"

	"github.com/questdeck/questdeck-backend/internal/config"
	"github.com/questdeck/questdeck-backend/internal/db"
	"github.com/questdeck/questdeck-backend/internal/email"
	"github.com/questdeck/questdeck-backend/internal/genai"
	"github.com/questdeck/questdeck-backend/internal/repository"
	"github.com/questdeck/questdeck-backend/internal/socket"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrAlreadyMember     = errors.New("account is already a member of this campaign")
	ErrCannotModifyOwner = errors.New("the owner membership cannot be modified")
	ErrCannotRemoveOwner = errors.New("the owner membership cannot be removed")
	ErrEmailMismatch     = errors.New("invitation was issued to a different email address")
	ErrInvitationExpired = errors.New("invitation has expired")
	ErrLinkRevoked       = errors.New("invite link has been revoked")
	ErrLinkExpired       = errors.New("invite link has expired")
	ErrMaxUsesReached    = errors.New("invite link has no uses remaining")
	ErrRequestPending    = errors.New("join request is pending review")
	ErrRequestRejected   = errors.New("join request was rejected")
	ErrAlreadyReviewed   = errors.New("join request has already been reviewed")
	ErrGeneratorFailed   = errors.New("job generation service failed")
)

// ============================================
// Services Container
// ============================================

type Services struct {
	Access       AccessService
	Campaign     CampaignService
	Member       MemberService
	Invitation   InvitationService
	InviteLink   InviteLinkService
	JoinRequest  JoinRequestService
	Organization OrganizationService
	MissionType  MissionTypeService
	Job          JobService
	Poll         PollService
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config      *config.Config
	Repos       *repository.Repositories
	EmailSvc    *email.Service
	Generator   genai.JobGenerator
	Broadcaster socket.Broadcaster
	Cache       *db.RedisDB
}

func NewServices(deps *ServiceDeps) *Services {
	broadcaster := deps.Broadcaster
	if broadcaster == nil {
		broadcaster = socket.NoopBroadcaster{}
	}

	// Access gate first, every campaign-scoped service depends on it.
	access := NewAccessService(deps.Repos.CampaignRepo, deps.Repos.MembershipRepo)

	return &Services{
		Access:   access,
		Campaign: NewCampaignService(deps.Repos.CampaignRepo, deps.Repos.EnrollmentRepo, access),
		Member:   NewMemberService(deps.Repos.MembershipRepo, access),
		Invitation: NewInvitationService(
			deps.Repos.InvitationRepo,
			deps.Repos.MembershipRepo,
			deps.Repos.AccountRepo,
			deps.Repos.EnrollmentRepo,
			access,
			deps.EmailSvc,
		),
		InviteLink: NewInviteLinkService(
			deps.Repos.InviteLinkRepo,
			deps.Repos.MembershipRepo,
			deps.Repos.JoinRequestRepo,
			deps.Repos.EnrollmentRepo,
			access,
		),
		JoinRequest: NewJoinRequestService(
			deps.Repos.JoinRequestRepo,
			deps.Repos.EnrollmentRepo,
			access,
		),
		Organization: NewOrganizationService(deps.Repos.OrganizationRepo, access),
		MissionType:  NewMissionTypeService(deps.Repos.MissionTypeRepo, access),
		Job: NewJobService(
			deps.Repos.JobRepo,
			deps.Repos.OrganizationRepo,
			deps.Repos.MissionTypeRepo,
			deps.Repos.CampaignRepo,
			access,
			deps.Generator,
			broadcaster,
			deps.Cache,
		),
		Poll: NewPollService(
			deps.Repos.CampaignRepo,
			deps.Repos.JobRepo,
			deps.Repos.VoteRepo,
			access,
			broadcaster,
			deps.Cache,
		),
	}
}
