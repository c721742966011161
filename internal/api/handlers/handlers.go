package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questdeck/questdeck-backend/internal/models"
	"github.com/questdeck/questdeck-backend/internal/repository"
	"github.com/questdeck/questdeck-backend/internal/service"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Campaign     *CampaignHandler
	Member       *MemberHandler
	Invitation   *InvitationHandler
	InviteLink   *InviteLinkHandler
	JoinRequest  *JoinRequestHandler
	Organization *OrganizationHandler
	MissionType  *MissionTypeHandler
	Job          *JobHandler
	Poll         *PollHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Campaign:     &CampaignHandler{campaignService: services.Campaign},
		Member:       &MemberHandler{memberService: services.Member},
		Invitation:   &InvitationHandler{invitationService: services.Invitation},
		InviteLink:   &InviteLinkHandler{linkService: services.InviteLink},
		JoinRequest:  &JoinRequestHandler{requestService: services.JoinRequest},
		Organization: &OrganizationHandler{orgService: services.Organization},
		MissionType:  &MissionTypeHandler{missionService: services.MissionType},
		Job:          &JobHandler{jobService: services.Job},
		Poll:         &PollHandler{pollService: services.Poll},
	}
}

// respondServiceError translates service errors into HTTP statuses. The
// mapping is uniform across handlers so the same failure always reads
// the same way to clients.
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrEmailMismatch),
		errors.Is(err, service.ErrRequestRejected):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrCannotModifyOwner),
		errors.Is(err, service.ErrCannotRemoveOwner),
		errors.Is(err, service.ErrAlreadyReviewed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrInvitationExpired),
		errors.Is(err, service.ErrLinkRevoked),
		errors.Is(err, service.ErrLinkExpired),
		errors.Is(err, service.ErrMaxUsesReached):
		c.JSON(http.StatusGone, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrGeneratorFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// ============================================
// Response Mappers
// ============================================

func toCampaignResponse(campaign *repository.Campaign) models.CampaignResponse {
	return models.CampaignResponse{
		ID:          campaign.ID,
		Name:        campaign.Name,
		Description: campaign.Description,
		GameSystem:  campaign.GameSystem,
		OwnerID:     campaign.OwnerID,
		PollToken:   campaign.PollToken,
		CreatedAt:   campaign.CreatedAt,
		UpdatedAt:   campaign.UpdatedAt,
	}
}

func toMemberResponse(member *repository.Membership) models.MemberResponse {
	resp := models.MemberResponse{
		ID:            member.ID,
		CampaignID:    member.CampaignID,
		AccountID:     member.AccountID,
		Role:          member.Role,
		CharacterName: member.CharacterName,
		JoinedAt:      member.JoinedAt,
	}
	if member.Account != nil {
		resp.DisplayName = member.Account.DisplayName
		resp.Email = member.Account.Email
	}
	return resp
}

func toInvitationResponse(invitation *repository.Invitation) models.InvitationResponse {
	return models.InvitationResponse{
		ID:         invitation.ID,
		CampaignID: invitation.CampaignID,
		Email:      invitation.Email,
		Role:       invitation.Role,
		Token:      invitation.Token,
		InvitedBy:  invitation.InvitedBy,
		ExpiresAt:  invitation.ExpiresAt,
		Accepted:   invitation.Accepted,
		AcceptedAt: invitation.AcceptedAt,
		CreatedAt:  invitation.CreatedAt,
	}
}

func toInviteLinkResponse(link *repository.InviteLink) models.InviteLinkResponse {
	return models.InviteLinkResponse{
		ID:              link.ID,
		CampaignID:      link.CampaignID,
		Token:           link.Token,
		ExpiresAt:       link.ExpiresAt,
		MaxUses:         link.MaxUses,
		UseCount:        link.UseCount,
		RequireApproval: link.RequireApproval,
		IsActive:        link.IsActive,
		CreatedAt:       link.CreatedAt,
		RevokedAt:       link.RevokedAt,
		RevokedBy:       link.RevokedBy,
	}
}

func toJoinRequestResponse(request *repository.JoinRequest) models.JoinRequestResponse {
	resp := models.JoinRequestResponse{
		ID:          request.ID,
		CampaignID:  request.CampaignID,
		AccountID:   request.AccountID,
		Status:      request.Status,
		RequestedAt: request.RequestedAt,
		ReviewedAt:  request.ReviewedAt,
	}
	if request.Account != nil {
		resp.DisplayName = request.Account.DisplayName
		resp.Email = request.Account.Email
	}
	return resp
}

func toOrganizationResponse(org *repository.Organization) models.OrganizationResponse {
	return models.OrganizationResponse{
		ID:          org.ID,
		CampaignID:  org.CampaignID,
		Name:        org.Name,
		Description: org.Description,
		Kind:        org.Kind,
		CreatedAt:   org.CreatedAt,
		UpdatedAt:   org.UpdatedAt,
	}
}

func toMissionTypeResponse(mt *repository.MissionType) models.MissionTypeResponse {
	return models.MissionTypeResponse{
		ID:          mt.ID,
		CampaignID:  mt.CampaignID,
		Name:        mt.Name,
		Description: mt.Description,
		CreatedAt:   mt.CreatedAt,
	}
}

func toJobResponse(job *repository.Job) models.JobResponse {
	return models.JobResponse{
		ID:           job.ID,
		CampaignID:   job.CampaignID,
		Title:        job.Title,
		Body:         job.Body,
		Status:       job.Status,
		Organization: job.Organization,
		MissionType:  job.MissionType,
		VoteCount:    job.VoteCount,
		CreatedBy:    job.CreatedBy,
		CreatedAt:    job.CreatedAt,
	}
}
