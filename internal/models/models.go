// Package models defines the API request and response shapes.
package models

import "time"

// ============================================
// Requests
// ============================================

type CreateCampaignRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	GameSystem  *string `json:"gameSystem"`
}

type UpdateCampaignRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	GameSystem  *string `json:"gameSystem"`
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required"`
	Role  string `json:"role" binding:"required"`
}

type ChangeRoleRequest struct {
	MemberID string `json:"memberId" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type UpdateSelfRequest struct {
	CharacterName *string `json:"characterName"`
}

type AcceptInvitationRequest struct {
	Token string `json:"token" binding:"required"`
}

type CreateInviteLinkRequest struct {
	ExpiresAt       *time.Time `json:"expiresAt"`
	MaxUses         *int       `json:"maxUses"`
	RequireApproval bool       `json:"requireApproval"`
}

type ConsumeInviteLinkRequest struct {
	Token string `json:"token" binding:"required"`
}

type ReviewJoinRequestRequest struct {
	Action string `json:"action" binding:"required"`
}

type CreateOrganizationRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Kind        *string `json:"kind"`
}

type UpdateOrganizationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Kind        *string `json:"kind"`
}

type CreateMissionTypeRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type GenerateJobRequest struct {
	OrganizationID *string `json:"organizationId"`
	MissionTypeID  *string `json:"missionTypeId"`
	Prompt         string  `json:"prompt"`
}

type UpdateJobStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CastVoteRequest struct {
	JobID     string `json:"jobId" binding:"required"`
	VoterName string `json:"voterName" binding:"required"`
}

// ============================================
// Responses
// ============================================

type CampaignResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	GameSystem  *string   `json:"gameSystem,omitempty"`
	OwnerID     string    `json:"ownerId"`
	PollToken   *string   `json:"pollToken,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type MemberResponse struct {
	ID            string    `json:"id"`
	CampaignID    string    `json:"campaignId"`
	AccountID     string    `json:"accountId"`
	Role          string    `json:"role"`
	CharacterName *string   `json:"characterName,omitempty"`
	DisplayName   string    `json:"displayName,omitempty"`
	Email         string    `json:"email,omitempty"`
	JoinedAt      time.Time `json:"joinedAt"`
}

type InvitationResponse struct {
	ID         string     `json:"id"`
	CampaignID string     `json:"campaignId"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Token      string     `json:"token"`
	InvitedBy  string     `json:"invitedBy"`
	ExpiresAt  time.Time  `json:"expiresAt"`
	Accepted   bool       `json:"accepted"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type InviteLinkResponse struct {
	ID              string     `json:"id"`
	CampaignID      string     `json:"campaignId"`
	Token           string     `json:"token"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
	MaxUses         *int       `json:"maxUses,omitempty"`
	UseCount        int        `json:"useCount"`
	RequireApproval bool       `json:"requireApproval"`
	IsActive        bool       `json:"isActive"`
	CreatedAt       time.Time  `json:"createdAt"`
	RevokedAt       *time.Time `json:"revokedAt,omitempty"`
	RevokedBy       *string    `json:"revokedBy,omitempty"`
}

type JoinRequestResponse struct {
	ID          string     `json:"id"`
	CampaignID  string     `json:"campaignId"`
	AccountID   string     `json:"accountId"`
	Status      string     `json:"status"`
	DisplayName string     `json:"displayName,omitempty"`
	Email       string     `json:"email,omitempty"`
	RequestedAt time.Time  `json:"requestedAt"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
}

type OrganizationResponse struct {
	ID          string    `json:"id"`
	CampaignID  string    `json:"campaignId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Kind        *string   `json:"kind,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type MissionTypeResponse struct {
	ID          string    `json:"id"`
	CampaignID  string    `json:"campaignId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type JobResponse struct {
	ID           string    `json:"id"`
	CampaignID   string    `json:"campaignId"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	Status       string    `json:"status"`
	Organization *string   `json:"organization,omitempty"`
	MissionType  *string   `json:"missionType,omitempty"`
	VoteCount    int       `json:"voteCount"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
}

type PollViewResponse struct {
	CampaignName string         `json:"campaignName"`
	Jobs         []JobResponse  `json:"jobs"`
	Tallies      map[string]int `json:"tallies"`
}
