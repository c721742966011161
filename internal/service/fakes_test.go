package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/questdeck/questdeck-backend/internal/genai"
	"github.com/questdeck/questdeck-backend/internal/repository"
	"github.com/questdeck/questdeck-backend/internal/socket"
)

// memStore is a single in-memory backing store shared by the fake
// repositories, so the transactional fakes see the same rows the plain
// ones do. It enforces the same uniqueness rules the schema does.
type memStore struct {
	mu          sync.Mutex
	seq         int
	accounts    map[string]*repository.Account
	campaigns   map[string]*repository.Campaign
	memberships map[string]*repository.Membership
	invitations map[string]*repository.Invitation
	links       map[string]*repository.InviteLink
	requests    map[string]*repository.JoinRequest
	jobs        map[string]*repository.Job
	votes       map[string]*repository.JobVote
	orgRows     map[string]*repository.Organization
	missionRows map[string]*repository.MissionType
}

func newMemStore() *memStore {
	return &memStore{
		accounts:    make(map[string]*repository.Account),
		campaigns:   make(map[string]*repository.Campaign),
		memberships: make(map[string]*repository.Membership),
		invitations: make(map[string]*repository.Invitation),
		links:       make(map[string]*repository.InviteLink),
		requests:    make(map[string]*repository.JoinRequest),
		jobs:        make(map[string]*repository.Job),
		votes:       make(map[string]*repository.JobVote),
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *memStore) membershipByAccount(campaignID, accountID string) *repository.Membership {
	for _, m := range s.memberships {
		if m.CampaignID == campaignID && m.AccountID == accountID {
			return m
		}
	}
	return nil
}

func (s *memStore) requestByAccount(campaignID, accountID string) *repository.JoinRequest {
	for _, r := range s.requests {
		if r.CampaignID == campaignID && r.AccountID == accountID {
			return r
		}
	}
	return nil
}

// insertMembership mirrors the unique-constraint absorb: false when a row
// for (campaign, account) already exists.
func (s *memStore) insertMembership(campaignID, accountID, role string) bool {
	if s.membershipByAccount(campaignID, accountID) != nil {
		return false
	}
	id := s.nextID("member")
	s.memberships[id] = &repository.Membership{
		ID:         id,
		CampaignID: campaignID,
		AccountID:  accountID,
		Role:       role,
		JoinedAt:   time.Now(),
		UpdatedAt:  time.Now(),
	}
	return true
}

func (s *memStore) ensureAccount(account *repository.Account) {
	if _, ok := s.accounts[account.ID]; ok {
		return
	}
	stored := *account
	if stored.Role == "" {
		stored.Role = "player"
	}
	s.accounts[account.ID] = &stored
}

// ============================================
// Fake repositories
// ============================================

type fakeAccountRepo struct{ store *memStore }

func (f *fakeAccountRepo) Ensure(_ context.Context, account *repository.Account) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.ensureAccount(account)
	return nil
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id string) (*repository.Account, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.accounts[id], nil
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*repository.Account, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, a := range f.store.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) Update(_ context.Context, account *repository.Account) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.accounts[account.ID] = account
	return nil
}

type fakeCampaignRepo struct{ store *memStore }

func (f *fakeCampaignRepo) FindByID(_ context.Context, id string) (*repository.Campaign, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.campaigns[id], nil
}

func (f *fakeCampaignRepo) FindByPollToken(_ context.Context, token string) (*repository.Campaign, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, c := range f.store.campaigns {
		if c.PollToken != nil && *c.PollToken == token {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCampaignRepo) FindByAccountID(_ context.Context, accountID string) ([]*repository.Campaign, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []*repository.Campaign
	for _, m := range f.store.memberships {
		if m.AccountID == accountID {
			if c, ok := f.store.campaigns[m.CampaignID]; ok {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func (f *fakeCampaignRepo) Update(_ context.Context, campaign *repository.Campaign) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.campaigns[campaign.ID] = campaign
	return nil
}

func (f *fakeCampaignRepo) SetPollToken(_ context.Context, campaignID string, token *string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if c, ok := f.store.campaigns[campaignID]; ok {
		c.PollToken = token
	}
	return nil
}

func (f *fakeCampaignRepo) Delete(_ context.Context, id string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	delete(f.store.campaigns, id)
	return nil
}

type fakeMembershipRepo struct{ store *memStore }

func (f *fakeMembershipRepo) Create(_ context.Context, member *repository.Membership) (bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.insertMembership(member.CampaignID, member.AccountID, member.Role), nil
}

func (f *fakeMembershipRepo) FindByID(_ context.Context, campaignID, memberID string) (*repository.Membership, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	m := f.store.memberships[memberID]
	if m == nil || m.CampaignID != campaignID {
		return nil, nil
	}
	return m, nil
}

func (f *fakeMembershipRepo) FindByAccount(_ context.Context, campaignID, accountID string) (*repository.Membership, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.membershipByAccount(campaignID, accountID), nil
}

func (f *fakeMembershipRepo) FindByCampaign(_ context.Context, campaignID string) ([]*repository.Membership, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []*repository.Membership
	for _, m := range f.store.memberships {
		if m.CampaignID == campaignID {
			copied := *m
			copied.Account = f.store.accounts[m.AccountID]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeMembershipRepo) UpdateRole(_ context.Context, memberID, role string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if m, ok := f.store.memberships[memberID]; ok {
		m.Role = role
	}
	return nil
}

func (f *fakeMembershipRepo) UpdateCharacterName(_ context.Context, campaignID, accountID string, name *string) (bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	m := f.store.membershipByAccount(campaignID, accountID)
	if m == nil {
		return false, nil
	}
	m.CharacterName = name
	return true, nil
}

func (f *fakeMembershipRepo) Delete(_ context.Context, memberID string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	delete(f.store.memberships, memberID)
	return nil
}

type fakeInvitationRepo struct{ store *memStore }

func (f *fakeInvitationRepo) Create(_ context.Context, invitation *repository.Invitation) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	invitation.ID = f.store.nextID("inv")
	if invitation.Token == "" {
		invitation.Token = f.store.nextID("token")
	}
	invitation.CreatedAt = time.Now()
	f.store.invitations[invitation.ID] = invitation
	return nil
}

func (f *fakeInvitationRepo) FindByID(_ context.Context, campaignID, id string) (*repository.Invitation, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	inv := f.store.invitations[id]
	if inv == nil || inv.CampaignID != campaignID {
		return nil, nil
	}
	return inv, nil
}

func (f *fakeInvitationRepo) FindByToken(_ context.Context, token string) (*repository.Invitation, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, inv := range f.store.invitations {
		if inv.Token == token {
			return inv, nil
		}
	}
	return nil, nil
}

func (f *fakeInvitationRepo) FindPendingByCampaign(_ context.Context, campaignID string) ([]*repository.Invitation, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []*repository.Invitation
	for _, inv := range f.store.invitations {
		if inv.CampaignID == campaignID && !inv.Accepted {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) ExtendExpiry(_ context.Context, id string, expiresAt time.Time) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if inv, ok := f.store.invitations[id]; ok {
		inv.ExpiresAt = expiresAt
	}
	return nil
}

func (f *fakeInvitationRepo) Delete(_ context.Context, id string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	delete(f.store.invitations, id)
	return nil
}

func (f *fakeInvitationRepo) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	deleted := 0
	for id, inv := range f.store.invitations {
		if !inv.Accepted && inv.ExpiresAt.Before(cutoff) {
			delete(f.store.invitations, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeInviteLinkRepo struct{ store *memStore }

func (f *fakeInviteLinkRepo) Create(_ context.Context, link *repository.InviteLink) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	link.ID = f.store.nextID("link")
	if link.Token == "" {
		link.Token = f.store.nextID("token")
	}
	link.IsActive = true
	link.CreatedAt = time.Now()
	f.store.links[link.ID] = link
	return nil
}

func (f *fakeInviteLinkRepo) FindByID(_ context.Context, campaignID, id string) (*repository.InviteLink, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	link := f.store.links[id]
	if link == nil || link.CampaignID != campaignID {
		return nil, nil
	}
	copied := *link
	return &copied, nil
}

func (f *fakeInviteLinkRepo) FindByToken(_ context.Context, token string) (*repository.InviteLink, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, link := range f.store.links {
		if link.Token == token {
			copied := *link
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeInviteLinkRepo) FindByCampaign(_ context.Context, campaignID string) ([]*repository.InviteLink, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []*repository.InviteLink
	for _, link := range f.store.links {
		if link.CampaignID == campaignID {
			copied := *link
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeInviteLinkRepo) Revoke(_ context.Context, id, revokedBy string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if link, ok := f.store.links[id]; ok {
		now := time.Now()
		link.IsActive = false
		link.RevokedAt = &now
		link.RevokedBy = &revokedBy
	}
	return nil
}

func (f *fakeInviteLinkRepo) DeactivateExhausted(_ context.Context) (int, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	deactivated := 0
	for _, link := range f.store.links {
		if link.IsActive && link.MaxUses != nil && link.UseCount >= *link.MaxUses {
			link.IsActive = false
			deactivated++
		}
	}
	return deactivated, nil
}

type fakeJoinRequestRepo struct{ store *memStore }

func (f *fakeJoinRequestRepo) FindByID(_ context.Context, campaignID, id string) (*repository.JoinRequest, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	r := f.store.requests[id]
	if r == nil || r.CampaignID != campaignID {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (f *fakeJoinRequestRepo) FindByAccount(_ context.Context, campaignID, accountID string) (*repository.JoinRequest, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	r := f.store.requestByAccount(campaignID, accountID)
	if r == nil {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (f *fakeJoinRequestRepo) FindByCampaign(_ context.Context, campaignID string) ([]*repository.JoinRequest, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []*repository.JoinRequest
	for _, r := range f.store.requests {
		if r.CampaignID == campaignID {
			copied := *r
			copied.Account = f.store.accounts[r.AccountID]
			out = append(out, &copied)
		}
	}
	return out, nil
}

// fakeEnrollmentRepo reproduces the transactional semantics over the
// shared store: conditional use burn, membership uniqueness absorb and
// pending-only review, all under one lock.
type fakeEnrollmentRepo struct{ store *memStore }

func (f *fakeEnrollmentRepo) CreateCampaignWithOwner(_ context.Context, campaign *repository.Campaign, owner *repository.Account) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.ensureAccount(owner)
	campaign.ID = f.store.nextID("camp")
	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = time.Now()
	f.store.campaigns[campaign.ID] = campaign
	f.store.insertMembership(campaign.ID, owner.ID, "owner")
	return nil
}

func (f *fakeEnrollmentRepo) AcceptInvitation(_ context.Context, invitation *repository.Invitation, account *repository.Account) (bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.ensureAccount(account)
	created := f.store.insertMembership(invitation.CampaignID, account.ID, invitation.Role)
	if stored, ok := f.store.invitations[invitation.ID]; ok && !stored.Accepted {
		now := time.Now()
		stored.Accepted = true
		stored.AcceptedAt = &now
		stored.AcceptedBy = &account.ID
	}
	return created, nil
}

func (f *fakeEnrollmentRepo) burnUse(link *repository.InviteLink) error {
	stored, ok := f.store.links[link.ID]
	if !ok {
		return repository.ErrLinkNotUsable
	}
	if !stored.Usable(time.Now()) {
		return repository.ErrLinkNotUsable
	}
	stored.UseCount++
	return nil
}

func (f *fakeEnrollmentRepo) ConsumeLinkDirect(_ context.Context, link *repository.InviteLink, account *repository.Account) (bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if f.store.membershipByAccount(link.CampaignID, account.ID) != nil {
		return false, nil
	}
	if err := f.burnUse(link); err != nil {
		return false, err
	}
	f.store.ensureAccount(account)
	f.store.insertMembership(link.CampaignID, account.ID, "viewer")
	return true, nil
}

func (f *fakeEnrollmentRepo) ConsumeLinkRequest(_ context.Context, link *repository.InviteLink, account *repository.Account) (*repository.JoinRequest, bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if f.store.requestByAccount(link.CampaignID, account.ID) != nil {
		return nil, false, nil
	}
	if err := f.burnUse(link); err != nil {
		return nil, false, err
	}
	f.store.ensureAccount(account)
	id := f.store.nextID("req")
	request := &repository.JoinRequest{
		ID:           id,
		CampaignID:   link.CampaignID,
		AccountID:    account.ID,
		InviteLinkID: link.ID,
		Status:       "pending",
		RequestedAt:  time.Now(),
	}
	f.store.requests[id] = request
	copied := *request
	return &copied, true, nil
}

func (f *fakeEnrollmentRepo) ReviewJoinRequest(_ context.Context, request *repository.JoinRequest, approve bool, reviewerID string) (bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	stored, ok := f.store.requests[request.ID]
	if !ok || stored.Status != "pending" {
		return false, repository.ErrRequestNotPending
	}
	now := time.Now()
	stored.ReviewedAt = &now
	stored.ReviewedBy = &reviewerID
	if !approve {
		stored.Status = "rejected"
		return false, nil
	}
	stored.Status = "approved"
	return f.store.insertMembership(stored.CampaignID, stored.AccountID, "viewer"), nil
}

type fakeOrgRepo struct{ store *memStore }

func (f *fakeOrgRepo) orgs() map[string]*repository.Organization {
	if f.store.orgRows == nil {
		f.store.orgRows = make(map[string]*repository.Organization)
	}
	return f.store.orgRows
}

func (f *fakeOrgRepo) Create(_ context.Context, org *repository.Organization) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	org.ID = f.store.nextID("org")
	org.CreatedAt = time.Now()
	org.UpdatedAt = time.Now()
	f.orgs()[org.ID] = org
	return nil
}

func (f *fakeOrgRepo) FindByID(_ context.Context, campaignID, id string) (*repository.Organization, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	org := f.orgs()[id]
	if org == nil || org.CampaignID != campaignID {
		return nil, nil
	}
	return org, nil
}

func (f *fakeOrgRepo) FindByCampaign(_ context.Context, campaignID string) ([]*repository.Organization, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []*repository.Organization
	for _, org := range f.orgs() {
		if org.CampaignID == campaignID {
			out = append(out, org)
		}
	}
	return out, nil
}

func (f *fakeOrgRepo) Update(_ context.Context, org *repository.Organization) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.orgs()[org.ID] = org
	return nil
}

func (f *fakeOrgRepo) Delete(_ context.Context, id string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	delete(f.orgs(), id)
	return nil
}

type fakeMissionTypeRepo struct{ store *memStore }

func (f *fakeMissionTypeRepo) missions() map[string]*repository.MissionType {
	if f.store.missionRows == nil {
		f.store.missionRows = make(map[string]*repository.MissionType)
	}
	return f.store.missionRows
}

func (f *fakeMissionTypeRepo) Create(_ context.Context, mt *repository.MissionType) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	mt.ID = f.store.nextID("mt")
	mt.CreatedAt = time.Now()
	f.missions()[mt.ID] = mt
	return nil
}

func (f *fakeMissionTypeRepo) FindByID(_ context.Context, campaignID, id string) (*repository.MissionType, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	mt := f.missions()[id]
	if mt == nil || mt.CampaignID != campaignID {
		return nil, nil
	}
	return mt, nil
}

func (f *fakeMissionTypeRepo) FindByCampaign(_ context.Context, campaignID string) ([]*repository.MissionType, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []*repository.MissionType
	for _, mt := range f.missions() {
		if mt.CampaignID == campaignID {
			out = append(out, mt)
		}
	}
	return out, nil
}

func (f *fakeMissionTypeRepo) Delete(_ context.Context, id string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	delete(f.missions(), id)
	return nil
}

type fakeJobRepo struct{ store *memStore }

func (f *fakeJobRepo) voteCount(jobID string) int {
	n := 0
	for _, v := range f.store.votes {
		if v.JobID == jobID {
			n++
		}
	}
	return n
}

func (f *fakeJobRepo) Create(_ context.Context, job *repository.Job) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	job.ID = f.store.nextID("job")
	if job.Status == "" {
		job.Status = "open"
	}
	job.CreatedAt = time.Now()
	f.store.jobs[job.ID] = job
	return nil
}

func (f *fakeJobRepo) FindByID(_ context.Context, campaignID, id string) (*repository.Job, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	job := f.store.jobs[id]
	if job == nil || job.CampaignID != campaignID {
		return nil, nil
	}
	copied := *job
	copied.VoteCount = f.voteCount(job.ID)
	return &copied, nil
}

func (f *fakeJobRepo) FindByCampaign(_ context.Context, campaignID string, status string) ([]*repository.Job, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []*repository.Job
	for _, job := range f.store.jobs {
		if job.CampaignID != campaignID {
			continue
		}
		if status != "" && job.Status != status {
			continue
		}
		copied := *job
		copied.VoteCount = f.voteCount(job.ID)
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeJobRepo) UpdateStatus(_ context.Context, id, status string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if job, ok := f.store.jobs[id]; ok {
		job.Status = status
	}
	return nil
}

func (f *fakeJobRepo) Delete(_ context.Context, id string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	delete(f.store.jobs, id)
	return nil
}

type fakeVoteRepo struct{ store *memStore }

func (f *fakeVoteRepo) Cast(_ context.Context, vote *repository.JobVote) (bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, v := range f.store.votes {
		if v.JobID == vote.JobID && v.VoterName == vote.VoterName {
			return false, nil
		}
	}
	vote.ID = f.store.nextID("vote")
	vote.CreatedAt = time.Now()
	f.store.votes[vote.ID] = vote
	return true, nil
}

func (f *fakeVoteRepo) TallyByCampaign(_ context.Context, campaignID string) ([]*repository.JobTally, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	counts := make(map[string]int)
	for _, v := range f.store.votes {
		if v.CampaignID == campaignID {
			counts[v.JobID]++
		}
	}
	var out []*repository.JobTally
	for jobID, votes := range counts {
		out = append(out, &repository.JobTally{JobID: jobID, Votes: votes})
	}
	return out, nil
}

func (f *fakeVoteRepo) VotesByVoter(_ context.Context, campaignID, voterName string) ([]string, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var out []string
	for _, v := range f.store.votes {
		if v.CampaignID == campaignID && v.VoterName == voterName {
			out = append(out, v.JobID)
		}
	}
	return out, nil
}

// ============================================
// Test fixture
// ============================================

type fixture struct {
	store    *memStore
	services *Services
}

func newFixture() *fixture {
	return newFixtureWith(nil, nil)
}

func newFixtureWith(generator genai.JobGenerator, broadcaster socket.Broadcaster) *fixture {
	store := newMemStore()
	repos := &repository.Repositories{
		AccountRepo:      &fakeAccountRepo{store},
		CampaignRepo:     &fakeCampaignRepo{store},
		MembershipRepo:   &fakeMembershipRepo{store},
		InvitationRepo:   &fakeInvitationRepo{store},
		InviteLinkRepo:   &fakeInviteLinkRepo{store},
		JoinRequestRepo:  &fakeJoinRequestRepo{store},
		EnrollmentRepo:   &fakeEnrollmentRepo{store},
		OrganizationRepo: &fakeOrgRepo{store},
		MissionTypeRepo:  &fakeMissionTypeRepo{store},
		JobRepo:          &fakeJobRepo{store},
		VoteRepo:         &fakeVoteRepo{store},
	}
	return &fixture{
		store: store,
		services: NewServices(&ServiceDeps{
			Repos:       repos,
			Generator:   generator,
			Broadcaster: broadcaster,
		}),
	}
}

func (f *fixture) account(id, email string) *repository.Account {
	return &repository.Account{ID: id, Email: email, DisplayName: id}
}

// campaign creates a campaign with the given owner and returns it.
func (f *fixture) campaign(t *testing.T, ownerID string) *repository.Campaign {
	t.Helper()
	owner := f.account(ownerID, ownerID+"@example.com")
	campaign, err := f.services.Campaign.Create(context.Background(), owner, "Test Campaign", nil, nil)
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	return campaign
}

func (f *fixture) membershipOf(campaignID, accountID string) *repository.Membership {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.membershipByAccount(campaignID, accountID)
}

func (f *fixture) membershipCount(campaignID string) int {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	n := 0
	for _, m := range f.store.memberships {
		if m.CampaignID == campaignID {
			n++
		}
	}
	return n
}
