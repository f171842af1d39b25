package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"huddle/internal/models/db_models"
	"huddle/pkg/slackapi"
)

// In-memory fakes for the repository and gateway boundaries.

type fakeMemberRepo struct {
	members map[string]*db_models.Member

	createErr     error
	updateErr     error
	findAnyErrFor map[string]error

	created []*db_models.Member
	updated []*db_models.Member
}

func newFakeMemberRepo(members ...*db_models.Member) *fakeMemberRepo {
	r := &fakeMemberRepo{
		members:       map[string]*db_models.Member{},
		findAnyErrFor: map[string]error{},
	}
	for _, m := range members {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		r.members[m.ID.String()] = m
	}
	return r
}

func (r *fakeMemberRepo) Create(ctx context.Context, member *db_models.Member) (*db_models.Member, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	r.members[member.ID.String()] = member
	r.created = append(r.created, member)
	return member, nil
}

func (r *fakeMemberRepo) Update(ctx context.Context, member *db_models.Member) (*db_models.Member, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	r.members[member.ID.String()] = member
	r.updated = append(r.updated, member)
	return member, nil
}

func (r *fakeMemberRepo) GetByID(ctx context.Context, id string) (*db_models.Member, error) {
	m, ok := r.members[id]
	if !ok || m.IsDeleted {
		return nil, nil
	}
	return m, nil
}

func (r *fakeMemberRepo) GetByEmail(ctx context.Context, email string) (*db_models.Member, error) {
	for _, m := range r.members {
		if m.Email == email && !m.IsDeleted {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) FindBySlackID(ctx context.Context, slackID string) (*db_models.Member, error) {
	for _, m := range r.members {
		if m.SlackID == slackID && !m.IsDeleted {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) FindAnyBySlackID(ctx context.Context, slackID string) (*db_models.Member, error) {
	if err := r.findAnyErrFor[slackID]; err != nil {
		return nil, err
	}
	for _, m := range r.members {
		if m.SlackID == slackID {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) GetAll(ctx context.Context) ([]*db_models.Member, error) {
	out := make([]*db_models.Member, 0, len(r.members))
	for _, m := range r.members {
		if !m.IsDeleted {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeCheckInRepo struct {
	createErr error
	created   []*db_models.CheckIn
}

func (r *fakeCheckInRepo) Create(ctx context.Context, checkIn *db_models.CheckIn) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, checkIn)
	return nil
}

type fakeAlertRepo struct {
	createErr    error
	deleteErrFor map[uuid.UUID]error
	created      []*db_models.Alert
	deletedFor   []uuid.UUID
}

func (r *fakeAlertRepo) Create(ctx context.Context, alert *db_models.Alert) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, alert)
	return nil
}

func (r *fakeAlertRepo) DeleteAllByMember(ctx context.Context, memberID uuid.UUID) error {
	if err := r.deleteErrFor[memberID]; err != nil {
		return err
	}
	r.deletedFor = append(r.deletedFor, memberID)
	return nil
}

type postedMessage struct {
	Channel string
	Text    string
	Blocks  []map[string]any
}

type fakeGateway struct {
	mu sync.Mutex

	failFor map[string]error
	posted  []postedMessage
	opened  []map[string]any
	updated []map[string]any
	users   []slackapi.User
}

func (g *fakeGateway) PostMessage(ctx context.Context, channel, text string, blocks []map[string]any) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failFor[channel]; err != nil {
		return err
	}
	g.posted = append(g.posted, postedMessage{Channel: channel, Text: text, Blocks: blocks})
	return nil
}

func (g *fakeGateway) OpenView(ctx context.Context, triggerID string, view map[string]any) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.opened = append(g.opened, view)
	return nil
}

func (g *fakeGateway) UpdateView(ctx context.Context, viewID string, view map[string]any) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.updated = append(g.updated, view)
	return nil
}

func (g *fakeGateway) ListUsers(ctx context.Context) ([]slackapi.User, error) {
	return g.users, nil
}

type fakeMessages struct {
	atRiskCheckIn  []*db_models.Member
	atRiskAlert    []*db_models.Member
	channelCheckIn int
	channelAlert   int
	dmCheckIn      [][]*db_models.Member
	dmAlert        [][]*db_models.Member
	reminders      [][]*db_models.Member
	lateOverviews  [][]*db_models.Member
}

func (m *fakeMessages) SendCheckInRequestToChannel(ctx context.Context) error {
	m.channelCheckIn++
	return nil
}

func (m *fakeMessages) SendAlertRequestToChannel(ctx context.Context) error {
	m.channelAlert++
	return nil
}

func (m *fakeMessages) SendCheckInRequestToMembers(ctx context.Context, members []*db_models.Member) {
	m.dmCheckIn = append(m.dmCheckIn, members)
}

func (m *fakeMessages) SendAlertRequestToMembers(ctx context.Context, members []*db_models.Member) {
	m.dmAlert = append(m.dmAlert, members)
}

func (m *fakeMessages) SendCheckInReminderToMembers(ctx context.Context, members []*db_models.Member) {
	m.reminders = append(m.reminders, members)
}

func (m *fakeMessages) SendMemberAtRiskNotification(ctx context.Context, member *db_models.Member) error {
	m.atRiskCheckIn = append(m.atRiskCheckIn, member)
	return nil
}

func (m *fakeMessages) SendMemberAtRiskNotificationForAlert(ctx context.Context, member *db_models.Member) error {
	m.atRiskAlert = append(m.atRiskAlert, member)
	return nil
}

func (m *fakeMessages) SendNotificationOfMembersWithLateCheckIn(ctx context.Context, members []*db_models.Member) error {
	m.lateOverviews = append(m.lateOverviews, members)
	return nil
}

type renderedModal struct {
	Kind    string
	Message string
}

type fakeModals struct {
	rendered []renderedModal
}

func (m *fakeModals) record(kind, message string) {
	m.rendered = append(m.rendered, renderedModal{Kind: kind, Message: message})
}

func (m *fakeModals) last() renderedModal {
	if len(m.rendered) == 0 {
		return renderedModal{}
	}
	return m.rendered[len(m.rendered)-1]
}

func (m *fakeModals) RenderCheckInMainMenu(ctx context.Context, params ModalParams) error {
	m.record("checkInMainMenu", "")
	return nil
}

func (m *fakeModals) RenderAlertMainMenu(ctx context.Context, params ModalParams) error {
	m.record("alertMainMenu", "")
	return nil
}

func (m *fakeModals) RenderCheckInConfirmation(ctx context.Context, params ModalParams, member *db_models.Member) error {
	m.record("checkInConfirmation", "")
	return nil
}

func (m *fakeModals) RenderAlertConfirmation(ctx context.Context, params ModalParams, member *db_models.Member) error {
	m.record("alertConfirmation", "")
	return nil
}

func (m *fakeModals) RenderRepeatCheckInConfirmation(ctx context.Context, params ModalParams, member *db_models.Member) error {
	m.record("repeatCheckInConfirmation", "")
	return nil
}

func (m *fakeModals) RenderSuccess(ctx context.Context, params ModalParams) error {
	m.record("success", "")
	return nil
}

func (m *fakeModals) RenderError(ctx context.Context, params ModalParams, message string) error {
	m.record("error", message)
	return nil
}

type fakeMail struct {
	sent []*db_models.Member
}

func (m *fakeMail) SendMemberAtRiskEmail(member *db_models.Member) error {
	m.sent = append(m.sent, member)
	return nil
}

type fakeRoster struct {
	entries []RosterEntry
	err     error
}

func (r *fakeRoster) GetAll(ctx context.Context) ([]RosterEntry, error) {
	return r.entries, r.err
}

type sequenceGenerator struct {
	n int
}

func (g *sequenceGenerator) Generate() string {
	g.n++
	return fmt.Sprintf("token-%d", g.n)
}
