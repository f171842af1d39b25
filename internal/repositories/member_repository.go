package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"huddle/internal/models/db_models"
)

type MemberRepository interface {
	Create(ctx context.Context, member *db_models.Member) (*db_models.Member, error)
	Update(ctx context.Context, member *db_models.Member) (*db_models.Member, error)
	GetByID(ctx context.Context, id string) (*db_models.Member, error)
	GetByEmail(ctx context.Context, email string) (*db_models.Member, error)
	FindBySlackID(ctx context.Context, slackID string) (*db_models.Member, error)
	FindAnyBySlackID(ctx context.Context, slackID string) (*db_models.Member, error)
	GetAll(ctx context.Context) ([]*db_models.Member, error)
}

type memberRepository struct {
	db                    *gorm.DB
	filterRestricted      bool
	filterUltraRestricted bool
}

func NewMemberRepository(db *gorm.DB, filterRestricted, filterUltraRestricted bool) MemberRepository {
	return &memberRepository{
		db:                    db,
		filterRestricted:      filterRestricted,
		filterUltraRestricted: filterUltraRestricted,
	}
}

// scoped applies the deployment-wide visibility filters. Lookups that must
// see deleted/restricted rows (directory reconciliation) bypass it.
func (r *memberRepository) scoped(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx).Where("is_deleted = ?", false)
	if r.filterRestricted {
		q = q.Where("is_restricted = ?", false)
	}
	if r.filterUltraRestricted {
		q = q.Where("is_ultra_restricted = ?", false)
	}
	return q
}

func (r *memberRepository) Create(ctx context.Context, member *db_models.Member) (*db_models.Member, error) {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return nil, err
	}

	return r.hydrate(ctx, member)
}

func (r *memberRepository) Update(ctx context.Context, member *db_models.Member) (*db_models.Member, error) {
	// Save with Select("*") so false booleans and nil tokens are written.
	if err := r.db.WithContext(ctx).Model(member).Select("*").Omit("created_at").Updates(member).Error; err != nil {
		return nil, err
	}

	return r.hydrate(ctx, member)
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*db_models.Member, error) {
	var member db_models.Member
	err := r.scoped(ctx).First(&member, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.hydrate(ctx, &member)
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*db_models.Member, error) {
	var member db_models.Member
	err := r.scoped(ctx).First(&member, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.hydrate(ctx, &member)
}

func (r *memberRepository) FindBySlackID(ctx context.Context, slackID string) (*db_models.Member, error) {
	var member db_models.Member
	err := r.scoped(ctx).First(&member, "slack_id = ?", slackID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.hydrate(ctx, &member)
}

// FindAnyBySlackID ignores the visibility filters so reconciliation can
// match members that were previously marked deleted or restricted.
func (r *memberRepository) FindAnyBySlackID(ctx context.Context, slackID string) (*db_models.Member, error) {
	var member db_models.Member
	err := r.db.WithContext(ctx).First(&member, "slack_id = ?", slackID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.hydrate(ctx, &member)
}

func (r *memberRepository) GetAll(ctx context.Context) ([]*db_models.Member, error) {
	var members []*db_models.Member
	if err := r.scoped(ctx).Find(&members).Error; err != nil {
		return nil, err
	}

	return r.hydrateAll(ctx, members)
}

// hydrate attaches the member's current check-in and alert, each the most
// recent row by creation time.
func (r *memberRepository) hydrate(ctx context.Context, member *db_models.Member) (*db_models.Member, error) {
	var checkIn db_models.CheckIn
	err := r.db.WithContext(ctx).
		Where("member_id = ?", member.ID).
		Order("created_at DESC").
		First(&checkIn).Error
	switch {
	case err == nil:
		member.CheckIn = &checkIn
	case errors.Is(err, gorm.ErrRecordNotFound):
		member.CheckIn = nil
	default:
		return nil, err
	}

	var alert db_models.Alert
	err = r.db.WithContext(ctx).
		Where("member_id = ?", member.ID).
		Order("created_at DESC").
		First(&alert).Error
	switch {
	case err == nil:
		member.Alert = &alert
	case errors.Is(err, gorm.ErrRecordNotFound):
		member.Alert = nil
	default:
		return nil, err
	}

	return member, nil
}

func (r *memberRepository) hydrateAll(ctx context.Context, members []*db_models.Member) ([]*db_models.Member, error) {
	if len(members) == 0 {
		return members, nil
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}

	// DISTINCT ON picks the newest row per member in a single query.
	var checkIns []*db_models.CheckIn
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Model(&db_models.CheckIn{}).
			Select("DISTINCT ON (member_id) id").
			Where("member_id IN ?", ids).
			Order("member_id, created_at DESC")).
		Find(&checkIns).Error
	if err != nil {
		return nil, err
	}

	var alerts []*db_models.Alert
	err = r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Model(&db_models.Alert{}).
			Select("DISTINCT ON (member_id) id").
			Where("member_id IN ?", ids).
			Order("member_id, created_at DESC")).
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}

	checkInByMember := make(map[uuid.UUID]*db_models.CheckIn, len(checkIns))
	for _, c := range checkIns {
		checkInByMember[c.MemberID] = c
	}
	alertByMember := make(map[uuid.UUID]*db_models.Alert, len(alerts))
	for _, a := range alerts {
		alertByMember[a.MemberID] = a
	}

	for _, m := range members {
		m.CheckIn = checkInByMember[m.ID]
		m.Alert = alertByMember[m.ID]
	}

	return members, nil
}
