package services

import (
	"context"

	"huddle/internal/models/db_models"
	"huddle/internal/repositories"
	"huddle/pkg/utils"
)

type TokenPurpose string

const (
	TokenPurposeCheckIn TokenPurpose = "checkIn"
	TokenPurposeAlert   TokenPurpose = "alert"
)

// TokenAuthority issues and validates the one-time tokens behind check-in
// and alert links. Issuing overwrites any previously issued, unused token;
// validation never consumes — tokens are cleared only on successful
// submission, so a failed submission can be retried with the same link.
type TokenAuthority interface {
	IssueCheckInToken(ctx context.Context, member *db_models.Member) (*db_models.Member, error)
	IssueAlertToken(ctx context.Context, member *db_models.Member) (*db_models.Member, error)
	ValidateToken(member *db_models.Member, supplied string, purpose TokenPurpose) error
}

type tokenAuthority struct {
	members   repositories.MemberRepository
	generator utils.UniqueStringGenerator
}

func NewTokenAuthority(members repositories.MemberRepository, generator utils.UniqueStringGenerator) TokenAuthority {
	return &tokenAuthority{
		members:   members,
		generator: generator,
	}
}

func (t *tokenAuthority) IssueCheckInToken(ctx context.Context, member *db_models.Member) (*db_models.Member, error) {
	token := t.generator.Generate()
	member.CheckInToken = &token

	updated, err := t.members.Update(ctx, member)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return updated, nil
}

func (t *tokenAuthority) IssueAlertToken(ctx context.Context, member *db_models.Member) (*db_models.Member, error) {
	token := t.generator.Generate()
	member.AlertToken = &token

	updated, err := t.members.Update(ctx, member)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return updated, nil
}

func (t *tokenAuthority) ValidateToken(member *db_models.Member, supplied string, purpose TokenPurpose) error {
	var stored *string
	var invalid error

	switch purpose {
	case TokenPurposeCheckIn:
		stored = member.CheckInToken
		invalid = utils.ErrInvalidCheckInToken
	case TokenPurposeAlert:
		stored = member.AlertToken
		invalid = utils.ErrInvalidAlertToken
	default:
		return utils.ErrInvalidCheckInToken
	}

	if stored == nil || *stored != supplied {
		return invalid
	}

	return nil
}
