package services

import "context"

// RosterEntry is the external directory's view of a person. It is an input
// to reconciliation and is never persisted directly.
type RosterEntry struct {
	ID                string
	Name              string
	Email             string
	IsDeleted         bool
	IsRestricted      bool
	IsUltraRestricted bool
}

// RosterProvider supplies the current directory snapshot.
type RosterProvider interface {
	GetAll(ctx context.Context) ([]RosterEntry, error)
}

type slackMemberService struct {
	gateway SlackGateway
}

func NewSlackMemberService(gateway SlackGateway) RosterProvider {
	return &slackMemberService{gateway: gateway}
}

func (s *slackMemberService) GetAll(ctx context.Context) ([]RosterEntry, error) {
	users, err := s.gateway.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]RosterEntry, 0, len(users))
	for _, user := range users {
		if user.IsBot || user.ID == "USLACKBOT" {
			continue
		}

		entries = append(entries, RosterEntry{
			ID:                user.ID,
			Name:              user.Profile.RealName,
			Email:             user.Profile.Email,
			IsDeleted:         user.Deleted,
			IsRestricted:      user.IsRestricted,
			IsUltraRestricted: user.IsUltraRestricted,
		})
	}

	return entries, nil
}
