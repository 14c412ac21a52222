package repository

import (
	"context"
	"errors"

	"github.com/garnizeh/mentormatch/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

// Sentinel errors handlers need to tell apart. ErrNotFound covers both a
// missing record and a record not owned by the caller, so callers cannot
// probe which ids exist. ErrConflict is returned when a transition is
// attempted on a request that already left the pending state.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("status conflict")
)

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, p *models.Profile) error
	ListMentors(ctx context.Context, skill, orderBy string) ([]models.User, error)
}

type MatchRequestRepo interface {
	CreateMatchRequest(ctx context.Context, m *models.MatchRequest) (int64, error)
	GetMatchRequest(ctx context.Context, id int64) (*models.MatchRequest, error)
	ListIncoming(ctx context.Context, mentorID int64) ([]models.IncomingMatchRequest, error)
	ListOutgoing(ctx context.Context, menteeID int64) ([]models.MatchRequest, error)

	// Transition moves a pending request to status on behalf of the actor.
	// Mentors must own the request's mentor side, mentees the mentee side.
	// It returns ErrNotFound when the record is absent or not owned by the
	// actor and ErrConflict when the record already left the pending state.
	Transition(ctx context.Context, id int64, actorID int64, actorRole models.Role, status models.MatchStatus) error
}
