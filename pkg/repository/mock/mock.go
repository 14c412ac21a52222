package mock

import (
	"context"

	"github.com/garnizeh/mentormatch/pkg/models"
	"github.com/garnizeh/mentormatch/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	UserRepo  *UserRepo
	MatchRepo *MatchRequestRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		UserRepo:  &UserRepo{},
		MatchRepo: &MatchRequestRepo{},
	}
}

// UserRepo is a tiny in-memory stand-in for repository.UserRepo. Tests seed
// Users directly and force failures through the Err fields.
type UserRepo struct {
	Users     []*models.User
	CreateErr error
	ListErr   error
	UpdateErr error

	LastProfile *models.Profile
	nextID      int64
}

var _ repository.UserRepo = (*UserRepo)(nil)

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	stored := *u
	stored.ID = m.nextID
	m.Users = append(m.Users, &stored)
	return stored.ID, nil
}

func (m *UserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range m.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) UpdateProfile(ctx context.Context, id int64, p *models.Profile) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.LastProfile = p
	for _, u := range m.Users {
		if u.ID == id {
			u.Profile = *p
		}
	}
	return nil
}

func (m *UserRepo) ListMentors(ctx context.Context, skill, orderBy string) ([]models.User, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []models.User
	for _, u := range m.Users {
		if u.Role == models.RoleMentor {
			out = append(out, *u)
		}
	}
	return out, nil
}

// MatchRequestRepo is an in-memory stand-in for repository.MatchRequestRepo.
type MatchRequestRepo struct {
	Requests  []*models.MatchRequest
	CreateErr error
	ListErr   error

	// TransitionErr, when set, is returned verbatim from Transition.
	TransitionErr error
	nextID        int64
}

var _ repository.MatchRequestRepo = (*MatchRequestRepo)(nil)

func (m *MatchRequestRepo) CreateMatchRequest(ctx context.Context, mr *models.MatchRequest) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	stored := *mr
	stored.ID = m.nextID
	m.Requests = append(m.Requests, &stored)
	return stored.ID, nil
}

func (m *MatchRequestRepo) GetMatchRequest(ctx context.Context, id int64) (*models.MatchRequest, error) {
	for _, mr := range m.Requests {
		if mr.ID == id {
			return mr, nil
		}
	}
	return nil, nil
}

func (m *MatchRequestRepo) ListIncoming(ctx context.Context, mentorID int64) ([]models.IncomingMatchRequest, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []models.IncomingMatchRequest
	for i := len(m.Requests) - 1; i >= 0; i-- {
		if m.Requests[i].MentorID == mentorID {
			out = append(out, models.IncomingMatchRequest{MatchRequest: *m.Requests[i]})
		}
	}
	return out, nil
}

func (m *MatchRequestRepo) ListOutgoing(ctx context.Context, menteeID int64) ([]models.MatchRequest, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []models.MatchRequest
	for i := len(m.Requests) - 1; i >= 0; i-- {
		if m.Requests[i].MenteeID == menteeID {
			out = append(out, *m.Requests[i])
		}
	}
	return out, nil
}

func (m *MatchRequestRepo) Transition(ctx context.Context, id, actorID int64, actorRole models.Role, status models.MatchStatus) error {
	if m.TransitionErr != nil {
		return m.TransitionErr
	}
	for _, mr := range m.Requests {
		if mr.ID != id {
			continue
		}
		owner := mr.MenteeID
		if actorRole == models.RoleMentor {
			owner = mr.MentorID
		}
		if owner != actorID {
			return repository.ErrNotFound
		}
		if mr.Status != models.StatusPending {
			return repository.ErrConflict
		}
		mr.Status = status
		return nil
	}
	return repository.ErrNotFound
}
