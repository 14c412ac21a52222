package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/garnizeh/mentormatch/api"
	"github.com/garnizeh/mentormatch/internal/schema"
	"github.com/garnizeh/mentormatch/pkg/models"
	"github.com/garnizeh/mentormatch/pkg/repository/mock"
	"github.com/gorilla/mux"
)

func matchesHandler(t *testing.T, mocks *mock.Mocks) *api.MatchesHandler {
	t.Helper()
	v, err := schema.NewValidator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	return api.NewMatchesHandler(mocks.UserRepo, mocks.MatchRepo, v)
}

func TestCreateMatchRequest(t *testing.T) {
	tests := []struct {
		name       string
		callerID   int64
		callerRole models.Role
		body       string
		wantStatus int
	}{
		{
			name:       "Success",
			callerID:   2,
			callerRole: models.RoleMentee,
			body:       `{"mentorId":1,"menteeId":2,"message":"please <mentor> me"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "MentorCannotCreate",
			callerID:   1,
			callerRole: models.RoleMentor,
			body:       `{"mentorId":1,"menteeId":2,"message":"hi"}`,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "MissingMessage",
			callerID:   2,
			callerRole: models.RoleMentee,
			body:       `{"mentorId":1,"menteeId":2}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "UnknownMentor",
			callerID:   2,
			callerRole: models.RoleMentee,
			body:       `{"mentorId":77,"menteeId":2,"message":"hi"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MenteeAsTarget",
			callerID:   2,
			callerRole: models.RoleMentee,
			body:       `{"mentorId":2,"menteeId":2,"message":"hi"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			seedMentor(mocks)
			seedMentee(mocks)
			h := matchesHandler(t, mocks)

			w := httptest.NewRecorder()
			h.Create(w, authedRequest(http.MethodPost, "/match-requests", []byte(tc.body), tc.callerID, tc.callerRole))

			if w.Result().StatusCode != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, w.Result().StatusCode)
			}
			if tc.wantStatus != http.StatusCreated {
				return
			}
			var got models.MatchRequest
			if err := json.NewDecoder(w.Result().Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Status != models.StatusPending {
				t.Fatalf("new request must be pending, got %q", got.Status)
			}
			if got.MenteeID != tc.callerID {
				t.Fatalf("mentee id must come from the token, got %d", got.MenteeID)
			}
			if got.Message != "please &lt;mentor&gt; me" {
				t.Fatalf("message not escaped: %q", got.Message)
			}
		})
	}
}

func TestCreateMatchRequest_MenteeIDFromToken(t *testing.T) {
	mocks := mock.NewMocks()
	seedMentor(mocks)
	seedMentee(mocks)
	h := matchesHandler(t, mocks)

	// body claims a different mentee; the caller wins
	body := `{"mentorId":1,"menteeId":999,"message":"hi"}`
	w := httptest.NewRecorder()
	h.Create(w, authedRequest(http.MethodPost, "/match-requests", []byte(body), 2, models.RoleMentee))

	if w.Result().StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Result().StatusCode)
	}
	if mocks.MatchRepo.Requests[0].MenteeID != 2 {
		t.Fatalf("stored mentee id %d, want caller id 2", mocks.MatchRepo.Requests[0].MenteeID)
	}
}

func TestIncomingOutgoingRoleGates(t *testing.T) {
	mocks := mock.NewMocks()
	h := matchesHandler(t, mocks)

	w := httptest.NewRecorder()
	h.Incoming(w, authedRequest(http.MethodGet, "/match-requests/incoming", nil, 2, models.RoleMentee))
	if w.Result().StatusCode != http.StatusForbidden {
		t.Fatalf("mentee reading incoming: expected 403, got %d", w.Result().StatusCode)
	}

	w = httptest.NewRecorder()
	h.Outgoing(w, authedRequest(http.MethodGet, "/match-requests/outgoing", nil, 1, models.RoleMentor))
	if w.Result().StatusCode != http.StatusForbidden {
		t.Fatalf("mentor reading outgoing: expected 403, got %d", w.Result().StatusCode)
	}
}

func TestIncoming_EmptyIsArray(t *testing.T) {
	mocks := mock.NewMocks()
	h := matchesHandler(t, mocks)

	w := httptest.NewRecorder()
	h.Incoming(w, authedRequest(http.MethodGet, "/match-requests/incoming", nil, 1, models.RoleMentor))
	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Result().StatusCode)
	}
	var list []models.IncomingMatchRequest
	if err := json.NewDecoder(w.Result().Body).Decode(&list); err != nil {
		t.Fatalf("expected a JSON array: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty array, got %v", list)
	}
}

func TestTransitionHandlers(t *testing.T) {
	type step struct {
		handler    string // accept, reject, cancel
		callerID   int64
		callerRole models.Role
		id         string
	}

	run := func(t *testing.T, h *api.MatchesHandler, s step) *httptest.ResponseRecorder {
		t.Helper()
		w := httptest.NewRecorder()
		req := authedRequest(http.MethodPut, "/match-requests/"+s.id, nil, s.callerID, s.callerRole)
		req = mux.SetURLVars(req, map[string]string{"id": s.id})
		switch s.handler {
		case "accept":
			h.Accept(w, req)
		case "reject":
			h.Reject(w, req)
		case "cancel":
			h.Cancel(w, req)
		}
		return w
	}

	seed := func() (*mock.Mocks, *api.MatchesHandler) {
		mocks := mock.NewMocks()
		seedMentor(mocks)
		seedMentee(mocks)
		mocks.MatchRepo.Requests = append(mocks.MatchRepo.Requests, &models.MatchRequest{
			ID: 1, MentorID: 1, MenteeID: 2, Message: "hi", Status: models.StatusPending,
		})
		return mocks, matchesHandler(t, mocks)
	}

	t.Run("MentorAccepts", func(t *testing.T) {
		mocks, h := seed()
		w := run(t, h, step{handler: "accept", callerID: 1, callerRole: models.RoleMentor, id: "1"})
		if w.Result().StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Result().StatusCode)
		}
		if mocks.MatchRepo.Requests[0].Status != models.StatusAccepted {
			t.Fatalf("status not updated: %q", mocks.MatchRepo.Requests[0].Status)
		}
	})

	t.Run("MenteeCannotAccept", func(t *testing.T) {
		_, h := seed()
		w := run(t, h, step{handler: "accept", callerID: 2, callerRole: models.RoleMentee, id: "1"})
		if w.Result().StatusCode != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Result().StatusCode)
		}
	})

	t.Run("OtherMentorSeesNotFound", func(t *testing.T) {
		mocks, h := seed()
		mocks.UserRepo.Users = append(mocks.UserRepo.Users, &models.User{
			ID: 3, Email: "other@example.com", Role: models.RoleMentor,
		})
		w := run(t, h, step{handler: "accept", callerID: 3, callerRole: models.RoleMentor, id: "1"})
		if w.Result().StatusCode != http.StatusNotFound {
			t.Fatalf("foreign request must look missing, got %d", w.Result().StatusCode)
		}
	})

	t.Run("AcceptTwiceConflicts", func(t *testing.T) {
		_, h := seed()
		run(t, h, step{handler: "accept", callerID: 1, callerRole: models.RoleMentor, id: "1"})
		w := run(t, h, step{handler: "reject", callerID: 1, callerRole: models.RoleMentor, id: "1"})
		if w.Result().StatusCode != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Result().StatusCode)
		}
	})

	t.Run("CancelAfterAcceptConflicts", func(t *testing.T) {
		_, h := seed()
		run(t, h, step{handler: "accept", callerID: 1, callerRole: models.RoleMentor, id: "1"})
		w := run(t, h, step{handler: "cancel", callerID: 2, callerRole: models.RoleMentee, id: "1"})
		if w.Result().StatusCode != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Result().StatusCode)
		}
	})

	t.Run("MenteeCancels", func(t *testing.T) {
		mocks, h := seed()
		w := run(t, h, step{handler: "cancel", callerID: 2, callerRole: models.RoleMentee, id: "1"})
		if w.Result().StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Result().StatusCode)
		}
		if mocks.MatchRepo.Requests[0].Status != models.StatusCancelled {
			t.Fatalf("status not updated: %q", mocks.MatchRepo.Requests[0].Status)
		}
	})

	t.Run("UnknownID", func(t *testing.T) {
		_, h := seed()
		w := run(t, h, step{handler: "accept", callerID: 1, callerRole: models.RoleMentor, id: "99"})
		if w.Result().StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Result().StatusCode)
		}
	})
}
