package schema_test

import (
	"context"
	"testing"

	"github.com/garnizeh/mentormatch/internal/schema"
)

func TestValidator(t *testing.T) {
	v, err := schema.NewValidator()
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	ctx := context.Background()

	tests := []struct {
		name    string
		schema  string
		payload string
		wantErr bool
	}{
		{"Signup_Valid", "signup", `{"email":"a@b.c","password":"pw","name":"A","role":"mentor"}`, false},
		{"Signup_MissingRole", "signup", `{"email":"a@b.c","password":"pw","name":"A"}`, true},
		{"Signup_BadRole", "signup", `{"email":"a@b.c","password":"pw","name":"A","role":"admin"}`, true},
		{"Signup_EmptyName", "signup", `{"email":"a@b.c","password":"pw","name":"","role":"mentee"}`, true},
		{"MatchRequest_Valid", "match_request", `{"mentorId":1,"menteeId":2,"message":"hello"}`, false},
		{"MatchRequest_MissingMessage", "match_request", `{"mentorId":1,"menteeId":2}`, true},
		{"MatchRequest_ZeroMentor", "match_request", `{"mentorId":0,"menteeId":2,"message":"hi"}`, true},
		{"MatchRequest_StringID", "match_request", `{"mentorId":"1","menteeId":2,"message":"hi"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.schema, []byte(tt.payload))
			if tt.wantErr && err == nil {
				t.Fatalf("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestValidator_UnknownSchema(t *testing.T) {
	v, err := schema.NewValidator()
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	if err := v.Validate(context.Background(), "nope", []byte(`{}`)); err == nil {
		t.Fatalf("expected error for unknown schema")
	}
}
