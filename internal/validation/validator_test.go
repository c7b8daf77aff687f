// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package validation

import (
	"strings"
	"testing"
)

type conceptInput struct {
	ID string `json:"id" validate:"required,max=16"`
}

type requestInput struct {
	Concepts    []conceptInput `json:"concept_vector" validate:"max=3,dive"`
	AuthorID    string         `json:"author_id,omitempty" validate:"max=8"`
	CountryCode string         `json:"country_code,omitempty" validate:"omitempty,countrycode"`
	Limit       int            `json:"limit" validate:"gte=0,lte=200"`
	Internal    string         `json:"-"`
}

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil {
		t.Fatal("GetValidator() returned nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     requestInput
		wantField string
		wantTag   string
	}{
		{
			name:  "valid",
			input: requestInput{Concepts: []conceptInput{{ID: "C1"}}, CountryCode: "br", Limit: 10},
		},
		{
			name:  "empty is structurally valid",
			input: requestInput{},
		},
		{
			name:      "missing concept id",
			input:     requestInput{Concepts: []conceptInput{{ID: "C1"}, {ID: ""}}},
			wantField: "concept_vector[1].id",
			wantTag:   "required",
		},
		{
			name:      "too many concepts",
			input:     requestInput{Concepts: []conceptInput{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}},
			wantField: "concept_vector",
			wantTag:   "max",
		},
		{
			name:      "author id too long",
			input:     requestInput{AuthorID: "A123456789"},
			wantField: "author_id",
			wantTag:   "max",
		},
		{
			name:      "country code digits",
			input:     requestInput{CountryCode: "B1"},
			wantField: "country_code",
			wantTag:   "countrycode",
		},
		{
			name:      "country code too long",
			input:     requestInput{CountryCode: "BRA"},
			wantField: "country_code",
			wantTag:   "countrycode",
		},
		{
			name:      "limit above range",
			input:     requestInput{Limit: 500},
			wantField: "limit",
			wantTag:   "lte",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verr := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() unexpected error: %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("ValidateStruct() expected %s error on %s", tt.wantTag, tt.wantField)
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
			if !strings.Contains(errs[0].Error(), tt.wantField) {
				t.Errorf("message %q should name the field", errs[0].Error())
			}
		})
	}
}

func TestTranslateError_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input requestInput
		want  string
	}{
		{"required", requestInput{Concepts: []conceptInput{{}}}, "concept_vector[0].id is required"},
		{"slice max", requestInput{Concepts: make([]conceptInput, 4)}, "concept_vector must be at most 3 items"},
		{"string max", requestInput{AuthorID: "A123456789"}, "author_id must be at most 8 characters"},
		{"lte", requestInput{Limit: 201}, "limit must be less than or equal to 200"},
		{"country", requestInput{CountryCode: "1"}, "country_code must be a two-letter country code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verr := ValidateStruct(&tt.input)
			if verr == nil {
				t.Fatal("expected validation error")
			}
			if got := verr.Errors()[0].Error(); got != tt.want {
				t.Errorf("message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	t.Run("single", func(t *testing.T) {
		t.Parallel()
		verr := ValidateStruct(&requestInput{CountryCode: "123"})
		if verr == nil {
			t.Fatal("expected validation error")
		}
		apiErr := verr.ToAPIError()
		if apiErr.Code != "VALIDATION_FAILED" {
			t.Errorf("Code = %q, want VALIDATION_FAILED", apiErr.Code)
		}
		if apiErr.Details["field"] != "country_code" {
			t.Errorf("Details[field] = %v, want country_code", apiErr.Details["field"])
		}
	})

	t.Run("multiple", func(t *testing.T) {
		t.Parallel()
		verr := ValidateStruct(&requestInput{CountryCode: "123", Limit: 999})
		if verr == nil {
			t.Fatal("expected validation error")
		}
		apiErr := verr.ToAPIError()
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok || len(fields) != 2 {
			t.Fatalf("Details[fields] = %v, want two entries", apiErr.Details["fields"])
		}
		if !strings.Contains(apiErr.Message, "; ") {
			t.Errorf("Message %q should join both failures", apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Message != "Validation failed" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})
}
