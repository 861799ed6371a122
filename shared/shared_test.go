package shared_test

import (
	"reflect"
	"testing"

	"shareit/shared"
	"shareit/shared/constant"
	"shareit/shared/dto"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "false", input: "false", expected: boolPtr(false)},
		{name: "numeric true", input: "1", expected: boolPtr(true)},
		{name: "garbage returns nil", input: "yes please", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}

				return
			}

			if result == nil || *result != *tt.expected {
				t.Errorf("expected %v, got %v", *tt.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updatePayload struct {
		Name        string `db:"name"`
		Description string `db:"description"`
		Available   *bool  `db:"available"`
		Ignored     string
	}

	fields := shared.TransformFields(updatePayload{
		Name:      "Drill",
		Available: boolPtr(false),
		Ignored:   "nope",
	})

	if fields["name"] != "Drill" {
		t.Errorf("expected name to be Drill, got %v", fields["name"])
	}

	if _, ok := fields["description"]; ok {
		t.Error("expected blank description to be skipped")
	}

	if _, ok := fields["available"]; !ok {
		t.Error("expected non-nil available pointer to be included")
	}

	if _, ok := fields["Ignored"]; ok {
		t.Error("expected fields without a db tag to be skipped")
	}

	if _, ok := fields[constant.FieldModifiedAt]; !ok {
		t.Error("expected modified_at to always be set")
	}
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("abc", "id", "users")

	expected := dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    "id",
				Value:    "abc",
				Operator: dto.FilterOperatorEq,
				Table:    "users",
			},
		},
	}

	if !reflect.DeepEqual(filter, expected) {
		t.Errorf("expected %+v, got %+v", expected, filter)
	}
}

func TestBuildCacheKey(t *testing.T) {
	if got := shared.BuildCacheKey("limiter", "1.2.3.4", "agent"); got != "limiter:1.2.3.4:agent" {
		t.Errorf("unexpected cache key %s", got)
	}
}
