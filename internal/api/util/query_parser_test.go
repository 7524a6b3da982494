package util

import (
	"reflect"
	"testing"
	"time"
)

func TestParseQueryString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []QueryFilter
		wantErr bool
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "implicit equality",
			input: "name|Juan",
			want:  []QueryFilter{{Field: "name", Operator: OpEq, Value: "Juan"}},
		},
		{
			name:  "unary blank check",
			input: "description|isblank",
			want:  []QueryFilter{{Field: "description", Operator: OpIsBlank}},
		},
		{
			name:  "case-insensitive prefix",
			input: "name|IStartsWith|ju",
			want:  []QueryFilter{{Field: "name", Operator: OpIStartsWith, Value: "ju"}},
		},
		{
			name:  "several conditions",
			input: "price|gt|10, price|lte|100",
			want: []QueryFilter{
				{Field: "price", Operator: OpGt, Value: "10"},
				{Field: "price", Operator: OpLte, Value: "100"},
			},
		},
		{
			name:    "unknown operator",
			input:   "name|like|ju",
			wantErr: true,
		},
		{
			name:    "too many parts",
			input:   "a|b|c|d",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQueryString(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseQueryString(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseQueryString(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseOrderString(t *testing.T) {
	got, err := ParseOrderString("name|DESC,clientid|asc")
	if err != nil {
		t.Fatalf("ParseOrderString failed: %v", err)
	}
	want := []OrderClause{
		{Field: "name", Direction: OrderDesc},
		{Field: "clientid", Direction: OrderAsc},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseOrderString = %+v, want %+v", got, want)
	}

	if _, err := ParseOrderString("name|sideways"); err == nil {
		t.Error("expected error for invalid direction")
	}
}

func TestValidateFields(t *testing.T) {
	allowed := []string{"clientid", "name", "email"}

	if err := ValidateFilterFields([]QueryFilter{{Field: "name"}}, allowed); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateFilterFields([]QueryFilter{{Field: "password"}}, allowed); err == nil {
		t.Error("expected error for unknown filter field")
	}
	if err := ValidateOrderFields([]OrderClause{{Field: "password"}}, allowed); err == nil {
		t.Error("expected error for unknown order field")
	}
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"2025-05-03", time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC), false},
		{"2025-05-03T10:30", time.Date(2025, 5, 3, 10, 30, 0, 0, time.UTC), false},
		{"2025-05-03 10:30:15", time.Date(2025, 5, 3, 10, 30, 15, 0, time.UTC), false},
		{"2025-05-03T12:00:00+02:00", time.Date(2025, 5, 3, 10, 0, 0, 0, time.UTC), false},
		{"03/05/2025", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDateTime(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDateTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseDateTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEndOfDay(t *testing.T) {
	day, err := ParseDateTime("2025-05-03")
	if err != nil {
		t.Fatalf("ParseDateTime failed: %v", err)
	}

	if !IsDateOnly("2025-05-03") || IsDateOnly("2025-05-03T10:00") {
		t.Error("IsDateOnly misclassified its input")
	}

	want := time.Date(2025, 5, 3, 23, 59, 59, 0, time.UTC)
	if got := EndOfDay(day); !got.Equal(want) {
		t.Errorf("EndOfDay = %v, want %v", got, want)
	}
}
