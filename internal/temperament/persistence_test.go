package temperament

import (
	"encoding/json"
	"testing"
)

func TestSlug(t *testing.T) {
	testCases := []struct {
		name string
		want string
	}{
		{"Kirnberger III", "kirnberger_iii"},
		{"  My Tuning!!  ", "my_tuning"},
		{"Werckmeister-III (1691)", "werckmeister_iii_1691"},
		{"****", "custom_tuning"},
		{"", "custom_tuning"},
		{"ABC123", "abc123"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Slug(tc.name); got != tc.want {
				t.Errorf("Slug(%q) = %q, want %q", tc.name, got, tc.want)
			}
		})
	}
}

func TestValidateRecordRejectsEmptyName(t *testing.T) {
	rec := Record{Name: "", Ratios: equalRatios()}
	if err := ValidateRecord(rec); err == nil {
		t.Error("expected an error for an empty name")
	}
}

func TestValidateRecordRejectsNonPositiveRatio(t *testing.T) {
	rec := Record{Name: "Broken", Ratios: [12]float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1}}
	if err := ValidateRecord(rec); err == nil {
		t.Error("expected an error for a non-positive ratio")
	}
}

func TestValidateRecordAcceptsWellFormed(t *testing.T) {
	rec := Record{Name: "My Tuning", Description: "test", Ratios: equalRatios()}
	if err := ValidateRecord(rec); err != nil {
		t.Errorf("ValidateRecord() error = %v, want nil", err)
	}
}

func TestUnmarshalJSONRejectsTooManyRatios(t *testing.T) {
	data := []byte(`{"name":"Bad","ratios":[1,1,1,1,1,1,1,1,1,1,1,1,1]}`)
	var rec Record
	if err := json.Unmarshal(data, &rec); err == nil {
		t.Error("expected an error for a 13-entry ratios array")
	}
}

func TestUnmarshalJSONRejectsTooFewRatios(t *testing.T) {
	data := []byte(`{"name":"Bad","ratios":[1,1,1]}`)
	var rec Record
	if err := json.Unmarshal(data, &rec); err == nil {
		t.Error("expected an error for a 3-entry ratios array")
	}
}

func TestUnmarshalJSONAcceptsExactly12Ratios(t *testing.T) {
	data := []byte(`{"name":"Good","ratios":[1,1,1,1,1,1,1,1,1,1,1,1]}`)
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("Unmarshal() error = %v, want nil", err)
	}
	if err := ValidateRecord(rec); err != nil {
		t.Errorf("ValidateRecord() error = %v, want nil", err)
	}
}
