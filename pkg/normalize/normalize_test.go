package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/entities"
)

func TestRecord_DiscardsBlankNames(t *testing.T) {
	testCases := []struct {
		name string
		raw  map[string]interface{}
	}{
		{"missing name", map[string]interface{}{"full_address": "1 Main St"}},
		{"empty name", map[string]interface{}{"name": ""}},
		{"whitespace name", map[string]interface{}{"name": "   "}},
		{"nil name", map[string]interface{}{"name": nil}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := Record(tc.raw)
			assert.False(t, ok)
		})
	}
}

func TestRecord_CandidateKeyFallback(t *testing.T) {
	testCases := []struct {
		name     string
		raw      map[string]interface{}
		expected entities.Clinic
	}{
		{
			name: "snake_case keys",
			raw: map[string]interface{}{
				"name":         "Lakeview Veterinary Clinic",
				"full_address": "3518 Monroe St",
				"city":         "Madison",
				"phone":        "(608) 555-0101",
			},
			expected: entities.Clinic{
				Name:       "Lakeview Veterinary Clinic",
				Address:    "3518 Monroe St",
				City:       "Madison",
				Phone:      "(608) 555-0101",
				Categories: []string{DefaultCategory},
			},
		},
		{
			name: "human readable legacy headers",
			raw: map[string]interface{}{
				"Clinic Name": "Westside Animal Hospital",
				"Address":     "102 Junction Rd",
				"Phone":       "(608) 555-0102",
			},
			expected: entities.Clinic{
				Name:       "Westside Animal Hospital",
				Address:    "102 Junction Rd",
				City:       DefaultCity,
				Phone:      "(608) 555-0102",
				Categories: []string{DefaultCategory},
			},
		},
		{
			name: "current convention wins over legacy",
			raw: map[string]interface{}{
				"name":        "Current Name",
				"clinic_name": "Legacy Name",
			},
			expected: entities.Clinic{
				Name:       "Current Name",
				Address:    DefaultAddress,
				City:       DefaultCity,
				Phone:      DefaultPhone,
				Categories: []string{DefaultCategory},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clinic, ok := Record(tc.raw)
			require.True(t, ok)
			assert.Equal(t, tc.expected, clinic)
		})
	}
}

func TestRecord_DefaultsWhenFieldsAbsent(t *testing.T) {
	clinic, ok := Record(map[string]interface{}{"name": "Bare Minimum Vet"})
	require.True(t, ok)

	assert.Equal(t, DefaultAddress, clinic.Address)
	assert.Equal(t, DefaultCity, clinic.City)
	assert.Equal(t, DefaultPhone, clinic.Phone)
	assert.Equal(t, []string{DefaultCategory}, clinic.Categories)
	assert.Nil(t, clinic.GoogleRating)
	assert.Nil(t, clinic.GoogleReviewCount)
}

func TestRecord_NumericEnrichmentFields(t *testing.T) {
	clinic, ok := Record(map[string]interface{}{
		"name":                "Rated Vet",
		"google_rating":       4.5,
		"google_review_count": int64(120),
	})
	require.True(t, ok)

	require.NotNil(t, clinic.GoogleRating)
	assert.Equal(t, 4.5, *clinic.GoogleRating)
	require.NotNil(t, clinic.GoogleReviewCount)
	assert.Equal(t, 120, *clinic.GoogleReviewCount)
}

func TestMergeCategories_BraceDelimitedString(t *testing.T) {
	result := MergeCategories(`{Emergency,"Urgent Care"}`, "")
	assert.Equal(t, []string{"Emergency", "Urgent Care"}, result)
}

func TestMergeCategories_PostgresArrayBytes(t *testing.T) {
	result := MergeCategories([]byte(`{Emergency,"Urgent Care"}`), "")
	assert.Equal(t, []string{"Emergency", "Urgent Care"}, result)
}

func TestMergeCategories_EmergencyStatusFirstNoDuplicate(t *testing.T) {
	result := MergeCategories([]string{"Emergency", "Wellness"}, "Emergency")
	assert.Equal(t, []string{"Emergency", "Wellness"}, result)
}

func TestMergeCategories_EmergencyStatusLeads(t *testing.T) {
	result := MergeCategories([]string{"Wellness", "Surgery"}, "Emergency")
	assert.Equal(t, []string{"Emergency", "Wellness", "Surgery"}, result)
}

func TestMergeCategories_EmptyResultGetsDefault(t *testing.T) {
	testCases := []struct {
		name string
		raw  interface{}
	}{
		{"nil value", nil},
		{"empty array", []string{}},
		{"empty string", ""},
		{"unsupported type", 42},
		{"whitespace elements", []string{"  ", ""}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, []string{DefaultCategory}, MergeCategories(tc.raw, ""))
		})
	}
}

func TestMergeCategories_CommaSeparatedString(t *testing.T) {
	result := MergeCategories("Wellness, Surgery , Dental", "")
	assert.Equal(t, []string{"Wellness", "Surgery", "Dental"}, result)
}

func TestMergeCategories_CaseSensitiveSetSemantics(t *testing.T) {
	result := MergeCategories([]string{"Emergency", "emergency"}, "")
	assert.Equal(t, []string{"Emergency", "emergency"}, result)
}

func TestClinic_IdempotentRenormalization(t *testing.T) {
	first, ok := Record(map[string]interface{}{
		"name":             "  Capital City Vet  ",
		"categories":       `{Emergency,"Urgent Care",Wellness}`,
		"emergency_status": "Emergency",
	})
	require.True(t, ok)

	second, ok := Clinic(first)
	require.True(t, ok)
	assert.Equal(t, first, second)

	third, ok := Clinic(second)
	require.True(t, ok)
	assert.Equal(t, second.Categories, third.Categories)
}

func TestClinic_FillsDefaultsDefensively(t *testing.T) {
	c, ok := Clinic(entities.Clinic{Name: "Snapshot Vet"})
	require.True(t, ok)
	assert.Equal(t, DefaultAddress, c.Address)
	assert.Equal(t, DefaultCity, c.City)
	assert.Equal(t, DefaultPhone, c.Phone)
	assert.Equal(t, []string{DefaultCategory}, c.Categories)

	_, ok = Clinic(entities.Clinic{Name: "  "})
	assert.False(t, ok)
}
