package trustscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractIdentityFields(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantPAN     string
		wantAadhaar string
		wantName    string
		wantPhone   string
	}{
		{
			name:        "all fields present",
			text:        "Name: Ravi Kumar\nPAN: ABCDE1234F\nAadhaar: 1234 5678 9012\nPhone: 9876543210",
			wantPAN:     "ABCDE1234F",
			wantAadhaar: "123456789012",
			wantName:    "Ravi Kumar",
			wantPhone:   "9876543210",
		},
		{
			name:    "pan split by spaces still matches",
			text:    "PAN: ABCDE 1234 F",
			wantPAN: "ABCDE1234F",
		},
		{
			name:        "aadhaar without spaces",
			text:        "Aadhaar: 123456789012",
			wantAadhaar: "123456789012",
		},
		{
			name:     "name with dash separator",
			text:     "name - Priya Sharma\nextra line",
			wantName: "Priya Sharma",
		},
		{
			name:     "name capture stops at line end",
			text:     "Name: Ravi Kumar\nAddress Street",
			wantName: "Ravi Kumar",
		},
		{
			name: "phone shorter than ten digits ignored",
			text: "Phone: 98765",
		},
		{
			name: "lowercase pan rejected",
			text: "abcde1234f",
		},
		{
			name: "pan with too few letters rejected",
			text: "ABCD1234F",
		},
		{
			name: "empty text yields nothing",
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractIdentityFields(tt.text)
			assert.Equal(t, tt.wantPAN, got.PANNumber)
			assert.Equal(t, tt.wantAadhaar, got.AadhaarNumber)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantPhone, got.Phone)
		})
	}
}

func TestExtractPANFormat(t *testing.T) {
	accepted := []string{"ABCDE1234F", "ZZZZZ0000A", "XYZAB9876K"}
	rejected := []string{"ABCD1234F", "ABCDE123F", "ABCDE12345", "abcde1234f", "1234567890"}

	for _, pan := range accepted {
		got := ExtractIdentityFields("PAN: " + pan)
		assert.Equal(t, pan, got.PANNumber, "expected %q to be accepted", pan)
	}
	for _, pan := range rejected {
		got := ExtractIdentityFields(pan)
		assert.Empty(t, got.PANNumber, "expected %q to be rejected", pan)
	}
}

func TestParseScoreJudgment(t *testing.T) {
	tests := []struct {
		name            string
		text            string
		wantScore       int
		wantParsed      bool
		wantExplanation string
	}{
		{
			name:            "well formed verdict",
			text:            "Score: 45\nExplanation: Consistent payments across three documents.",
			wantScore:       45,
			wantParsed:      true,
			wantExplanation: "Consistent payments across three documents.",
		},
		{
			name:            "case insensitive labels",
			text:            "score: 52\nexplanation: Strong history.",
			wantScore:       52,
			wantParsed:      true,
			wantExplanation: "Strong history.",
		},
		{
			name:            "multiline explanation preserved",
			text:            "Score: 30\nExplanation: Partial data.\nSome documents outdated.",
			wantScore:       30,
			wantParsed:      true,
			wantExplanation: "Partial data.\nSome documents outdated.",
		},
		{
			name:            "score above range clamped to sixty",
			text:            "Score: 150\nExplanation: too generous",
			wantScore:       60,
			wantParsed:      true,
			wantExplanation: "too generous",
		},
		{
			name:            "missing score line falls back",
			text:            "The documents look fine overall.",
			wantScore:       5,
			wantParsed:      false,
			wantExplanation: "Score could not be determined from documents.",
		},
		{
			name:            "empty verdict falls back",
			text:            "",
			wantScore:       5,
			wantParsed:      false,
			wantExplanation: "Score could not be determined from documents.",
		},
		{
			name:            "score without explanation keeps canned text",
			text:            "Score: 20",
			wantScore:       20,
			wantParsed:      true,
			wantExplanation: "Score could not be determined from documents.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseScoreJudgment(tt.text, 5)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantParsed, got.Parsed)
			assert.Equal(t, tt.wantExplanation, got.Explanation)
		})
	}
}
