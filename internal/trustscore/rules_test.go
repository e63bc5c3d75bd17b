package trustscore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trustbridge/internal/domain"
)

func TestScoreIdentity(t *testing.T) {
	tests := []struct {
		name        string
		extraction  domain.IdentityExtraction
		panVerified bool
		phone       string
		wantScore   int
	}{
		{
			name: "all bonuses capped at fifteen",
			extraction: domain.IdentityExtraction{
				Name:          "Ravi Kumar",
				PANNumber:     "ABCDE1234F",
				AadhaarNumber: "123456789012",
				Phone:         "9876543210",
			},
			panVerified: true,
			phone:       "9876543210",
			wantScore:   domain.MaxIdentityScore,
		},
		{
			name: "pan and name only",
			extraction: domain.IdentityExtraction{
				Name:      "Ravi Kumar",
				PANNumber: "ABCDE1234F",
			},
			panVerified: true,
			phone:       "9876543210",
			wantScore:   10,
		},
		{
			name: "phone mismatch earns nothing",
			extraction: domain.IdentityExtraction{
				Name:      "Ravi Kumar",
				PANNumber: "ABCDE1234F",
				Phone:     "1111111111",
			},
			panVerified: true,
			phone:       "9876543210",
			wantScore:   10,
		},
		{
			name: "unverified pan drops its bonus",
			extraction: domain.IdentityExtraction{
				Name:          "Ravi Kumar",
				AadhaarNumber: "123456789012",
			},
			panVerified: false,
			phone:       "9876543210",
			wantScore:   8,
		},
		{
			name:        "nothing extracted scores zero",
			extraction:  domain.IdentityExtraction{},
			panVerified: false,
			phone:       "9876543210",
			wantScore:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, explanation := scoreIdentity(tt.extraction, tt.panVerified, tt.phone)
			assert.Equal(t, tt.wantScore, score)
			assert.NotEmpty(t, explanation)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, domain.MaxIdentityScore)
		})
	}
}

func TestScoreIdentityExplanationRecordsZeroTerms(t *testing.T) {
	_, explanation := scoreIdentity(domain.IdentityExtraction{Name: "Ravi"}, false, "9876543210")
	assert.Contains(t, explanation, "Phone number mismatch or not found (+0)")
	assert.Contains(t, explanation, "Name extracted from document (+2)")
}
