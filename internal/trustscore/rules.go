package trustscore

import (
	"fmt"
	"strings"

	"trustbridge/internal/domain"
)

// Identity bonus points. The terms sum to 20; the score is still capped at
// domain.MaxIdentityScore, a policy ceiling below the raw maximum.
const (
	panVerifiedBonus    = 8
	aadhaarPresentBonus = 6
	phoneMatchBonus     = 4
	namePresentBonus    = 2
)

// scoreIdentity applies the additive identity bonuses and caps the result.
// The terms are order-independent; the explanation records every term,
// including the zero-valued ones, pipe-joined.
func scoreIdentity(extraction domain.IdentityExtraction, panVerified bool, suppliedPhone string) (int, string) {
	score := 0
	var parts []string

	if panVerified {
		score += panVerifiedBonus
		parts = append(parts, fmt.Sprintf("PAN matched with government records (+%d)", panVerifiedBonus))
	}
	if extraction.AadhaarNumber != "" {
		score += aadhaarPresentBonus
		parts = append(parts, fmt.Sprintf("Aadhaar number successfully extracted (+%d)", aadhaarPresentBonus))
	}
	if extraction.Phone != "" && extraction.Phone == suppliedPhone {
		score += phoneMatchBonus
		parts = append(parts, fmt.Sprintf("Phone number matches the submitted one (+%d)", phoneMatchBonus))
	} else {
		parts = append(parts, "Phone number mismatch or not found (+0)")
	}
	if extraction.Name != "" {
		score += namePresentBonus
		parts = append(parts, fmt.Sprintf("Name extracted from document (+%d)", namePresentBonus))
	} else {
		parts = append(parts, "Name not extracted from any document (+0)")
	}

	if score > domain.MaxIdentityScore {
		score = domain.MaxIdentityScore
	}
	return score, strings.Join(parts, " | ")
}
