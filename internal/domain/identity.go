package domain

// IdentityExtraction holds the fields pulled from a user's identity
// documents. Any field may be empty when the document did not yield it.
type IdentityExtraction struct {
	Name          string `json:"name,omitempty"`
	PANNumber     string `json:"pan_number,omitempty"`
	AadhaarNumber string `json:"aadhaar_number,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

// GovernmentRecord is the authoritative identity record keyed by PAN number.
// Read-only to this service.
type GovernmentRecord struct {
	PANNumber string `json:"pan_number"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Verified  bool   `json:"verified"`
}

// FaceMatchResult is the structured judgment returned by the face comparison
// upstream, after the confidence policy has been applied.
type FaceMatchResult struct {
	Match      bool   `json:"match"`
	Confidence int    `json:"confidence"`
	Reason     string `json:"reason"`
}

// Profile is the merge-persisted user profile. The service treats it as
// pass-through storage; only Email is read (for OTP delivery).
type Profile struct {
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Role   string `json:"role,omitempty"`
	Wallet string `json:"wallet,omitempty"`
}
