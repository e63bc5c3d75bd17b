// Package vision defines the document-understanding adapter consumed by the
// scoring services. Implementations call an external generative model; the
// interface keeps scorers testable with doubles.
package vision

import "context"

// Document is one uploaded file forwarded to the model.
type Document struct {
	Filename string
	MIMEType string
	Bytes    []byte
}

// AllowedMIMEType reports whether the upload type is accepted. Unsupported
// files are skipped, not rejected, matching the upload semantics.
func AllowedMIMEType(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/png", "application/pdf":
		return true
	}
	return false
}

// FaceJudgment is the raw structured verdict from the face comparison model,
// before any confidence policy is applied.
type FaceJudgment struct {
	Match      bool   `json:"match"`
	Confidence int    `json:"confidence"`
	Reason     string `json:"reason"`
}

//go:generate mockgen -source=vision.go -destination=mocks/vision-mocks.go -package=mocks Judge

// Judge is the external AI collaborator. All calls are synchronous,
// unbounded-latency I/O; callers own retry policy.
type Judge interface {
	// ExtractIdentity returns free text with labeled identity fields
	// (Name/PAN/Aadhaar/Phone) extracted from the document.
	ExtractIdentity(ctx context.Context, doc Document) (string, error)

	// ExtractFinancials returns free text describing the financial document
	// (type, amount, dates, payment consistency).
	ExtractFinancials(ctx context.Context, doc Document) (string, error)

	// ScoreFinancials judges combined financial extractions and returns free
	// text expected to contain "Score:" and "Explanation:" lines.
	ScoreFinancials(ctx context.Context, combined string) (string, error)

	// CompareFaces compares a live capture against a document photo and
	// returns a structured verdict. An unparseable model response is an
	// error, never a default.
	CompareFaces(ctx context.Context, live, doc Document) (FaceJudgment, error)
}
