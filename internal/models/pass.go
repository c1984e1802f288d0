package models

import "time"

// ShareMethod is the outcome of probing the client's share capabilities.
type ShareMethod string

const (
	ShareMethodNative      ShareMethod = "native"
	ShareMethodClipboard   ShareMethod = "clipboard"
	ShareMethodUnsupported ShareMethod = "unsupported"
)

// ShareCapabilities is what the client reports it can do.
type ShareCapabilities struct {
	NativeShare bool `json:"nativeShare"`
	Clipboard   bool `json:"clipboard"`
}

// ShareRequest asks for a share plan for a student's pass.
type ShareRequest struct {
	PageURL      string            `json:"pageUrl"`
	Capabilities ShareCapabilities `json:"capabilities"`
}

// SharePayload is handed to the platform share sheet or copied to the clipboard.
type SharePayload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url,omitempty"`
}

// SharePlan lists the attempts the client should make, in order, and the
// notice to show when all of them fail.
type SharePlan struct {
	Attempts    []ShareAttempt `json:"attempts"`
	LinkURL     string         `json:"linkUrl"`
	LinkExpires time.Time      `json:"linkExpiresAt"`
	Copied      string         `json:"copiedMessage"`
	Fallback    string         `json:"fallbackMessage"`
}

// ShareAttempt is one step of the capability probe.
type ShareAttempt struct {
	Method  ShareMethod  `json:"method"`
	Payload SharePayload `json:"payload"`
}

// ShareOutcome is what the client reports after running a plan.
type ShareOutcome string

const (
	ShareOutcomeShared    ShareOutcome = "shared"
	ShareOutcomeCopied    ShareOutcome = "copied"
	ShareOutcomeCancelled ShareOutcome = "cancelled"
	ShareOutcomeFailed    ShareOutcome = "failed"
)

// ShareResultRequest reports how a share plan ended.
type ShareResultRequest struct {
	Method  ShareMethod  `json:"method" validate:"required,oneof=native clipboard unsupported"`
	Outcome ShareOutcome `json:"outcome" validate:"required,oneof=shared copied cancelled failed"`
	Error   string       `json:"error"`
}

// PublicPass is the subset of a student shown through a share link.
type PublicPass struct {
	Name               string        `json:"name"`
	School             string        `json:"school"`
	RegistrationNumber string        `json:"registrationNumber"`
	BloodType          string        `json:"bloodType"`
	SpecialNeeds       bool          `json:"specialNeeds"`
	Status             StudentStatus `json:"status"`
	PhotoURL           string        `json:"photoUrl,omitempty"`
	ExpiresAt          time.Time     `json:"expiresAt"`
}
