package domain

import "encoding/json"

// LeadForm is the contact form as the landing page submits it. Fields are
// raw user input; validation and trimming happen in the lead pipeline.
type LeadForm struct {
	LastName             string   `json:"lastName"`
	MiddleName           string   `json:"middleName,omitempty"`
	FirstName            string   `json:"firstName"`
	Phone                string   `json:"phone"`
	Email                string   `json:"email"`
	BranchID             string   `json:"branchId"`
	GradeCode            string   `json:"gradeCode"`
	InterestedSubjectIDs []string `json:"interestedSubjectIds,omitempty"`
	Notes                string   `json:"notes,omitempty"`
}

// LeadName is the nested name block of a LeadPayload.
type LeadName struct {
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName"`
	LastName   string `json:"lastName"`
}

// LeadContact is the nested contact block of a LeadPayload.
type LeadContact struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// LeadPayload is the wire shape the tenant API expects at POST /leads/public.
// Source is always the fixed literal "campaign"; it is not user-editable.
type LeadPayload struct {
	Name                 LeadName    `json:"name"`
	Contact              LeadContact `json:"contact"`
	Source               string      `json:"source"`
	GradeCode            string      `json:"gradeCode"`
	InterestedSubjectIDs []string    `json:"interestedSubjectIds"`
	Notes                string      `json:"notes"`
	BranchID             string      `json:"branchId"`
	CourseID             *string     `json:"courseId"`
}

// LeadReceipt is whatever the tenant API answered on a successful creation.
// The body is kept verbatim; callers only need to hand it back to the page.
type LeadReceipt struct {
	Body json.RawMessage
}
