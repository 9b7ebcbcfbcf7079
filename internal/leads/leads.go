// Package leads implements the consultation-form pipeline: local
// validation, payload normalization and submission to the tenant API.
package leads

import (
	"context"
	"regexp"
	"strings"

	"github.com/centerplus/centerplus-landing/gateway/internal/domain"
	"github.com/centerplus/centerplus-landing/gateway/internal/logger"
	"github.com/centerplus/centerplus-landing/gateway/internal/ports"
)

// ValidationError is a pre-flight form failure. One is surfaced at a time:
// validation stops at the first failing rule and never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	phonePattern = regexp.MustCompile(`^\d{8,11}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Validate checks the form rules in a fixed order and returns the first
// failure as a *ValidationError, or nil when the form is submittable.
func Validate(form *domain.LeadForm) error {
	if strings.TrimSpace(form.LastName) == "" {
		return &ValidationError{Field: "lastName", Message: "Vui lòng nhập họ"}
	}
	if strings.TrimSpace(form.FirstName) == "" {
		return &ValidationError{Field: "firstName", Message: "Vui lòng nhập tên"}
	}
	phone := strings.TrimSpace(form.Phone)
	if phone == "" {
		return &ValidationError{Field: "phone", Message: "Vui lòng nhập số điện thoại"}
	}
	if !phonePattern.MatchString(phone) {
		return &ValidationError{Field: "phone", Message: "Số điện thoại không hợp lệ"}
	}
	email := strings.TrimSpace(form.Email)
	if email == "" {
		return &ValidationError{Field: "email", Message: "Vui lòng nhập email"}
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Message: "Email không hợp lệ"}
	}
	if strings.TrimSpace(form.BranchID) == "" {
		return &ValidationError{Field: "branchId", Message: "Vui lòng chọn chi nhánh"}
	}
	if strings.TrimSpace(form.GradeCode) == "" {
		return &ValidationError{Field: "gradeCode", Message: "Vui lòng chọn khối lớp"}
	}
	return nil
}

// BuildPayload reshapes a validated form into the wire payload. All string
// fields are trimmed and source is pinned to "campaign"; it is never
// user-editable, even when the page shows a source selector.
func BuildPayload(form *domain.LeadForm, courseID string) *domain.LeadPayload {
	subjectIDs := make([]string, 0, len(form.InterestedSubjectIDs))
	for _, id := range form.InterestedSubjectIDs {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			subjectIDs = append(subjectIDs, trimmed)
		}
	}

	payload := &domain.LeadPayload{
		Name: domain.LeadName{
			FirstName:  strings.TrimSpace(form.FirstName),
			MiddleName: strings.TrimSpace(form.MiddleName),
			LastName:   strings.TrimSpace(form.LastName),
		},
		Contact: domain.LeadContact{
			Phone: strings.TrimSpace(form.Phone),
			Email: strings.TrimSpace(form.Email),
		},
		Source:               "campaign",
		GradeCode:            strings.TrimSpace(form.GradeCode),
		InterestedSubjectIDs: subjectIDs,
		Notes:                strings.TrimSpace(form.Notes),
		BranchID:             strings.TrimSpace(form.BranchID),
	}
	if courseID != "" {
		payload.CourseID = &courseID
	}
	return payload
}

// Pipeline submits leads through the tenant API.
type Pipeline struct {
	api ports.TenantAPI
	log *logger.Logger
}

// NewPipeline creates a lead pipeline.
func NewPipeline(api ports.TenantAPI, log *logger.Logger) *Pipeline {
	return &Pipeline{api: api, log: log}
}

// Submit validates the form, normalizes it and posts it once. No automatic
// retry on any failure; a successful receipt is returned as-is and the
// caller owns resetting the form.
func (p *Pipeline) Submit(ctx context.Context, form *domain.LeadForm, courseID string) (*domain.LeadReceipt, error) {
	if err := Validate(form); err != nil {
		return nil, err
	}

	payload := BuildPayload(form, courseID)
	receipt, err := p.api.CreateLead(ctx, payload)
	if err != nil {
		p.log.Warn("lead submission failed", "branch_id", payload.BranchID, "error", err)
		return nil, err
	}

	p.log.Info("lead created", "branch_id", payload.BranchID, "grade_code", payload.GradeCode)
	return receipt, nil
}
