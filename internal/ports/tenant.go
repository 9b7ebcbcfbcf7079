// Package ports defines the interfaces the gateway's handlers depend on,
// keeping the tenant-API adapter swappable (and fakeable in tests).
package ports

import (
	"context"

	"github.com/centerplus/centerplus-landing/gateway/internal/domain"
)

// Branch is a tutoring-center location as the public API lists it.
type Branch struct {
	ID         string `json:"id,omitempty"`
	MongoID    string `json:"_id,omitempty"`
	Name       string `json:"name,omitempty"`
	BranchName string `json:"branchName,omitempty"`
	Address    string `json:"address,omitempty"`
}

// Key returns the branch identifier across schema generations.
func (b Branch) Key() string {
	if b.ID != "" {
		return b.ID
	}
	return b.MongoID
}

// DisplayName returns the branch name across schema generations.
func (b Branch) DisplayName() string {
	if b.Name != "" {
		return b.Name
	}
	if b.BranchName != "" {
		return b.BranchName
	}
	return "Chi nhánh"
}

// Subject is a teachable subject as the public API lists it.
type Subject struct {
	ID          string `json:"id,omitempty"`
	MongoID     string `json:"_id,omitempty"`
	Name        string `json:"name,omitempty"`
	SubjectName string `json:"subjectName,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Key returns the subject identifier across schema generations.
func (s Subject) Key() string {
	if s.ID != "" {
		return s.ID
	}
	return s.MongoID
}

// DisplayName returns the subject name across schema generations.
func (s Subject) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	if s.SubjectName != "" {
		return s.SubjectName
	}
	return "Môn học"
}

// SubjectQuery is the filter accepted by the subject listing.
type SubjectQuery struct {
	Status string
	Limit  int
	Page   int
	Search string
}

// TenantAPI is the surface of the external CenterPlus backend the gateway
// consumes.
type TenantAPI interface {
	// FetchCourses returns the public course list.
	FetchCourses(ctx context.Context) ([]domain.CourseRecord, error)

	// FetchCourseByID returns one course.
	FetchCourseByID(ctx context.Context, courseID string) (*domain.CourseRecord, error)

	// FetchSubjects returns the public subject list filtered by the query.
	FetchSubjects(ctx context.Context, query SubjectQuery) ([]Subject, error)

	// FetchBranches returns the public branch list.
	FetchBranches(ctx context.Context) ([]Branch, error)

	// CreateLead posts a normalized lead payload and returns the receipt.
	CreateLead(ctx context.Context, payload *domain.LeadPayload) (*domain.LeadReceipt, error)
}
