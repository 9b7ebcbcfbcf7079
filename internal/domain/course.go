// Package domain contains the entities exchanged with the tenant API.
//
// Course records arrive loosely typed: the tenant API has gone through a few
// schema generations and different deployments still answer with different
// field names. The types here absorb that variance at the JSON boundary so
// the rest of the gateway works with one shape.
package domain

import (
	"encoding/json"
	"strings"
)

// Money is an amount in a currency as the tenant API sends it.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency,omitempty"`
}

// PricingOverride is an administrator-set price that supersedes the course's
// default tuition schedule when IsOverridden is true.
type PricingOverride struct {
	IsOverridden                    bool              `json:"isOverridden"`
	OverriddenPrice                 *Money            `json:"overriddenPrice,omitempty"`
	OverriddenMonthlyPriceByMode    map[string]*Money `json:"overriddenMonthlyPriceByMode,omitempty"`
	OverriddenPerSessionPriceByMode map[string]*Money `json:"overriddenPerSessionPriceByMode,omitempty"`
}

// LegacyPrice is the oldest pricing field: either a free-form string
// ("Liên hệ") or a bare number.
type LegacyPrice struct {
	Text      string
	Number    float64
	IsText    bool
	IsNumeric bool
}

// UnmarshalJSON accepts a JSON string or number; anything else is ignored.
func (p *LegacyPrice) UnmarshalJSON(data []byte) error {
	var s string
	if json.Unmarshal(data, &s) == nil {
		p.Text = s
		p.IsText = true
		return nil
	}
	var n float64
	if json.Unmarshal(data, &n) == nil {
		p.Number = n
		p.IsNumeric = true
		return nil
	}
	return nil
}

// NamedRef is a reference that different API versions send as a bare id
// string, a bare name string, or an object carrying both.
type NamedRef struct {
	ID   string
	Name string
}

// UnmarshalJSON accepts "abc" or {"id": ..., "name": ...} with the usual
// alternate key spellings.
func (r *NamedRef) UnmarshalJSON(data []byte) error {
	var s string
	if json.Unmarshal(data, &s) == nil {
		r.Name = s
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	r.ID = firstString(obj, "id", "_id", "branchId", "branch_id", "subjectId", "subject_id", "code")
	r.Name = firstString(obj, "name", "branchName", "subjectName", "title", "label")
	return nil
}

// firstString returns the first non-empty string value among the given keys.
func firstString(obj map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var s string
		if json.Unmarshal(raw, &s) == nil && s != "" {
			return s
		}
	}
	return ""
}

// CourseRecord is a course as the tenant API returns it. Only the fields the
// gateway reads are declared; unknown fields are dropped.
type CourseRecord struct {
	ID         string `json:"id,omitempty"`
	MongoID    string `json:"_id,omitempty"`
	CourseID   string `json:"courseId,omitempty"`
	CourseIDv2 string `json:"course_id,omitempty"`
	Slug       string `json:"slug,omitempty"`

	Name       string `json:"name,omitempty"`
	Title      string `json:"title,omitempty"`
	CourseName string `json:"courseName,omitempty"`

	Status string `json:"status,omitempty"`
	Mode   string `json:"mode,omitempty"`

	GradeCode   string    `json:"gradeCode,omitempty"`
	GradeCodeV2 string    `json:"grade_code,omitempty"`
	Grade       *NamedRef `json:"grade,omitempty"`

	Branch   *NamedRef `json:"branch,omitempty"`
	BranchID string    `json:"branchId,omitempty"`
	Subject  *NamedRef `json:"subject,omitempty"`

	Description string `json:"description,omitempty"`

	// Pricing fields, newest schema first.
	PricingOverride             *PricingOverride  `json:"pricingOverride,omitempty"`
	TuitionPlanBillingCycle     string            `json:"tuitionPlanBillingCycle,omitempty"`
	TuitionPlanMonthlyByMode    map[string]*Money `json:"tuitionPlanMonthlyPriceByMode,omitempty"`
	TuitionPlanPerSessionByMode map[string]*Money `json:"tuitionPlanPerSessionPriceByMode,omitempty"`
	TuitionPrice                *Money            `json:"tuitionPrice,omitempty"`
	Price                       *LegacyPrice      `json:"price,omitempty"`
	PriceUnit                   string            `json:"priceUnit,omitempty"`
	Currency                    string            `json:"currency,omitempty"`
}

// DisplayTitle resolves the course title across schema generations.
func (c *CourseRecord) DisplayTitle() string {
	switch {
	case c.Name != "":
		return c.Name
	case c.Title != "":
		return c.Title
	case c.CourseName != "":
		return c.CourseName
	}
	return "Khóa học"
}

// Key resolves the course identifier across schema generations.
func (c *CourseRecord) Key() string {
	for _, id := range []string{c.ID, c.MongoID, c.CourseID, c.CourseIDv2, c.Slug} {
		if id != "" {
			return id
		}
	}
	return ""
}

// GradeKey resolves the grade code across schema generations.
func (c *CourseRecord) GradeKey() string {
	if c.GradeCode != "" {
		return c.GradeCode
	}
	if c.Grade != nil {
		if c.Grade.ID != "" {
			return c.Grade.ID
		}
		if c.Grade.Name != "" {
			return c.Grade.Name
		}
	}
	return c.GradeCodeV2
}

// IsActive reports whether the course is open for enrolment.
func (c *CourseRecord) IsActive() bool {
	return strings.EqualFold(c.Status, "active")
}
