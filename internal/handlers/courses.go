package handlers

import (
	"net/http"

	"github.com/centerplus/centerplus-landing/gateway/internal/cache"
	"github.com/centerplus/centerplus-landing/gateway/internal/domain"
	"github.com/centerplus/centerplus-landing/gateway/internal/ports"
	"github.com/centerplus/centerplus-landing/gateway/internal/pricing"
)

// courseModeView is one per-mode price row of a course card.
type courseModeView struct {
	Mode      string `json:"mode"`
	Formatted string `json:"formatted"`
}

// coursePriceView is the resolved price of a course, ready to render.
type coursePriceView struct {
	Kind    string           `json:"kind"` // contact_us | literal | single | multi
	Display string           `json:"display"`
	Modes   []courseModeView `json:"modes,omitempty"`
}

// courseView is one course card of the landing page.
type courseView struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Active    bool               `json:"active"`
	Mode      string             `json:"mode,omitempty"`
	GradeCode string             `json:"gradeCode,omitempty"`
	Price     coursePriceView    `json:"price"`
	Highlight *pricing.Highlight `json:"highlight,omitempty"`
}

// courseListResponse wraps the course cards. Notice carries the
// informational banner for an empty (but successful) listing.
type courseListResponse struct {
	Courses []courseView `json:"courses"`
	Notice  string       `json:"notice,omitempty"`
}

// ListCourses returns the course cards with resolved display prices.
// Endpoint: GET /api/courses
func (a *API) ListCourses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	var courses []domain.CourseRecord
	if !a.lists.Get(ctx, cache.Key("courses"), &courses) {
		fetched, err := a.tenant.FetchCourses(ctx)
		if err != nil {
			a.writeError(w, err)
			return
		}
		courses = fetched
		a.lists.Set(ctx, cache.Key("courses"), courses)
	}

	response := courseListResponse{Courses: make([]courseView, 0, len(courses))}
	for i := range courses {
		response.Courses = append(response.Courses, buildCourseView(&courses[i]))
	}
	if len(response.Courses) == 0 {
		// Empty data is a warning banner, not a failure.
		response.Notice = "Hiện chưa có dữ liệu khóa học. Vui lòng quay lại sau."
	}
	writeJSON(w, http.StatusOK, response)
}

// buildCourseView resolves a course record into its card representation.
func buildCourseView(course *domain.CourseRecord) courseView {
	resolved := pricing.Resolve(course)

	price := coursePriceView{Display: resolved.DisplayText()}
	switch resolved.Kind {
	case pricing.KindStringLiteral:
		price.Kind = "literal"
	case pricing.KindSingleAmount:
		price.Kind = "single"
	case pricing.KindMultiMode:
		price.Kind = "multi"
		for _, entry := range resolved.Modes {
			price.Modes = append(price.Modes, courseModeView{Mode: entry.ModeLabel, Formatted: entry.Format()})
		}
	default:
		price.Kind = "contact_us"
	}

	return courseView{
		ID:        course.Key(),
		Title:     course.DisplayTitle(),
		Active:    course.IsActive(),
		Mode:      pricing.ModeLabel(course.Mode),
		GradeCode: course.GradeKey(),
		Price:     price,
		Highlight: pricing.ResolveHighlight(course),
	}
}

// branchOption / subjectOption are the form dropdown entries.
type optionView struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ListBranches returns the branch options for the consultation form.
// Endpoint: GET /api/branches
func (a *API) ListBranches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	var branches []ports.Branch
	if !a.lists.Get(ctx, cache.Key("branches"), &branches) {
		fetched, err := a.tenant.FetchBranches(ctx)
		if err != nil {
			a.writeError(w, err)
			return
		}
		branches = fetched
		a.lists.Set(ctx, cache.Key("branches"), branches)
	}

	options := make([]optionView, 0, len(branches))
	for _, b := range branches {
		options = append(options, optionView{Value: b.Key(), Label: b.DisplayName()})
	}
	writeJSON(w, http.StatusOK, map[string][]optionView{"branches": options})
}

// ListSubjects returns the active subject options for the consultation form.
// Endpoint: GET /api/subjects
func (a *API) ListSubjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	var subjects []ports.Subject
	if !a.lists.Get(ctx, cache.Key("subjects"), &subjects) {
		fetched, err := a.tenant.FetchSubjects(ctx, ports.SubjectQuery{Status: "active", Limit: 1000})
		if err != nil {
			a.writeError(w, err)
			return
		}
		subjects = fetched
		a.lists.Set(ctx, cache.Key("subjects"), subjects)
	}

	options := make([]optionView, 0, len(subjects))
	for _, s := range subjects {
		options = append(options, optionView{Value: s.Key(), Label: s.DisplayName()})
	}
	writeJSON(w, http.StatusOK, map[string][]optionView{"subjects": options})
}
