package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/centerplus/centerplus-landing/gateway/internal/adapters/centerplus"
	"github.com/centerplus/centerplus-landing/gateway/internal/cache"
	"github.com/centerplus/centerplus-landing/gateway/internal/config"
	"github.com/centerplus/centerplus-landing/gateway/internal/domain"
	"github.com/centerplus/centerplus-landing/gateway/internal/leads"
	"github.com/centerplus/centerplus-landing/gateway/internal/logger"
	"github.com/centerplus/centerplus-landing/gateway/internal/ports"
)

// fakeTenant implements ports.TenantAPI for handler tests.
type fakeTenant struct {
	courses    []domain.CourseRecord
	coursesErr error
	receipt    *domain.LeadReceipt
	leadErr    error
}

func (f *fakeTenant) FetchCourses(context.Context) ([]domain.CourseRecord, error) {
	return f.courses, f.coursesErr
}

func (f *fakeTenant) FetchCourseByID(context.Context, string) (*domain.CourseRecord, error) {
	return nil, nil
}

func (f *fakeTenant) FetchSubjects(context.Context, ports.SubjectQuery) ([]ports.Subject, error) {
	return []ports.Subject{{ID: "s1", Name: "Toán"}}, nil
}

func (f *fakeTenant) FetchBranches(context.Context) ([]ports.Branch, error) {
	return []ports.Branch{{ID: "b1", Name: "Cầu Giấy"}}, nil
}

func (f *fakeTenant) CreateLead(context.Context, *domain.LeadPayload) (*domain.LeadReceipt, error) {
	return f.receipt, f.leadErr
}

func newTestAPI(tenant *fakeTenant) *API {
	log := logger.NewNop()
	lists := cache.New(config.RedisConfig{}, log) // disabled
	return NewAPI(tenant, leads.NewPipeline(tenant, log), lists, log)
}

func courseFromJSON(t *testing.T, raw string) domain.CourseRecord {
	t.Helper()
	var course domain.CourseRecord
	if err := json.Unmarshal([]byte(raw), &course); err != nil {
		t.Fatal(err)
	}
	return course
}

func TestListCourses(t *testing.T) {
	tenant := &fakeTenant{courses: []domain.CourseRecord{
		courseFromJSON(t, `{
			"id": "c1", "name": "Toán 9", "status": "active", "gradeCode": "G9",
			"tuitionPlanMonthlyPriceByMode": {"online": {"amount": 1200000}, "offline": {"amount": 1500000}}
		}`),
	}}

	w := httptest.NewRecorder()
	newTestAPI(tenant).ListCourses(w, httptest.NewRequest(http.MethodGet, "/api/courses", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp courseListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Notice != "" {
		t.Errorf("notice = %q, want empty for a non-empty listing", resp.Notice)
	}
	if len(resp.Courses) != 1 {
		t.Fatalf("courses = %d", len(resp.Courses))
	}
	card := resp.Courses[0]
	if card.Title != "Toán 9" || !card.Active || card.GradeCode != "G9" {
		t.Errorf("card = %+v", card)
	}
	if card.Price.Kind != "multi" || len(card.Price.Modes) != 2 {
		t.Errorf("price = %+v, want two mode rows", card.Price)
	}
	if card.Highlight == nil || !strings.HasPrefix(card.Highlight.Value, "Từ ") {
		t.Errorf("highlight = %+v, want cheapest with prefix", card.Highlight)
	}
}

func TestListCoursesEmptyIsNoticeNotError(t *testing.T) {
	w := httptest.NewRecorder()
	newTestAPI(&fakeTenant{}).ListCourses(w, httptest.NewRequest(http.MethodGet, "/api/courses", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp courseListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Notice == "" {
		t.Error("empty listing has no notice")
	}
}

func TestListCoursesAuthErrorMapsTo401(t *testing.T) {
	tenant := &fakeTenant{coursesErr: centerplus.ErrUnauthorized}

	w := httptest.NewRecorder()
	newTestAPI(tenant).ListCourses(w, httptest.NewRequest(http.MethodGet, "/api/courses", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != centerplus.ErrUnauthorized.Error() {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestCreateLeadValidationFailureIs422(t *testing.T) {
	body := `{"lastName": "Nguyễn", "firstName": "An", "phone": "12345", "email": "an@example.com", "branchId": "b1", "gradeCode": "G9"}`

	w := httptest.NewRecorder()
	newTestAPI(&fakeTenant{}).CreateLead(w, httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(body)))

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Field != "phone" || resp.Error != "Số điện thoại không hợp lệ" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestCreateLeadSuccess(t *testing.T) {
	tenant := &fakeTenant{receipt: &domain.LeadReceipt{Body: []byte(`{"id": "lead-1"}`)}}
	body := `{"lastName": "Nguyễn", "firstName": "An", "phone": "012345678", "email": "an@example.com", "branchId": "b1", "gradeCode": "G9", "courseId": "c1"}`

	w := httptest.NewRecorder()
	newTestAPI(tenant).CreateLead(w, httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(body)))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}
	var resp leadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if string(resp.Receipt) != `{"id": "lead-1"}` {
		t.Errorf("receipt = %s", resp.Receipt)
	}
}

func TestCreateLeadRejectsWrongMethod(t *testing.T) {
	w := httptest.NewRecorder()
	newTestAPI(&fakeTenant{}).CreateLead(w, httptest.NewRequest(http.MethodGet, "/api/leads", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestCreateLeadMalformedBody(t *testing.T) {
	w := httptest.NewRecorder()
	newTestAPI(&fakeTenant{}).CreateLead(w, httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader("{not json")))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
