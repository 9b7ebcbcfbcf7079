package leads

import (
	"context"
	"errors"
	"testing"

	"github.com/centerplus/centerplus-landing/gateway/internal/domain"
	"github.com/centerplus/centerplus-landing/gateway/internal/logger"
	"github.com/centerplus/centerplus-landing/gateway/internal/ports"
)

func validForm() *domain.LeadForm {
	return &domain.LeadForm{
		LastName:             "Nguyễn",
		MiddleName:           "Văn",
		FirstName:            "An",
		Phone:                "012345678",
		Email:                "an@example.com",
		BranchID:             "b1",
		GradeCode:            "G9",
		InterestedSubjectIDs: []string{"s1", "s2"},
		Notes:                "Học buổi tối",
	}
}

func TestValidateFirstFailingRuleWins(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(f *domain.LeadForm)
		wantField string
		wantMsg   string
	}{
		{"missing last name", func(f *domain.LeadForm) { f.LastName = "  " }, "lastName", "Vui lòng nhập họ"},
		{"missing first name", func(f *domain.LeadForm) { f.FirstName = "" }, "firstName", "Vui lòng nhập tên"},
		{"missing phone", func(f *domain.LeadForm) { f.Phone = "" }, "phone", "Vui lòng nhập số điện thoại"},
		{"phone too short", func(f *domain.LeadForm) { f.Phone = "12345" }, "phone", "Số điện thoại không hợp lệ"},
		{"phone too long", func(f *domain.LeadForm) { f.Phone = "123456789012" }, "phone", "Số điện thoại không hợp lệ"},
		{"phone non digits", func(f *domain.LeadForm) { f.Phone = "01234abcd" }, "phone", "Số điện thoại không hợp lệ"},
		{"missing email", func(f *domain.LeadForm) { f.Email = "" }, "email", "Vui lòng nhập email"},
		{"malformed email", func(f *domain.LeadForm) { f.Email = "not-an-email" }, "email", "Email không hợp lệ"},
		{"missing branch", func(f *domain.LeadForm) { f.BranchID = "" }, "branchId", "Vui lòng chọn chi nhánh"},
		{"missing grade", func(f *domain.LeadForm) { f.GradeCode = "" }, "gradeCode", "Vui lòng chọn khối lớp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(form)

			err := Validate(form)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if vErr.Field != tt.wantField || vErr.Message != tt.wantMsg {
				t.Errorf("got (%q, %q), want (%q, %q)", vErr.Field, vErr.Message, tt.wantField, tt.wantMsg)
			}
		})
	}
}

func TestValidateStopsAtFirstFailure(t *testing.T) {
	// Both email and phone are missing: the phone rule runs first.
	form := validForm()
	form.Phone = ""
	form.Email = ""

	var vErr *ValidationError
	if !errors.As(Validate(form), &vErr) {
		t.Fatal("expected a validation error")
	}
	if vErr.Field != "phone" {
		t.Errorf("first failing field = %q, want phone", vErr.Field)
	}

	// Only email missing: the email rule surfaces alone.
	form = validForm()
	form.Email = ""
	if !errors.As(Validate(form), &vErr) {
		t.Fatal("expected a validation error")
	}
	if vErr.Field != "email" || vErr.Message != "Vui lòng nhập email" {
		t.Errorf("got (%q, %q), want the email-required message", vErr.Field, vErr.Message)
	}
}

func TestValidatePhonePattern(t *testing.T) {
	form := validForm()

	form.Phone = "12345"
	if Validate(form) == nil {
		t.Error("5-digit phone passed validation")
	}

	form.Phone = "012345678"
	if err := Validate(form); err != nil {
		t.Errorf("9-digit phone failed validation: %v", err)
	}
}

func TestValidateAcceptsValidForm(t *testing.T) {
	if err := Validate(validForm()); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestBuildPayloadNormalization(t *testing.T) {
	form := validForm()
	form.FirstName = "  An  "
	form.LastName = " Nguyễn "
	form.Notes = "  note  "
	form.InterestedSubjectIDs = []string{" s1 ", "", "s2"}

	payload := BuildPayload(form, "")

	if payload.Name.FirstName != "An" || payload.Name.LastName != "Nguyễn" {
		t.Errorf("name = %+v, want trimmed fields", payload.Name)
	}
	if payload.Source != "campaign" {
		t.Errorf("Source = %q, want the fixed campaign literal", payload.Source)
	}
	if payload.Notes != "note" {
		t.Errorf("Notes = %q, want trimmed", payload.Notes)
	}
	if len(payload.InterestedSubjectIDs) != 2 {
		t.Errorf("subject ids = %v, want blanks dropped", payload.InterestedSubjectIDs)
	}
	if payload.CourseID != nil {
		t.Errorf("CourseID = %v, want nil when not registering a course", payload.CourseID)
	}
}

func TestBuildPayloadWithCourse(t *testing.T) {
	payload := BuildPayload(validForm(), "course-7")
	if payload.CourseID == nil || *payload.CourseID != "course-7" {
		t.Errorf("CourseID = %v, want course-7", payload.CourseID)
	}
}

// fakeAPI implements ports.TenantAPI for pipeline tests.
type fakeAPI struct {
	ports.TenantAPI
	lastPayload *domain.LeadPayload
	receipt     *domain.LeadReceipt
	err         error
	calls       int
}

func (f *fakeAPI) CreateLead(_ context.Context, payload *domain.LeadPayload) (*domain.LeadReceipt, error) {
	f.calls++
	f.lastPayload = payload
	return f.receipt, f.err
}

func TestPipelineSubmit(t *testing.T) {
	api := &fakeAPI{receipt: &domain.LeadReceipt{Body: []byte(`{"id": "lead-1"}`)}}
	pipeline := NewPipeline(api, logger.NewNop())

	receipt, err := pipeline.Submit(context.Background(), validForm(), "course-7")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if string(receipt.Body) != `{"id": "lead-1"}` {
		t.Errorf("receipt = %s", receipt.Body)
	}
	if api.lastPayload.Source != "campaign" {
		t.Errorf("submitted source = %q", api.lastPayload.Source)
	}
}

func TestPipelineSubmitInvalidFormNeverHitsAPI(t *testing.T) {
	api := &fakeAPI{}
	pipeline := NewPipeline(api, logger.NewNop())

	form := validForm()
	form.Phone = "12345"
	_, err := pipeline.Submit(context.Background(), form, "")

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Submit() error = %v, want validation error", err)
	}
	if api.calls != 0 {
		t.Errorf("API called %d times for an invalid form", api.calls)
	}
}

func TestPipelineSubmitPropagatesAPIErrorOnce(t *testing.T) {
	apiErr := errors.New("backend down")
	api := &fakeAPI{err: apiErr}
	pipeline := NewPipeline(api, logger.NewNop())

	_, err := pipeline.Submit(context.Background(), validForm(), "")
	if !errors.Is(err, apiErr) {
		t.Fatalf("Submit() error = %v, want the API error", err)
	}
	if api.calls != 1 {
		t.Errorf("API called %d times, want exactly one attempt (no retry)", api.calls)
	}
}
