package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/centerplus/centerplus-landing/gateway/internal/domain"
)

// leadRequest is the consultation-form submission from the landing page.
// courseId is present when the visitor registered from a course card.
type leadRequest struct {
	domain.LeadForm
	CourseID string `json:"courseId,omitempty"`
}

// leadResponse wraps the tenant receipt with the confirmation the page shows.
type leadResponse struct {
	Message string          `json:"message"`
	Receipt json.RawMessage `json:"receipt"`
}

// CreateLead validates and forwards a consultation-form submission.
// Endpoint: POST /api/leads
func (a *API) CreateLead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Không đọc được dữ liệu gửi lên."})
		return
	}
	defer r.Body.Close()

	var req leadRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Dữ liệu gửi lên không hợp lệ."})
		return
	}

	receipt, err := a.pipeline.Submit(r.Context(), &req.LeadForm, req.CourseID)
	if err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, leadResponse{
		Message: "Đăng ký tư vấn thành công. Chúng tôi sẽ liên hệ trong thời gian sớm nhất.",
		Receipt: receipt.Body,
	})
}
