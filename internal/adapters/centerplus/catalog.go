package centerplus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/centerplus/centerplus-landing/gateway/internal/domain"
	"github.com/centerplus/centerplus-landing/gateway/internal/ports"
)

// subjectQueryValues translates a subject filter into query parameters.
func subjectQueryValues(q ports.SubjectQuery) url.Values {
	values := url.Values{}
	if q.Status != "" {
		values.Set("status", q.Status)
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	return values
}

// FetchCourses returns the public course list. Deployments that predate the
// public listing only expose /courses, so a 404 falls back to it.
func (c *Client) FetchCourses(ctx context.Context) ([]domain.CourseRecord, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/courses/public", nil, nil)
	if IsNotFound(err) {
		body, err = c.doRequest(ctx, http.MethodGet, "/courses", nil, nil)
	}
	if err != nil {
		return nil, err
	}
	return unwrapList[domain.CourseRecord](body, "courses", "data", "results")
}

// FetchCourseByID returns one course.
func (c *Client) FetchCourseByID(ctx context.Context, courseID string) (*domain.CourseRecord, error) {
	if courseID == "" {
		return nil, fmt.Errorf("centerplus: courseID is required")
	}
	body, err := c.doRequest(ctx, http.MethodGet, "/courses/"+url.PathEscape(courseID), nil, nil)
	if err != nil {
		return nil, err
	}
	var course domain.CourseRecord
	if err := json.Unmarshal(body, &course); err != nil {
		return nil, fmt.Errorf("centerplus: decode course: %w", err)
	}
	return &course, nil
}

// FetchSubjects returns the public subject list filtered by the query.
func (c *Client) FetchSubjects(ctx context.Context, query ports.SubjectQuery) ([]ports.Subject, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/subjects/public", subjectQueryValues(query), nil)
	if err != nil {
		return nil, err
	}
	return unwrapList[ports.Subject](body, "subjects", "data", "results")
}

// FetchBranches returns the public branch list.
func (c *Client) FetchBranches(ctx context.Context) ([]ports.Branch, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/branches/public", nil, nil)
	if err != nil {
		return nil, err
	}
	return unwrapList[ports.Branch](body, "branches", "data", "results")
}

// Client implements the tenant API surface end to end.
var _ ports.TenantAPI = (*Client)(nil)
