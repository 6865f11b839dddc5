package renderer

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// CertificateData is the structured payload handed to the external document
// renderer. The engine never inspects the rendered bytes.
type CertificateData struct {
	CertificateNumber string    `json:"certificate_number"`
	TaskTitle         string    `json:"task_title"`
	TaskLocation      string    `json:"task_location"`
	TaskDate          time.Time `json:"task_date"`
	VolunteerName     string    `json:"volunteer_name"`
	OrganizationName  string    `json:"organization_name"`
	HoursCompleted    float64   `json:"hours_completed"`
	IssuedAt          time.Time `json:"issued_at"`
}

// Renderer produces a PDF document for a certificate. A call is a bounded,
// possibly-failing remote invocation; retry policy belongs to the caller.
type Renderer interface {
	Render(data CertificateData) ([]byte, error)
}

// HTTPRenderer posts certificate data to a render service and returns the
// document bytes from the response body.
type HTTPRenderer struct {
	client *resty.Client
	url    string
}

func NewHTTPRenderer(url string, timeout time.Duration) *HTTPRenderer {
	client := resty.New().SetTimeout(timeout)
	return &HTTPRenderer{client: client, url: url}
}

func (r *HTTPRenderer) Render(data CertificateData) ([]byte, error) {
	resp, err := r.client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/pdf").
		SetBody(data).
		Post(r.url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("render service returned status %d", resp.StatusCode())
	}
	body := resp.Body()
	if len(body) == 0 {
		return nil, fmt.Errorf("render service returned an empty document")
	}
	return body, nil
}
