package site

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrNoEndpoint   = errors.New("contact form endpoint not configured")
	ErrInvalidForm  = errors.New("name, email and message are required")
	ErrSubmitFailed = errors.New("form submission failed")
)

// ContactForm is the contact section's form body.
type ContactForm struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Message string `form:"message" json:"message"`
}

// Validate trims the fields and checks they are present.
func (f *ContactForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Message = strings.TrimSpace(f.Message)
	if f.Name == "" || f.Message == "" || !strings.Contains(f.Email, "@") {
		return ErrInvalidForm
	}
	return nil
}

// Relay forwards contact submissions to a hosted form endpoint.
type Relay struct {
	Endpoint string
	Client   *http.Client
}

func NewRelay(endpoint string) *Relay {
	return &Relay{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Submit posts the form and reports whether the endpoint accepted it.
func (r *Relay) Submit(ctx context.Context, f ContactForm) error {
	if r == nil || r.Endpoint == "" {
		return ErrNoEndpoint
	}

	body := url.Values{
		"name":    {f.Name},
		"email":   {f.Email},
		"message": {f.Message},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, strings.NewReader(body.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: endpoint returned %s", ErrSubmitFailed, resp.Status)
	}
	return nil
}
