package form

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/badr-lol/contact-relay/internal/api/dto/contact"

	"github.com/go-playground/validator/v10"
)

// Field length limits, matching the form inputs
const (
	MaxNameLength    = 100
	MaxEmailLength   = 512
	MaxSubjectLength = 200
	MaxMessageLength = 4096
)

const (
	defaultPollInterval = 50 * time.Millisecond
	defaultPollTimeout  = 5 * time.Second
)

// Status is the submission status of the form
type Status int

const (
	StatusIdle Status = iota
	StatusSending
	StatusSucceeded
	StatusFailed
)

// Fields holds the form field values
type Fields struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=512"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=4096"`
}

// Controller owns the form field values, the verification widget lifecycle,
// and drives one submission attempt at a time.
type Controller struct {
	mu sync.Mutex

	env      Environment
	client   *http.Client
	endpoint string
	siteKey  string
	validate *validator.Validate

	pollInterval time.Duration
	pollTimeout  time.Duration

	fields        Fields
	token         string
	handle        WidgetHandle
	rendering     bool
	widgetState   WidgetState
	status        Status
	statusMessage string
	sending       bool
}

// Option customizes a Controller
type Option func(*Controller)

// WithHTTPClient sets the HTTP client used for submissions
func WithHTTPClient(client *http.Client) Option {
	return func(c *Controller) {
		c.client = client
	}
}

// WithPolling overrides the widget readiness poll interval and bound
func WithPolling(interval, timeout time.Duration) Option {
	return func(c *Controller) {
		c.pollInterval = interval
		c.pollTimeout = timeout
	}
}

// NewController creates a form controller posting to the given relay endpoint
func NewController(env Environment, endpoint, siteKey string, opts ...Option) *Controller {
	c := &Controller{
		env:          env,
		client:       http.DefaultClient,
		endpoint:     endpoint,
		siteKey:      siteKey,
		validate:     validator.New(),
		pollInterval: defaultPollInterval,
		pollTimeout:  defaultPollTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mount loads and renders the verification widget. It is safe to call more
// than once: render is only attempted while no widget handle is held, so a
// repeated mount never renders a duplicate widget.
func (c *Controller) Mount(ctx context.Context) {
	if c.env.ScriptPresent() {
		if c.env.WidgetReady() {
			c.setWidgetState(WidgetScriptLoaded)
			c.renderWidget()
			return
		}
		// Script tag exists but the library hasn't finished initializing.
		// Poll at a fixed short interval for a bounded time, then give up
		// silently; without a widget, submissions fail the token check.
		c.setWidgetState(WidgetScriptLoading)
		if c.awaitWidgetReady(ctx) {
			c.setWidgetState(WidgetScriptLoaded)
			c.renderWidget()
		}
		return
	}

	c.setWidgetState(WidgetScriptLoading)
	c.env.InjectScript(
		func() {
			c.setWidgetState(WidgetScriptLoaded)
			c.renderWidget()
		},
		func() {
			c.setStatusMessage("Failed to load Turnstile script.")
		},
	)
}

// awaitWidgetReady polls for widget library readiness with a bounded timeout
func (c *Controller) awaitWidgetReady(ctx context.Context) bool {
	deadline := time.Now().Add(c.pollTimeout)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		if c.env.WidgetReady() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
}

// renderWidget renders the widget exactly once per controller. The rendering
// flag is claimed in the same critical section that checks the handle, so
// concurrent mounts (or racing load-poll retries) cannot both reach Render.
func (c *Controller) renderWidget() {
	c.mu.Lock()
	if c.handle != "" || c.rendering {
		c.mu.Unlock()
		return
	}
	c.rendering = true
	c.mu.Unlock()

	handle, err := c.env.Render(RenderOptions{
		SiteKey: c.siteKey,
		OnVerified: func(token string) {
			c.mu.Lock()
			c.token = token
			c.mu.Unlock()
		},
		OnError: func() {
			c.setStatusMessage("Turnstile failed to load. Please reload the page.")
		},
		OnExpired: func() {
			c.mu.Lock()
			c.token = ""
			c.mu.Unlock()
		},
	})
	c.mu.Lock()
	c.rendering = false
	if err != nil {
		c.mu.Unlock()
		c.setStatusMessage("Unable to initialize verification.")
		return
	}
	c.handle = handle
	c.widgetState = WidgetRendered
	c.mu.Unlock()
}

// SetName sets the name field, truncated to its length limit
func (c *Controller) SetName(v string) { c.setField(&c.fields.Name, v, MaxNameLength) }

// SetEmail sets the email field, truncated to its length limit
func (c *Controller) SetEmail(v string) { c.setField(&c.fields.Email, v, MaxEmailLength) }

// SetSubject sets the subject field, truncated to its length limit
func (c *Controller) SetSubject(v string) { c.setField(&c.fields.Subject, v, MaxSubjectLength) }

// SetMessage sets the message field, truncated to its length limit
func (c *Controller) SetMessage(v string) { c.setField(&c.fields.Message, v, MaxMessageLength) }

// setField stores a field value truncated to its limit. Limits count runes,
// like the form inputs' maxLength, so truncation never splits a character.
func (c *Controller) setField(field *string, v string, max int) {
	if utf8.RuneCountInString(v) > max {
		runes := []rune(v)
		v = string(runes[:max])
	}
	c.mu.Lock()
	*field = v
	c.mu.Unlock()
}

// Submit drives one submission attempt. Re-entrant calls while a submission
// is in flight are ignored. A missing verification token is rejected locally
// without touching the network.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.sending {
		c.mu.Unlock()
		return nil
	}

	if c.token == "" {
		c.status = StatusFailed
		c.statusMessage = "Please complete the Turnstile verification."
		c.mu.Unlock()
		return fmt.Errorf("missing verification token")
	}

	fields := c.fields
	token := c.token

	if err := c.validate.Struct(fields); err != nil {
		c.status = StatusFailed
		c.statusMessage = "Please fill in all required fields."
		c.mu.Unlock()
		return fmt.Errorf("invalid form fields: %w", err)
	}

	c.sending = true
	c.status = StatusSending
	c.mu.Unlock()

	// The in-flight flag is released on every exit path
	defer func() {
		c.mu.Lock()
		c.sending = false
		c.mu.Unlock()
	}()

	result, err := c.post(ctx, fields, token)
	if err != nil {
		c.mu.Lock()
		c.status = StatusFailed
		c.statusMessage = fmt.Sprintf("Error: %s", err.Error())
		c.mu.Unlock()
		return err
	}

	if result.errorText != "" {
		c.mu.Lock()
		c.status = StatusFailed
		c.statusMessage = fmt.Sprintf("Error: %s", result.errorText)
		c.mu.Unlock()
		return fmt.Errorf("submission rejected: %s", result.errorText)
	}

	c.mu.Lock()
	c.status = StatusSucceeded
	c.fields = Fields{}
	c.statusMessage = ""
	c.mu.Unlock()

	c.resetWidget()
	return nil
}

// relayResult is the parsed relay response
type relayResult struct {
	errorText string
}

func (c *Controller) post(ctx context.Context, fields Fields, token string) (*relayResult, error) {
	payload := contact.ContactRequest{
		Name:           fields.Name,
		Email:          fields.Email,
		Subject:        fields.Subject,
		Message:        fields.Message,
		TurnstileToken: token,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse relay response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errText := body.Error
		if errText == "" {
			errText = resp.Status
		}
		return &relayResult{errorText: errText}, nil
	}

	return &relayResult{}, nil
}

// resetWidget resets the rendered widget after a successful submission,
// clearing the stored token so the form can be reused.
func (c *Controller) resetWidget() {
	c.mu.Lock()
	handle := c.handle
	c.mu.Unlock()

	if handle == "" {
		return
	}

	if err := c.env.Reset(handle); err != nil {
		return
	}

	c.mu.Lock()
	c.token = ""
	c.statusMessage = ""
	c.mu.Unlock()
}

func (c *Controller) setWidgetState(s WidgetState) {
	c.mu.Lock()
	c.widgetState = s
	c.mu.Unlock()
}

func (c *Controller) setStatusMessage(msg string) {
	c.mu.Lock()
	c.statusMessage = msg
	c.mu.Unlock()
}

// Fields returns a copy of the current form field values
func (c *Controller) Fields() Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

// Token returns the currently held verification token
func (c *Controller) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Status returns the current submission status
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// StatusMessage returns the user-visible status text
func (c *Controller) StatusMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusMessage
}

// WidgetState returns the current widget lifecycle state
func (c *Controller) WidgetState() WidgetState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.widgetState
}

// Handle returns the held widget handle, if any
func (c *Controller) Handle() WidgetHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle
}
