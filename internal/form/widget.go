package form

// WidgetHandle is an opaque identifier for a rendered verification widget
// instance. The zero value means no widget is held.
type WidgetHandle string

// RenderOptions configures a widget render call
type RenderOptions struct {
	SiteKey string

	// OnVerified is invoked with the verification token once the challenge succeeds
	OnVerified func(token string)
	// OnError is invoked when the widget fails to load or run
	OnError func()
	// OnExpired is invoked when a previously issued token expires
	OnExpired func()
}

// Environment abstracts the host the verification widget lives in: script
// presence and injection, library readiness, and the render/reset API.
// In a browser this is the page and the Turnstile script; in tests and the
// CLI it is faked.
type Environment interface {
	// ScriptPresent reports whether the widget script tag already exists
	ScriptPresent() bool

	// InjectScript adds the widget script, invoking exactly one of the callbacks
	InjectScript(onLoad func(), onError func())

	// WidgetReady reports whether the widget library has finished initializing
	WidgetReady() bool

	// Render renders a widget and returns its handle
	Render(opts RenderOptions) (WidgetHandle, error)

	// Reset clears a rendered widget so it can issue a fresh token
	Reset(handle WidgetHandle) error
}

// WidgetState tracks the widget lifecycle
type WidgetState int

const (
	WidgetUnloaded WidgetState = iota
	WidgetScriptLoading
	WidgetScriptLoaded
	WidgetRendered
)

func (s WidgetState) String() string {
	switch s {
	case WidgetUnloaded:
		return "unloaded"
	case WidgetScriptLoading:
		return "script-loading"
	case WidgetScriptLoaded:
		return "script-loaded"
	case WidgetRendered:
		return "rendered"
	default:
		return "unknown"
	}
}
