package form

import (
	"fmt"
	"sync/atomic"
)

// StaticEnvironment is a headless widget environment that hands out a
// pre-obtained token. It backs the CLI (and development setups where the
// server accepts a test token) where no browser widget can run.
type StaticEnvironment struct {
	token   string
	counter atomic.Int64
}

// NewStaticEnvironment creates an environment that verifies immediately with
// the given token.
func NewStaticEnvironment(token string) *StaticEnvironment {
	return &StaticEnvironment{token: token}
}

func (e *StaticEnvironment) ScriptPresent() bool { return true }

func (e *StaticEnvironment) InjectScript(onLoad func(), onError func()) {
	onLoad()
}

func (e *StaticEnvironment) WidgetReady() bool { return true }

// Render immediately reports the static token as verified
func (e *StaticEnvironment) Render(opts RenderOptions) (WidgetHandle, error) {
	handle := WidgetHandle(fmt.Sprintf("static-%d", e.counter.Add(1)))
	if e.token != "" && opts.OnVerified != nil {
		opts.OnVerified(e.token)
	}
	return handle, nil
}

func (e *StaticEnvironment) Reset(handle WidgetHandle) error { return nil }
