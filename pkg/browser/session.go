// Package browser drives one Chrome instance per test case through Rod.
//
// A Session is acquired before a test case and released after it, whatever
// the outcome. All operations block until the browser reports completion and
// return a classified *Error on driver-side faults (see Kind).
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
)

// Mode is the interaction state of a session.
type Mode int

const (
	// ModeNormal allows element location and interaction.
	ModeNormal Mode = iota
	// ModeModalActive means a native dialog is open; only Dialog handling is legal.
	ModeModalActive
)

func (m Mode) String() string {
	if m == ModeModalActive {
		return "modal-active"
	}
	return "normal"
}

// closeTimeout bounds browser shutdown during Release.
const closeTimeout = 5 * time.Second

// Session is one live browser bound to one test case.
// It is not safe for concurrent use by multiple test cases.
type Session struct {
	id  string
	cfg Config
	log *slog.Logger

	ctx  context.Context // lives until Release
	stop context.CancelFunc

	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page // top-level document
	scope    *rod.Page // page, or the frame entered with EnterFrame

	mu       sync.Mutex
	mode     Mode
	dialog   *proto.PageJavascriptDialogOpening
	opened   chan struct{} // closed when a dialog opens
	released bool
}

func newSession(cfg Config) *Session {
	ctx, stop := context.WithCancel(context.Background())
	id := uuid.NewString()
	return &Session{
		id:     id,
		cfg:    cfg,
		log:    cfg.logger().With(slog.String("session_id", id)),
		ctx:    ctx,
		stop:   stop,
		opened: make(chan struct{}),
	}
}

// Acquire launches a browser and opens a blank page.
// It fails with ErrEnvironment when no usable browser binary is available
// or the browser cannot be started.
func Acquire(ctx context.Context, cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, newError(KindEnvironment, "acquire", "invalid config", err)
	}
	bin, err := resolveBin(cfg)
	if err != nil {
		return nil, err
	}

	s := newSession(cfg)

	// Abort launch and connect if the caller gives up first.
	launched := make(chan struct{})
	defer close(launched)
	go func() {
		select {
		case <-ctx.Done():
			s.stop()
		case <-launched:
		}
	}()

	l := launcher.New().
		Context(s.ctx).
		Headless(cfg.Headless).
		Set("disable-gpu")
	if cfg.NoSandbox {
		l = l.NoSandbox(true)
	}
	if bin != "" {
		l = l.Bin(bin)
	}

	u, err := l.Launch()
	if err != nil {
		s.Release()
		return nil, newError(KindEnvironment, "acquire", "failed to launch browser", err)
	}
	// Cleanup blocks until the process exits, so only track a launched one.
	s.launcher = l

	b := rod.New().ControlURL(u).Context(s.ctx).Trace(cfg.Trace)
	if cfg.SlowMotion > 0 {
		b = b.SlowMotion(cfg.SlowMotion)
	}
	if err := b.Connect(); err != nil {
		s.Release()
		return nil, newError(KindEnvironment, "acquire", "failed to connect to browser", err)
	}
	s.browser = b

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		s.Release()
		return nil, newError(KindEnvironment, "acquire", "failed to open page", err)
	}
	s.page = page
	s.setScope(page)

	go page.EachEvent(func(e *proto.PageJavascriptDialogOpening) {
		s.openModal(e)
	}, func(e *proto.PageJavascriptDialogClosed) {
		s.closeModal()
	})()

	if ctx.Err() != nil {
		s.Release()
		return nil, newError(KindEnvironment, "acquire", "canceled", ctx.Err())
	}

	s.log.Debug("session acquired", slog.String("bin", bin), slog.Bool("headless", cfg.Headless))
	return s, nil
}

// resolveBin picks the browser binary. An empty result lets rod download one.
func resolveBin(cfg Config) (string, error) {
	if cfg.Bin != "" {
		if _, err := os.Stat(cfg.Bin); err != nil {
			return "", newError(KindEnvironment, "acquire", "browser binary "+cfg.Bin, err)
		}
		return cfg.Bin, nil
	}
	if path, ok := launcher.LookPath(); ok {
		return path, nil
	}
	if !cfg.AllowDownload {
		return "", newError(KindEnvironment, "acquire", "no compatible browser found and download disabled", nil)
	}
	return "", nil
}

// Release closes the browser. It is safe to call more than once and on a
// nil or partially acquired session. Failures are logged, never returned,
// so they cannot mask the test case's own outcome.
func (s *Session) Release() {
	if s == nil {
		return
	}
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return
	}
	s.released = true
	modal := s.mode == ModeModalActive
	framed := s.scope != s.page
	s.scope = s.page
	s.mu.Unlock()

	log := s.logger()
	if framed {
		log.Warn("session released inside a frame context")
	}

	if modal && s.page != nil {
		err := proto.PageHandleJavaScriptDialog{Accept: false}.Call(s.page.Timeout(closeTimeout))
		if err != nil {
			log.Warn("failed to dismiss dialog on release", slog.Any("err", err))
		}
	}
	if s.browser != nil {
		if err := s.browser.Timeout(closeTimeout).Close(); err != nil {
			log.Warn("browser close failed", slog.Any("err", err))
		}
	}
	if s.stop != nil {
		s.stop()
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher.Cleanup()
	}
	log.Debug("session released")
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Config returns the configuration the session was acquired with.
func (s *Session) Config() Config { return s.cfg }

// Mode reports whether a native dialog is currently blocking the page.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Session) logger() *slog.Logger {
	if s.log != nil {
		return s.log
	}
	return slog.Default()
}

// guard rejects operations on a released session or while a dialog is open.
func (s *Session) guard(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return newError(KindEnvironment, op, "session released", nil)
	}
	if s.mode == ModeModalActive {
		msg := ""
		if s.dialog != nil {
			msg = fmt.Sprintf("%s %q", s.dialog.Type, s.dialog.Message)
		}
		return newError(KindModalBlocking, op, msg, nil)
	}
	return nil
}

func (s *Session) isReleased() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released
}

// current returns the location context: the page or the entered frame.
func (s *Session) current() *rod.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope
}

func (s *Session) setScope(p *rod.Page) {
	s.mu.Lock()
	s.scope = p
	s.mu.Unlock()
}

func (s *Session) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.Timeout)
}

func (s *Session) openModal(e *proto.PageJavascriptDialogOpening) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeModalActive {
		return
	}
	s.mode = ModeModalActive
	s.dialog = e
	close(s.opened)
	s.logger().Debug("dialog opened", slog.String("type", string(e.Type)), slog.String("message", e.Message))
}

func (s *Session) closeModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeModalActive {
		return
	}
	s.mode = ModeNormal
	s.dialog = nil
	s.opened = make(chan struct{})
}

// modalSignal returns a channel closed by the next dialog opening.
func (s *Session) modalSignal() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened
}
