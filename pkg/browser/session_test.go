package browser

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession(t *testing.T) *Session {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Timeout = 200 * time.Millisecond
	cfg.PollInterval = 10 * time.Millisecond
	s := newSession(cfg)
	t.Cleanup(s.Release)
	return s
}

func TestAcquire_MissingBinary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bin = filepath.Join(t.TempDir(), "no-such-chrome")

	s, err := Acquire(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrEnvironment)
}

func TestAcquire_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = 0

	_, err := Acquire(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrEnvironment)
}

func TestRelease_Idempotent(t *testing.T) {
	var nilSession *Session
	assert.NotPanics(t, nilSession.Release)

	zero := &Session{}
	assert.NotPanics(t, zero.Release)
	assert.NotPanics(t, zero.Release)

	s := newSession(DefaultConfig())
	s.Release()
	s.Release()
	assert.ErrorIs(t, s.ctx.Err(), context.Canceled)
}

func TestReleasedSession_RejectsOperations(t *testing.T) {
	s := testSession(t)
	s.Release()

	_, err := s.Locate(context.Background(), ByCSS("body"))
	assert.ErrorIs(t, err, ErrEnvironment)

	err = s.Navigate(context.Background(), "/checkboxes")
	assert.ErrorIs(t, err, ErrEnvironment)
}

func TestReleasedSession_DialogFailsFast(t *testing.T) {
	s := testSession(t)
	s.cfg.Timeout = 2 * time.Second
	s.Release()

	start := time.Now()
	_, err := s.Dialog(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEnvironment)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRelease_AbortsPendingDialogWait(t *testing.T) {
	s := testSession(t)
	s.cfg.Timeout = 5 * time.Second

	errc := make(chan error, 1)
	go func() {
		_, err := s.Dialog(context.Background())
		errc <- err
	}()
	time.Sleep(20 * time.Millisecond)
	s.Release()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrEnvironment)
	case <-time.After(time.Second):
		t.Fatal("Dialog still waiting after Release")
	}
}

// Run with -race: Release must not race with a concurrent Locate or frame
// switch on the location context.
func TestRelease_ConcurrentWithLocate(t *testing.T) {
	s := testSession(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, err := s.Locate(ctx, ByCSS("body"))
			assert.ErrorIs(t, err, ErrEnvironment)
			_ = s.InFrame()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			s.ExitFrame()
		}
		s.Release()
	}()
	wg.Wait()

	_, err := s.Locate(ctx, ByCSS("body"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session released")
	assert.False(t, s.InFrame())
}

func TestSession_IDsAreUnique(t *testing.T) {
	a, b := testSession(t), testSession(t)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestModalMode_BlocksLocate(t *testing.T) {
	s := testSession(t)
	assert.Equal(t, ModeNormal, s.Mode())

	s.openModal(&proto.PageJavascriptDialogOpening{
		Type:    proto.PageDialogTypeAlert,
		Message: "You selected a context menu",
	})
	assert.Equal(t, ModeModalActive, s.Mode())

	_, err := s.Locate(context.Background(), ByCSS("#hot-spot"))
	require.ErrorIs(t, err, ErrModalBlocking)
	assert.Contains(t, err.Error(), "You selected a context menu")

	err = s.Perform(context.Background(), KeyDown(input.ArrowUp))
	assert.ErrorIs(t, err, ErrModalBlocking)

	err = s.WaitUntil(context.Background(), func(context.Context, *Session) (bool, error) {
		return true, nil
	}, 0)
	assert.ErrorIs(t, err, ErrModalBlocking)
}

func TestModalMode_DialogReadsOpenDialog(t *testing.T) {
	s := testSession(t)
	s.openModal(&proto.PageJavascriptDialogOpening{
		Type:          proto.PageDialogTypePrompt,
		Message:       "name?",
		DefaultPrompt: "anon",
	})

	d, err := s.Dialog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "prompt", d.Type)
	assert.Equal(t, "name?", d.Message)
	assert.Equal(t, "anon", d.DefaultPrompt)
}

func TestModalMode_CloseRestoresNormal(t *testing.T) {
	s := testSession(t)
	first := s.modalSignal()

	s.openModal(&proto.PageJavascriptDialogOpening{Type: proto.PageDialogTypeAlert})
	select {
	case <-first:
	default:
		t.Fatal("signal not closed on open")
	}

	s.closeModal()
	s.closeModal()
	assert.Equal(t, ModeNormal, s.Mode())

	next := s.modalSignal()
	select {
	case <-next:
		t.Fatal("fresh signal already closed")
	default:
	}
}

func TestDialog_NoneOpenTimesOut(t *testing.T) {
	s := testSession(t)

	start := time.Now()
	_, err := s.Dialog(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, ErrNoDialog)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestFrame_ExitRestoresDefault(t *testing.T) {
	s := testSession(t)
	assert.False(t, s.InFrame())
	s.ExitFrame()
	assert.False(t, s.InFrame())
}
