package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdduha/skillscribe/internal/controller"
	"github.com/kdduha/skillscribe/internal/models"
)

type blockingSolver struct {
	release chan struct{}
}

func (b *blockingSolver) Solve(ctx context.Context, prompt string, image *models.Payload) (*models.Solution, error) {
	<-b.release
	return &models.Solution{Explanation: "ok"}, nil
}

type passEncoder struct{}

func (passEncoder) Encode(ctx context.Context, file models.ImageFile) (*models.Payload, error) {
	return &models.Payload{Base64: "AA==", MIMEType: "image/png"}, nil
}

func newTestStore(ttl time.Duration) *Store {
	return NewStore("test-secret-test-secret-test-sec", ttl, false, func() *controller.Controller {
		return controller.New(passEncoder{}, &blockingSolver{release: make(chan struct{})})
	})
}

func visit(t *testing.T, s *Store, cookies []*http.Cookie) (*controller.Controller, []*http.Cookie) {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()

	ctrl, err := s.Controller(w, r)
	require.NoError(t, err)
	return ctrl, w.Result().Cookies()
}

func TestControllerIsStickyPerBrowser(t *testing.T) {
	s := newTestStore(time.Hour)

	first, cookies := visit(t, s, nil)
	require.NotEmpty(t, cookies)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	again, _ := visit(t, s, cookies)
	assert.Same(t, first, again)

	other, _ := visit(t, s, nil)
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, s.Len())
}

func TestControllerIgnoresForgedCookie(t *testing.T) {
	s := newTestStore(time.Hour)

	ctrl, cookies := visit(t, s, []*http.Cookie{{Name: cookieName, Value: "forged"}})
	require.NotNil(t, ctrl)
	require.NotEmpty(t, cookies)
	assert.Equal(t, 1, s.Len())
}

func TestSweepEvictsIdleSessions(t *testing.T) {
	s := newTestStore(time.Minute)
	now := time.Now()
	s.now = func() time.Time { return now }

	first, cookies := visit(t, s, nil)
	visit(t, s, nil)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 2, s.sweep())
	assert.Zero(t, s.Len())

	// the cookie outlives the entry; the browser gets a fresh controller
	fresh, _ := visit(t, s, cookies)
	assert.NotSame(t, first, fresh)
}

func TestSweepKeepsLoadingSessions(t *testing.T) {
	solver := &blockingSolver{release: make(chan struct{})}
	s := NewStore("", time.Minute, false, func() *controller.Controller {
		return controller.New(passEncoder{}, solver)
	})
	now := time.Now()
	s.now = func() time.Time { return now }

	ctrl, _ := visit(t, s, nil)
	ctrl.SetImage(models.NewMemoryFile("a.png", []byte("x")))
	ctrl.SetPrompt("p")
	done, ok := ctrl.Start(context.Background())
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	assert.Zero(t, s.sweep())
	assert.Equal(t, 1, s.Len())

	close(solver.release)
	<-done
	assert.Equal(t, 1, s.sweep())
}

func TestRunStopsWithContext(t *testing.T) {
	s := newTestStore(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(stopped)
	}()
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
