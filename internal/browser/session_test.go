package browser

import (
	"context"
	"errors"
	"sync"
	"testing"

	"leadscout/internal/config"
)

type nopPage struct{}

func (nopPage) Navigate(ctx context.Context, url string) error       { return nil }
func (nopPage) WaitVisible(ctx context.Context, sel string) error    { return nil }
func (nopPage) Text(ctx context.Context, sel string) (string, error) { return "", nil }
func (nopPage) TextAll(ctx context.Context, sel string) ([]string, error) {
	return nil, nil
}
func (nopPage) Click(ctx context.Context, sel string) error      { return nil }
func (nopPage) Type(ctx context.Context, sel, text string) error { return nil }
func (nopPage) Evaluate(ctx context.Context, js string, out any) error {
	return nil
}

func TestSessionStartsPageOnce(t *testing.T) {
	starts := 0
	s := NewSession(config.BrowserConfig{}, func(cfg config.BrowserConfig) (Page, func(), error) {
		starts++
		return nopPage{}, func() {}, nil
	})
	for i := 0; i < 3; i++ {
		_, release, err := s.Acquire(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		release()
	}
	if starts != 1 {
		t.Fatalf("factory ran %d times, want 1", starts)
	}
}

func TestSessionSerializesOperations(t *testing.T) {
	s := NewSession(config.BrowserConfig{}, func(cfg config.BrowserConfig) (Page, func(), error) {
		return nopPage{}, func() {}, nil
	})
	inFlight := 0
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, release, err := s.Acquire(context.Background())
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			inFlight++
			if inFlight != 1 {
				t.Errorf("concurrent holders: %d", inFlight)
			}
			inFlight--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()
}

func TestSessionFactoryErrorPropagates(t *testing.T) {
	s := NewSession(config.BrowserConfig{}, func(cfg config.BrowserConfig) (Page, func(), error) {
		return nil, nil, errors.New("chrome missing")
	})
	if _, _, err := s.Acquire(context.Background()); err == nil {
		t.Fatal("expected factory error")
	}
	// A later attempt retries the factory instead of caching failure
	if _, _, err := s.Acquire(context.Background()); err == nil {
		t.Fatal("expected factory error on retry")
	}
}

func TestSessionCloseResets(t *testing.T) {
	closed := 0
	s := NewSession(config.BrowserConfig{}, func(cfg config.BrowserConfig) (Page, func(), error) {
		return nopPage{}, func() { closed++ }, nil
	})
	_, release, err := s.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	release()
	s.SetLoggedIn(true)
	s.Close()
	if closed != 1 {
		t.Fatalf("closeFn ran %d times", closed)
	}
	if s.LoggedIn() {
		t.Fatal("login flag should reset on close")
	}
}
