package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"leadscout/internal/config"
)

// chromePage implements Page on a chromedp browser context.
type chromePage struct {
	ctx     context.Context
	timeout time.Duration
}

// OpenChrome launches (or reattaches to) a Chrome instance with a persistent
// profile directory, so the user's platform login survives restarts.
func OpenChrome(cfg config.BrowserConfig) (Page, func(), error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(cfg.UserDataDir),
		chromedp.Flag("headless", cfg.Headless),
		chromedp.WindowSize(1280, 800),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, nil, fmt.Errorf("start chrome: %w", err)
	}
	closeFn := func() {
		cancelCtx()
		cancelAlloc()
	}
	return &chromePage{ctx: browserCtx, timeout: timeout}, closeFn, nil
}

func (p *chromePage) run(ctx context.Context, actions ...chromedp.Action) error {
	opCtx, cancel := context.WithTimeout(p.ctx, p.timeout)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- chromedp.Run(opCtx, actions...) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		cancel()
		<-done
		return ctx.Err()
	}
}

func (p *chromePage) Navigate(ctx context.Context, url string) error {
	return p.run(ctx, chromedp.Navigate(url))
}

func (p *chromePage) WaitVisible(ctx context.Context, sel string) error {
	return p.run(ctx, chromedp.WaitVisible(sel, chromedp.ByQuery))
}

func (p *chromePage) Text(ctx context.Context, sel string) (string, error) {
	var out string
	err := p.run(ctx, chromedp.Text(sel, &out, chromedp.ByQuery, chromedp.AtLeast(0)))
	return out, err
}

func (p *chromePage) TextAll(ctx context.Context, sel string) ([]string, error) {
	var out []string
	js := fmt.Sprintf(
		`Array.from(document.querySelectorAll(%q)).map(el => el.textContent || "")`, sel)
	if err := p.run(ctx, chromedp.Evaluate(js, &out)); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *chromePage) Click(ctx context.Context, sel string) error {
	return p.run(ctx, chromedp.Click(sel, chromedp.ByQuery))
}

func (p *chromePage) Type(ctx context.Context, sel, text string) error {
	return p.run(ctx, chromedp.SendKeys(sel, text, chromedp.ByQuery))
}

func (p *chromePage) Evaluate(ctx context.Context, js string, out any) error {
	return p.run(ctx, chromedp.Evaluate(js, out))
}
