package platform

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"leadscout/internal/browser"
	"leadscout/internal/logging"
	"leadscout/internal/model"
	"leadscout/internal/util"
)

// Reddit drives reddit.com through the shared browser session. Reddit ships
// several frontend experiments, so every lookup runs through a selector
// fallback list; correctness of any single selector is not assumed.
type Reddit struct {
	session *browser.Session
}

func NewReddit(session *browser.Session) *Reddit {
	return &Reddit{session: session}
}

func (r *Reddit) Name() string    { return "reddit" }
func (r *Reddit) BaseURL() string { return "https://www.reddit.com" }

var (
	redditTitleSelectors = []string{
		`h1[data-testid="post-title"]`,
		`[data-testid="post-title"]`,
		`shreddit-post h1`,
		`h1`,
	}
	redditAuthorSelectors = []string{
		`a[data-testid="post_author_link"]`,
		`shreddit-post a[href*="/user/"]`,
		`a[href*="/user/"]`,
	}
	redditTimeSelectors = []string{
		`shreddit-post time`,
		`time`,
	}
	redditCommentInputSelectors = []string{
		`shreddit-simple-composer div[contenteditable="true"]`,
		`comment-composer-host div[contenteditable="true"]`,
		`div[contenteditable="true"]`,
		`textarea[name="comment"]`,
	}
	redditSubmitSelectors = []string{
		`button[slot="submit-button"]`,
		`shreddit-simple-composer button[type="submit"]`,
		`button[type="submit"]`,
	}
	redditReplyInputSelectors = []string{
		`shreddit-comment div[contenteditable="true"]`,
		`comment-composer-host div[contenteditable="true"]`,
		`div[contenteditable="true"]`,
	}
)

// loggedInJS detects an authenticated session by the user drawer, falling
// back to the absence of a login link.
const loggedInJS = `(() => {
  if (document.querySelector('#expand-user-drawer-button')) return true;
  if (document.querySelector('faceplate-dropdown-menu [aria-label*="profile" i]')) return true;
  const login = Array.from(document.querySelectorAll('a[href*="/login"]'))
    .some(a => a.offsetParent !== null);
  return !login;
})()`

// Login opens the login page and waits for the user to finish signing in by
// hand. The browser profile persists the session afterwards.
func (r *Reddit) Login(ctx context.Context) (string, error) {
	page, release, err := r.session.Acquire(ctx)
	if err != nil {
		return "", model.BrowserUnavailable(err)
	}
	defer release()
	if ok, _ := r.checkLoggedIn(ctx, page); ok {
		r.session.SetLoggedIn(true)
		return "Already logged in to Reddit", nil
	}
	if err := page.Navigate(ctx, r.BaseURL()+"/login"); err != nil {
		return "", fmt.Errorf("open login page: %w", err)
	}
	logging.Info("login_wait", map[string]any{"platform": "reddit"})
	deadline := time.Now().Add(2 * time.Minute)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(3 * time.Second):
		}
		if ok, _ := r.checkLoggedIn(ctx, page); ok {
			r.session.SetLoggedIn(true)
			return "Successfully logged in to Reddit", nil
		}
	}
	return "Login not completed; finish signing in in the browser window and retry", nil
}

// LoggedIn reports the cached flag, probing the page once when unset. The
// flag can go stale if the user logs out in the browser; there is no
// detection for that.
func (r *Reddit) LoggedIn(ctx context.Context) bool {
	if r.session.LoggedIn() {
		return true
	}
	page, release, err := r.session.Acquire(ctx)
	if err != nil {
		return false
	}
	defer release()
	if err := page.Navigate(ctx, r.BaseURL()); err != nil {
		return false
	}
	ok, _ := r.checkLoggedIn(ctx, page)
	if ok {
		r.session.SetLoggedIn(true)
	}
	return ok
}

func (r *Reddit) checkLoggedIn(ctx context.Context, page browser.Page) (bool, error) {
	var ok bool
	if err := page.Evaluate(ctx, loggedInJS, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

const searchResultsJS = `(() => {
  const seen = new Set();
  const out = [];
  const anchors = document.querySelectorAll(
    'a[data-testid="post-title"], a[slot="full-post-link"], faceplate-tracker a[href*="/comments/"]');
  for (const a of anchors) {
    const title = (a.getAttribute('aria-label') || a.textContent || '').trim();
    let href = a.getAttribute('href') || '';
    if (!href || !title) continue;
    if (href.startsWith('/')) href = 'https://www.reddit.com' + href;
    if (!href.includes('/comments/')) continue;
    href = href.split('?')[0];
    if (seen.has(href)) continue;
    seen.add(href);
    out.push({title: title, url: href});
  }
  return out;
})()`

// SearchPosts runs a site search and returns up to limit unique posts.
func (r *Reddit) SearchPosts(ctx context.Context, keywordsText string, limit int) ([]model.CandidatePost, error) {
	page, release, err := r.session.Acquire(ctx)
	if err != nil {
		return nil, model.BrowserUnavailable(err)
	}
	defer release()
	searchURL := r.BaseURL() + "/search/?q=" + url.QueryEscape(keywordsText)
	if err := page.Navigate(ctx, searchURL); err != nil {
		return nil, fmt.Errorf("navigate search: %w", err)
	}
	// Results render progressively; a missed wait just means fewer hits.
	_ = page.WaitVisible(ctx, `a[data-testid="post-title"], a[slot="full-post-link"]`)
	var raw []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	}
	if err := page.Evaluate(ctx, searchResultsJS, &raw); err != nil {
		return nil, fmt.Errorf("extract search results: %w", err)
	}
	posts := make([]model.CandidatePost, 0, len(raw))
	for _, item := range raw {
		if limit > 0 && len(posts) >= limit {
			break
		}
		posts = append(posts, model.CandidatePost{
			Title: util.NormalizeWhitespace(item.Title),
			URL:   item.URL,
		})
	}
	return posts, nil
}

const postBodyJS = `(() => {
  const sels = ['div[data-testid="post-content"] p', 'shreddit-post p', 'article p', 'div.usertext-body p'];
  for (const sel of sels) {
    const els = document.querySelectorAll(sel);
    if (!els.length) continue;
    const parts = [];
    for (const el of Array.from(els).slice(0, 5)) {
      const t = (el.textContent || '').trim();
      if (t) parts.push(t);
    }
    if (parts.length) return parts.join(' ');
  }
  return '';
})()`

// GetPostContent fetches a post's title, author, publish time, and body.
// Missing pieces degrade to empty strings; the title stands in for a missing
// body.
func (r *Reddit) GetPostContent(ctx context.Context, postURL string) (model.PostContent, error) {
	var content model.PostContent
	page, release, err := r.session.Acquire(ctx)
	if err != nil {
		return content, model.BrowserUnavailable(err)
	}
	defer release()
	if err := page.Navigate(ctx, postURL); err != nil {
		return content, fmt.Errorf("navigate post: %w", err)
	}
	_ = page.WaitVisible(ctx, `h1`)
	content.Title = browser.FirstText(ctx, page, redditTitleSelectors)
	content.Author = strings.TrimPrefix(browser.FirstText(ctx, page, redditAuthorSelectors), "u/")
	content.PublishTime = browser.FirstText(ctx, page, redditTimeSelectors)
	var body string
	if err := page.Evaluate(ctx, postBodyJS, &body); err == nil {
		content.Body = util.NormalizeWhitespace(body)
	}
	if content.Body == "" {
		content.Body = content.Title
	}
	return content, nil
}

const commentsJS = `(() => {
  const out = [];
  const nodes = document.querySelectorAll('shreddit-comment');
  for (const c of nodes) {
    const author = c.getAttribute('author') ||
      (c.querySelector('a[href*="/user/"]')?.textContent || '').trim();
    const bodyEl = c.querySelector('[id$="-comment-rtjson-content"]') ||
      c.querySelector('div[slot="comment"]') || c.querySelector('p');
    const text = (bodyEl?.textContent || '').trim();
    const when = (c.querySelector('time')?.textContent || '').trim();
    if (text) out.push({username: author, content: text, timestamp: when});
  }
  return out;
})()`

// GetPostComments extracts the visible comments of a post. An empty page
// yields an empty list, never an error.
func (r *Reddit) GetPostComments(ctx context.Context, postURL string) ([]model.Comment, error) {
	page, release, err := r.session.Acquire(ctx)
	if err != nil {
		return nil, model.BrowserUnavailable(err)
	}
	defer release()
	if err := page.Navigate(ctx, postURL); err != nil {
		return nil, fmt.Errorf("navigate post: %w", err)
	}
	_ = page.WaitVisible(ctx, `shreddit-comment`)
	var raw []struct {
		Username  string `json:"username"`
		Content   string `json:"content"`
		Timestamp string `json:"timestamp"`
	}
	if err := page.Evaluate(ctx, commentsJS, &raw); err != nil {
		return nil, fmt.Errorf("extract comments: %w", err)
	}
	comments := make([]model.Comment, 0, len(raw))
	for _, c := range raw {
		comments = append(comments, model.Comment{
			Username:  strings.TrimPrefix(c.Username, "u/"),
			Content:   util.NormalizeWhitespace(c.Content),
			Timestamp: c.Timestamp,
		})
	}
	return comments, nil
}

// PostComment types text into the post's comment composer and submits it.
func (r *Reddit) PostComment(ctx context.Context, postURL, text string) (string, error) {
	page, release, err := r.session.Acquire(ctx)
	if err != nil {
		return "", model.BrowserUnavailable(err)
	}
	defer release()
	if err := page.Navigate(ctx, postURL); err != nil {
		return "", fmt.Errorf("navigate post: %w", err)
	}
	input := r.firstPresent(ctx, page, redditCommentInputSelectors)
	if input == "" {
		return "", fmt.Errorf("unable to find comment input box")
	}
	if err := page.Click(ctx, input); err != nil {
		return "", fmt.Errorf("focus comment input: %w", err)
	}
	if err := page.Type(ctx, input, text); err != nil {
		return "", fmt.Errorf("type comment: %w", err)
	}
	if !browser.FirstClick(ctx, page, redditSubmitSelectors) {
		// No submit button found; Enter usually submits the composer.
		if err := page.Type(ctx, input, "\n"); err != nil {
			return "", fmt.Errorf("submit comment: %w", err)
		}
	}
	return "Successfully posted comment: " + util.TruncateRunes(text, 50), nil
}

// ReplyToComment locates the target comment by substring containment (either
// direction) and replies to it. When several comments overlap textually the
// first match wins.
func (r *Reddit) ReplyToComment(ctx context.Context, postURL, commentContent, replyText string) (string, error) {
	page, release, err := r.session.Acquire(ctx)
	if err != nil {
		return "", model.BrowserUnavailable(err)
	}
	defer release()
	if err := page.Navigate(ctx, postURL); err != nil {
		return "", fmt.Errorf("navigate post: %w", err)
	}
	_ = page.WaitVisible(ctx, `shreddit-comment`)
	texts, err := page.TextAll(ctx, `shreddit-comment`)
	if err != nil {
		return "", fmt.Errorf("scan comments: %w", err)
	}
	idx := -1
	for i, t := range texts {
		if MatchesComment(t, commentContent) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", fmt.Errorf("comment containing %q not found", util.TruncateRunes(commentContent, 20))
	}
	clickReplyJS := fmt.Sprintf(`(() => {
  const c = document.querySelectorAll('shreddit-comment')[%d];
  if (!c) return false;
  const btn = c.querySelector('button[data-testid="comment-reply-button"]') ||
    Array.from(c.querySelectorAll('button')).find(b => /reply/i.test(b.textContent || ''));
  if (!btn) return false;
  btn.click();
  return true;
})()`, idx)
	var clicked bool
	if err := page.Evaluate(ctx, clickReplyJS, &clicked); err != nil || !clicked {
		return "", fmt.Errorf("found comment but unable to find reply button")
	}
	input := r.firstPresent(ctx, page, redditReplyInputSelectors)
	if input == "" {
		return "", fmt.Errorf("found comment but unable to locate reply input box")
	}
	if err := page.Click(ctx, input); err != nil {
		return "", fmt.Errorf("focus reply input: %w", err)
	}
	if err := page.Type(ctx, input, replyText); err != nil {
		return "", fmt.Errorf("type reply: %w", err)
	}
	if !browser.FirstClick(ctx, page, redditSubmitSelectors) {
		if err := page.Type(ctx, input, "\n"); err != nil {
			return "", fmt.Errorf("submit reply: %w", err)
		}
	}
	return "Successfully replied to comment: " + replyText, nil
}

// firstPresent returns the first selector that matches an element on the
// current page.
func (r *Reddit) firstPresent(ctx context.Context, page browser.Page, selectors []string) string {
	for _, sel := range selectors {
		var present bool
		js := fmt.Sprintf(`document.querySelector(%q) !== null`, sel)
		if err := page.Evaluate(ctx, js, &present); err == nil && present {
			return sel
		}
	}
	return ""
}
