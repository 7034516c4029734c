package leadgen

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"leadscout/internal/commentgen"
	"leadscout/internal/config"
	"leadscout/internal/intent"
	"leadscout/internal/keywords"
	"leadscout/internal/llm"
	"leadscout/internal/logging"
	"leadscout/internal/match"
	"leadscout/internal/metrics"
	"leadscout/internal/model"
	"leadscout/internal/platform"
	"leadscout/internal/relevance"
	"leadscout/internal/reply"
	"leadscout/internal/store/actionlog"
	"leadscout/internal/util"
)

const leadContentRunes = 500

// Orchestrator runs the two top-level flows: Analyze, which turns a product
// description into ranked leads, and Promote, which dispatches replies to
// matching comments. Single-item failures inside either flow are logged and
// dropped; only total inability to proceed surfaces as an error.
type Orchestrator struct {
	plat   platform.Platform
	gw     llm.Gateway
	cfg    config.Config
	ledger *actionlog.DB // nil disables budgets and the audit trail

	filter  *relevance.Filter
	scorer  *intent.Scorer
	matcher *match.Analyzer
	replier *reply.Generator

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func New(plat platform.Platform, gw llm.Gateway, cfg config.Config, ledger *actionlog.DB) *Orchestrator {
	return &Orchestrator{
		plat:    plat,
		gw:      gw,
		cfg:     cfg,
		ledger:  ledger,
		filter:  relevance.New(gw),
		scorer:  intent.New(gw),
		matcher: match.New(gw),
		replier: reply.New(gw, nil),
		now:     time.Now,
		sleep:   sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// resolveKeywords returns the query's own keywords or derives them from the
// product description.
func (o *Orchestrator) resolveKeywords(ctx context.Context, q model.ProductQuery) string {
	if strings.TrimSpace(q.Keywords) != "" {
		return keywords.Clean(q.Keywords)
	}
	return keywords.Generate(ctx, o.gw, q.Description)
}

// postResult carries one post's leads out of its worker goroutine. Results
// are slotted by post index, so the final ordering never depends on
// completion order.
type postResult struct {
	leads []model.Lead
}

// Analyze searches for posts about the product, scores post bodies and their
// comments for purchase intent, and returns leads ordered by descending
// intent score. Post leads are always emitted for surviving posts; comment
// leads only above the configured score floor.
func (o *Orchestrator) Analyze(ctx context.Context, query model.ProductQuery) ([]model.Lead, error) {
	defer metrics.ObserveAnalyzeDuration(o.now())
	metrics.SearchRuns.Inc()

	kw := o.resolveKeywords(ctx, query)
	// Config supplies the default bound; an explicit query bound replaces it.
	maxPosts := o.cfg.Analysis.MaxPosts
	if query.MaxPosts > 0 {
		maxPosts = query.MaxPosts
	}
	candidates, err := o.plat.SearchPosts(ctx, kw, maxPosts)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	logging.Info("analyze_search", map[string]any{"keywords": kw, "candidates": len(candidates)})

	var kept []model.CandidatePost
	for _, c := range candidates {
		if o.filter.IsRelevant(ctx, c.Title, query.Description) {
			kept = append(kept, c)
		} else {
			logging.Info("analyze_filtered", map[string]any{"title": c.Title})
		}
	}

	results := make([]postResult, len(kept))
	var wg sync.WaitGroup
	for i, cand := range kept {
		wg.Add(1)
		go func(i int, cand model.CandidatePost) {
			defer wg.Done()
			results[i] = o.analyzePost(ctx, i, cand, query)
		}(i, cand)
	}
	wg.Wait()

	var leads []model.Lead
	for _, r := range results {
		leads = append(leads, r.leads...)
	}
	sort.SliceStable(leads, func(i, j int) bool { return leads[i].IntentScore > leads[j].IntentScore })
	return leads, nil
}

// analyzePost fetches one post and produces its post lead plus any comment
// leads. A content fetch failure drops the whole post; a comment fetch
// failure drops only the comments.
func (o *Orchestrator) analyzePost(ctx context.Context, postIdx int, cand model.CandidatePost, query model.ProductQuery) postResult {
	content, err := o.plat.GetPostContent(ctx, cand.URL)
	if err != nil {
		logging.Warn("analyze_post_skip", map[string]any{"url": cand.URL, "err": err.Error()})
		return postResult{}
	}
	title := content.Title
	if title == "" {
		title = cand.Title
	}
	category := commentgen.DetectDomain(title, content.Body)
	date := content.PublishTime
	if date == "" {
		date = o.now().UTC().Format("2006-01-02")
	}

	comments, err := o.plat.GetPostComments(ctx, cand.URL)
	if err != nil {
		logging.Warn("analyze_comments_skip", map[string]any{"url": cand.URL, "err": err.Error()})
		comments = nil
	}
	if n := o.cfg.Analysis.CommentsPerPost; n > 0 && len(comments) > n {
		comments = comments[:n]
	}

	postScore := o.scorer.Score(ctx, title+" "+content.Body, query.Description)
	leads := []model.Lead{{
		ID:          fmt.Sprintf("post-%d", postIdx),
		Username:    firstNonEmpty(content.Author, usernameFromURL(cand.URL)),
		Platform:    o.plat.Name(),
		Category:    category,
		Date:        date,
		Title:       title,
		Question:    extractQuestion(title, content.Body),
		Content:     leadContent(content.Body),
		URL:         cand.URL,
		IntentScore: postScore,
		Type:        model.LeadTypePost,
	}}

	scores := make([]int, len(comments))
	var wg sync.WaitGroup
	for j, c := range comments {
		wg.Add(1)
		go func(j int, text string) {
			defer wg.Done()
			scores[j] = o.scorer.Score(ctx, text, query.Description)
		}(j, c.Content)
	}
	wg.Wait()

	for j, c := range comments {
		if scores[j] < o.cfg.Analysis.MinCommentScore {
			continue
		}
		leads = append(leads, model.Lead{
			ID:          fmt.Sprintf("comment-%d-%d", postIdx, j),
			Username:    c.Username,
			Platform:    o.plat.Name(),
			Category:    category,
			Date:        firstNonEmpty(c.Timestamp, date),
			Title:       title,
			Question:    extractQuestion(c.Content, ""),
			Content:     leadContent(c.Content),
			URL:         fmt.Sprintf("%s#comment-%d", cand.URL, j),
			IntentScore: scores[j],
			Type:        model.LeadTypeComment,
		})
	}
	return postResult{leads: leads}
}

// Promote searches for posts, matches their comments against the product,
// and replies to each matching comment in order with pacing delays between
// dispatches. It requires a logged-in platform session.
func (o *Orchestrator) Promote(ctx context.Context, query model.ProductQuery) (model.PromoteReport, error) {
	report := model.PromoteReport{RunID: uuid.NewString()}
	if !o.plat.LoggedIn(ctx) {
		return report, model.NotLoggedIn(o.plat.Name())
	}
	defer metrics.ObservePromoteDuration(o.now())

	kw := o.resolveKeywords(ctx, query)
	report.Keywords = kw
	maxPosts := o.cfg.Promotion.MaxPosts
	if query.MaxPosts > 0 {
		maxPosts = query.MaxPosts
	}
	minScore := o.cfg.Promotion.MinMatchScore
	if query.MinMatchScore > 0 {
		minScore = query.MinMatchScore
	}

	posts, err := o.plat.SearchPosts(ctx, kw, maxPosts)
	if err != nil {
		return report, fmt.Errorf("search posts: %w", err)
	}
	report.SearchedPosts = len(posts)

	limiter := rate.NewLimiter(rate.Every(time.Duration(o.cfg.Promotion.ReplyDelaySeconds)*time.Second), 1)
	postDelay := time.Duration(o.cfg.Promotion.PostDelaySeconds) * time.Second

	for pi, post := range posts {
		if pi > 0 {
			if err := o.sleep(ctx, postDelay); err != nil {
				return report, err
			}
		}
		comments, err := o.plat.GetPostComments(ctx, post.URL)
		if err != nil {
			o.note(&report, fmt.Sprintf("comments unavailable for %s: %v", post.URL, err))
			continue
		}
		if n := o.cfg.Analysis.CommentsPerPost; n > 0 && len(comments) > n {
			comments = comments[:n]
		}
		for _, c := range comments {
			report.AnalyzedComments++
			res := o.matcher.Match(ctx, c.Content, query.Description)
			if res.Score < minScore || !res.NeedsProduct {
				continue
			}
			report.MatchedComments++
			rec := model.ReplyRecord{
				PostURL:    post.URL,
				Username:   c.Username,
				Comment:    c.Content,
				MatchScore: res.Score,
			}
			o.dispatch(ctx, limiter, &report, &rec, post.URL, c, query)
			if rec.Success {
				report.SuccessReplies++
			} else {
				report.FailedReplies++
				if len(report.Failures) < 5 {
					report.Failures = append(report.Failures, rec)
				}
			}
			if len(report.Matches) < 10 {
				report.Matches = append(report.Matches, rec)
			}
		}
	}
	return report, nil
}

// dispatch sends one reply, updating rec in place. Budget exhaustion and
// send failures are recorded, never returned.
func (o *Orchestrator) dispatch(ctx context.Context, limiter *rate.Limiter, report *model.PromoteReport, rec *model.ReplyRecord, postURL string, c model.Comment, query model.ProductQuery) {
	if o.ledger != nil {
		ok, err := o.ledger.AllowDispatch(ctx, o.cfg.Promotion, o.now())
		if err != nil {
			o.note(report, fmt.Sprintf("budget check failed: %v", err))
		} else if !ok {
			rec.FailureReason = "reply budget exhausted"
			o.recordReply(ctx, report.RunID, *rec)
			return
		}
	}
	rec.ReplyText = o.replier.Generate(ctx, c.Content, query.Description, c.Username)
	if err := limiter.Wait(ctx); err != nil {
		rec.FailureReason = err.Error()
		return
	}
	if _, err := o.plat.ReplyToComment(ctx, postURL, c.Content, rec.ReplyText); err != nil {
		rec.FailureReason = err.Error()
		metrics.RepliesFailed.Inc()
		logging.Warn("promote_reply_failed", map[string]any{"url": postURL, "err": err.Error()})
	} else {
		rec.Success = true
		metrics.RepliesSent.Inc()
		if o.ledger != nil {
			if err := o.ledger.PutAction(ctx, o.now(), actionlog.ActionReply); err != nil {
				o.note(report, fmt.Sprintf("ledger write failed: %v", err))
			}
		}
	}
	o.recordReply(ctx, report.RunID, *rec)
}

func (o *Orchestrator) recordReply(ctx context.Context, runID string, rec model.ReplyRecord) {
	if o.ledger == nil {
		return
	}
	err := o.ledger.PutReplyRecord(ctx, o.now(), actionlog.ReplyRow{
		RunID:         runID,
		PostURL:       rec.PostURL,
		Username:      rec.Username,
		Comment:       rec.Comment,
		MatchScore:    rec.MatchScore,
		ReplyText:     rec.ReplyText,
		Success:       rec.Success,
		FailureReason: rec.FailureReason,
	})
	if err != nil {
		logging.Warn("promote_audit_failed", map[string]any{"err": err.Error()})
	}
}

func (o *Orchestrator) note(report *model.PromoteReport, msg string) {
	report.Notes = append(report.Notes, msg)
	logging.Warn("promote_note", map[string]any{"note": msg})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func leadContent(s string) string { return util.TruncateRunes(util.NormalizeWhitespace(s), leadContentRunes) }

// usernameFromURL pulls a username out of /u/ or /user/ path segments.
func usernameFromURL(u string) string {
	for _, marker := range []string{"/user/", "/u/"} {
		if i := strings.Index(u, marker); i >= 0 {
			rest := u[i+len(marker):]
			if j := strings.IndexAny(rest, "/?#"); j >= 0 {
				rest = rest[:j]
			}
			if rest != "" {
				return rest
			}
		}
	}
	return ""
}

// extractQuestion returns the first question sentence found in the text,
// falling back to fallbackText, then a capped excerpt of the text itself.
func extractQuestion(text, fallbackText string) string {
	for _, t := range []string{text, fallbackText} {
		if q := firstQuestion(t); q != "" {
			return q
		}
	}
	return util.TruncateRunes(strings.TrimSpace(text), 100)
}

// firstQuestion returns the first sentence ending in a question mark, the
// terminator included.
func firstQuestion(text string) string {
	start := 0
	for i, r := range text {
		switch r {
		case '.', '!', '\n':
			start = i + 1
		case '?':
			return strings.TrimSpace(text[start : i+1])
		}
	}
	return ""
}
