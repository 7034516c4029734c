package report

import (
	"fmt"
	"strings"

	"leadscout/internal/model"
	"leadscout/internal/util"
)

// RenderLeads formats a ranked lead list for terminal review.
func RenderLeads(leads []model.Lead) string {
	if len(leads) == 0 {
		return "No leads found.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d leads:\n\n", len(leads))
	for _, l := range leads {
		fmt.Fprintf(&b, "[%3d] %-7s %s\n", l.IntentScore, l.Type, util.TruncateRunes(l.Title, 70))
		if l.Username != "" {
			fmt.Fprintf(&b, "      by %s", l.Username)
			if l.Date != "" {
				fmt.Fprintf(&b, " (%s)", l.Date)
			}
			b.WriteString("\n")
		}
		if l.Question != "" && l.Question != l.Title {
			fmt.Fprintf(&b, "      Q: %s\n", util.TruncateRunes(l.Question, 90))
		}
		fmt.Fprintf(&b, "      %s\n\n", l.URL)
	}
	return b.String()
}

// RenderPromote formats a promote run report. The detail sections show only
// the truncated lists carried on the report; counters cover everything.
func RenderPromote(r model.PromoteReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Promotion run %s\n", r.RunID)
	fmt.Fprintf(&b, "Keywords: %s\n", r.Keywords)
	fmt.Fprintf(&b, "Posts searched:    %d\n", r.SearchedPosts)
	fmt.Fprintf(&b, "Comments analyzed: %d\n", r.AnalyzedComments)
	fmt.Fprintf(&b, "Comments matched:  %d\n", r.MatchedComments)
	fmt.Fprintf(&b, "Replies sent:      %d\n", r.SuccessReplies)
	fmt.Fprintf(&b, "Replies failed:    %d\n", r.FailedReplies)
	if len(r.Matches) > 0 {
		b.WriteString("\nMatched comments:\n")
		for _, m := range r.Matches {
			status := "sent"
			if !m.Success {
				status = "failed"
			}
			fmt.Fprintf(&b, "  [%5.1f] %-6s %s: %s\n", m.MatchScore, status, m.Username, util.TruncateRunes(m.Comment, 60))
			if m.ReplyText != "" {
				fmt.Fprintf(&b, "          reply: %s\n", util.TruncateRunes(m.ReplyText, 80))
			}
		}
	}
	if len(r.Failures) > 0 {
		b.WriteString("\nFailures:\n")
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "  %s: %s\n", f.Username, f.FailureReason)
		}
	}
	for _, n := range r.Notes {
		fmt.Fprintf(&b, "note: %s\n", n)
	}
	return b.String()
}
