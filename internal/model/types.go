package model

// ProductQuery describes one orchestration run. Immutable once the run starts.
// The numeric fields treat zero as "unset, use the configured default". An
// explicit zero threshold is indistinguishable from unset; the needs-product
// gate already filters everything a sub-default threshold would admit.
type ProductQuery struct {
	Description   string
	Keywords      string // derived from Description when empty
	MaxPosts      int
	MinMatchScore float64
}

// CandidatePost is a search hit before any deeper processing.
// Posts have no identity beyond their URL.
type CandidatePost struct {
	Title string
	URL   string
}

// PostContent is the fetched body of a surviving post.
type PostContent struct {
	Title       string
	Author      string
	PublishTime string
	Body        string
}

// Comment is one extracted comment. Comments carry no stable ID; the raw
// content string is the identity used for reply targeting.
type Comment struct {
	Username  string
	Content   string
	Timestamp string
}

// MatchResult is the reply-eligibility judgment for a comment against a
// product. Distinct from the intent score: this gates replies, it does not
// rank leads.
type MatchResult struct {
	Score           float64
	NeedsProduct    bool
	Reason          string
	MatchedKeywords []string
}

// LeadType distinguishes post leads from comment leads.
type LeadType string

const (
	LeadTypePost    LeadType = "post"
	LeadTypeComment LeadType = "comment"
)

// Lead is a ranked candidate judged to express purchase intent.
type Lead struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Platform    string   `json:"platform"`
	Category    string   `json:"category"`
	Date        string   `json:"date"`
	Title       string   `json:"title"`
	Question    string   `json:"question"`
	Content     string   `json:"content"`
	URL         string   `json:"url"`
	IntentScore int      `json:"intentScore"`
	Type        LeadType `json:"type"`
}

// ReplyRecord is one dispatch attempt made during the promote flow.
type ReplyRecord struct {
	PostURL       string
	Username      string
	Comment       string
	MatchScore    float64
	ReplyText     string
	Success       bool
	FailureReason string
}

// PromoteReport aggregates one promote run. Detail lists are truncated for
// human review; the counters are complete.
type PromoteReport struct {
	RunID            string
	Keywords         string
	SearchedPosts    int
	AnalyzedComments int
	MatchedComments  int
	SuccessReplies   int
	FailedReplies    int
	Matches          []ReplyRecord // first 10 matched comments
	Failures         []ReplyRecord // first 5 failed dispatches
	Notes            []string      // degraded-path diagnostics, best effort
}
