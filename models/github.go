package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/daybrief/daybrief/enums"
)

type GitHubSearchResult struct {
	TotalCount int                `json:"total_count"`
	Items      []GitHubSearchItem `json:"items"`
}

type GitHubSearchItem struct {
	Title         string     `json:"title"`
	HTMLURL       string     `json:"html_url"`
	RepositoryURL string     `json:"repository_url"`
	User          GitHubUser `json:"user"`
}

type GitHubUser struct {
	Login string `json:"login"`
}

type GitHubEvent struct {
	Type      string             `json:"type"`
	Public    bool               `json:"public"`
	CreatedAt time.Time          `json:"created_at"`
	Repo      GitHubEventRepo    `json:"repo"`
	Payload   GitHubEventPayload `json:"payload"`
}

type GitHubEventRepo struct {
	Name string `json:"name"`
}

type GitHubEventPayload struct {
	Action      string             `json:"action"`
	PullRequest *GitHubPullRequest `json:"pull_request"`
	Issue       *GitHubIssue       `json:"issue"`
	Commits     []GitHubCommit     `json:"commits"`
}

type GitHubPullRequest struct {
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
	Merged  bool   `json:"merged"`
}

type GitHubIssue struct {
	Title   string `json:"title"`
	HTMLURL string `json:"html_url"`
}

type GitHubCommit struct {
	SHA string `json:"sha"`
}

// GitHubItem is one PR, issue or starred repo surfaced in the digest.
type GitHubItem struct {
	Title string
	URL   string
	Repo  string
}

// GitHubRecord summarizes the previous day's coding activity.
type GitHubRecord struct {
	Commits      int
	PRsCreated   []GitHubItem
	PRsMerged    []GitHubItem
	IssuesClosed []GitHubItem
	Starred      []GitHubItem
	WeekStreak   int
	HasActivity  bool
}

func (GitHubRecord) Source() enums.Source { return enums.SourceGitHub }

func (r GitHubRecord) Block() string {
	if !r.HasActivity {
		return "💻 Coding\n• No GitHub activity yesterday"
	}

	lines := []string{"💻 Coding"}

	if r.Commits > 0 {
		lines = append(lines, fmt.Sprintf("• Pushed %d commits", r.Commits))
	}
	for _, pr := range limit(r.PRsCreated, 3) {
		lines = append(lines, fmt.Sprintf("• Opened PR: [%s](%s) (%s)", pr.Title, pr.URL, pr.Repo))
	}
	for _, pr := range limit(r.PRsMerged, 2) {
		lines = append(lines, fmt.Sprintf("• Merged PR: [%s](%s) (%s)", pr.Title, pr.URL, pr.Repo))
	}
	for _, issue := range limit(r.IssuesClosed, 2) {
		lines = append(lines, fmt.Sprintf("• Closed issue: [%s](%s) (%s)", issue.Title, issue.URL, issue.Repo))
	}
	for _, star := range limit(r.Starred, 2) {
		lines = append(lines, fmt.Sprintf("• Starred [%s](%s)", star.Repo, star.URL))
	}
	if r.WeekStreak > 0 {
		lines = append(lines, fmt.Sprintf("• Contribution streak: %d days 🔥", r.WeekStreak))
	}

	return strings.Join(lines, "\n")
}
