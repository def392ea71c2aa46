package models

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGitHubRecordBlock_NoActivity(t *testing.T) {
	record := GitHubRecord{}

	assert.Equal(t, "💻 Coding\n• No GitHub activity yesterday", record.Block())
}

func TestGitHubRecordBlock_ItemsRenderAsMarkdownLinks(t *testing.T) {
	record := GitHubRecord{
		HasActivity: true,
		Commits:     4,
		PRsCreated: []GitHubItem{
			{Title: "fix parser", URL: "https://github.com/a/b/pull/1", Repo: "a/b"},
		},
		Starred: []GitHubItem{
			{Repo: "c/d", URL: "https://github.com/c/d"},
		},
		WeekStreak: 3,
	}

	block := record.Block()

	assert.Contains(t, block, "• Pushed 4 commits")
	assert.Contains(t, block, "• Opened PR: [fix parser](https://github.com/a/b/pull/1) (a/b)")
	assert.Contains(t, block, "• Starred [c/d](https://github.com/c/d)")
	assert.Contains(t, block, "• Contribution streak: 3 days 🔥")
}

func TestGitHubRecordBlock_ListsAreCapped(t *testing.T) {
	record := GitHubRecord{HasActivity: true}
	for i := 1; i <= 5; i++ {
		record.PRsCreated = append(record.PRsCreated, GitHubItem{
			Title: fmt.Sprintf("pr-%d", i),
			URL:   fmt.Sprintf("https://github.com/a/b/pull/%d", i),
			Repo:  "a/b",
		})
		record.PRsMerged = append(record.PRsMerged, GitHubItem{
			Title: fmt.Sprintf("merged-%d", i),
			URL:   fmt.Sprintf("https://github.com/a/b/pull/%d", i),
			Repo:  "a/b",
		})
	}

	block := record.Block()

	assert.Equal(t, 3, strings.Count(block, "Opened PR:"))
	assert.Equal(t, 2, strings.Count(block, "Merged PR:"))
	assert.NotContains(t, block, "pr-4")
	assert.NotContains(t, block, "merged-3")
}

func TestGitHubRecordBlock_NoStreakLineAtZero(t *testing.T) {
	record := GitHubRecord{HasActivity: true, Commits: 1}

	assert.NotContains(t, record.Block(), "streak")
}
