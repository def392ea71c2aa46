package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/daybrief/daybrief/digest"
	"github.com/daybrief/daybrief/enums"
	"github.com/daybrief/daybrief/models"
)

const (
	githubBaseURL   = "https://api.github.com"
	githubPageSize  = 30
	githubMaxPages  = 3
	streakMaxPages  = 5
	streakMaxLength = 7
)

type GitHub struct {
	logger   *slog.Logger
	client   *http.Client
	token    string
	username string
	location *time.Location
	baseURL  string
}

func NewGitHub(logger *slog.Logger, client *http.Client, token, username string, location *time.Location) *GitHub {
	return &GitHub{
		logger:   logger,
		client:   client,
		token:    token,
		username: username,
		location: location,
		baseURL:  githubBaseURL,
	}
}

func (s *GitHub) Name() enums.Source { return enums.SourceGitHub }

func (s *GitHub) Fetch(ctx context.Context) (digest.Record, error) {
	now := time.Now().In(s.location)
	yesterday := now.AddDate(0, 0, -1)
	start, end := previousDayWindow(now)

	record := models.GitHubRecord{}
	searchOK := true
	eventsOK := true

	prs, err := s.searchCreated(ctx, "pr", yesterday.Format("2006-01-02"))
	if err != nil {
		searchOK = false
		s.logger.Warn("github: search prs failed", "error", truncateError(err))
	}
	for _, item := range prs {
		record.PRsCreated = append(record.PRsCreated, models.GitHubItem{
			Title: item.Title,
			URL:   item.HTMLURL,
			Repo:  repoNameFromURL(item.RepositoryURL),
		})
	}

	// Created issues are not shown but still count toward activity.
	issues, err := s.searchCreated(ctx, "issue", yesterday.Format("2006-01-02"))
	if err != nil {
		s.logger.Warn("github: search issues failed", "error", truncateError(err))
	}
	createdIssues := len(issues)

	for page := 1; page <= githubMaxPages; page++ {
		events, err := s.fetchEvents(ctx, page)
		if err != nil {
			if page == 1 {
				eventsOK = false
			}
			s.logger.Warn("github: fetch events failed", "page", page, "error", truncateError(err))
			break
		}
		if s.reduceEvents(events, start, end, &record) || len(events) < githubPageSize {
			break
		}
	}

	if !searchOK && !eventsOK {
		return nil, errors.New("github: all requests failed")
	}

	record.WeekStreak = s.weekStreak(ctx, now)
	record.HasActivity = record.Commits > 0 || createdIssues > 0 ||
		len(record.PRsCreated) > 0 || len(record.PRsMerged) > 0 ||
		len(record.IssuesClosed) > 0 || len(record.Starred) > 0

	s.logger.Info("github stats collected",
		"commits", record.Commits,
		"prs_created", len(record.PRsCreated),
		"prs_merged", len(record.PRsMerged),
		"issues_closed", len(record.IssuesClosed),
		"stars", len(record.Starred),
		"streak", record.WeekStreak)

	return record, nil
}

// reduceEvents folds one page of events into the record. Returns true once an
// event older than the window is seen; events arrive newest first, so nothing
// after it can match.
func (s *GitHub) reduceEvents(events []models.GitHubEvent, start, end time.Time, record *models.GitHubRecord) bool {
	for _, event := range events {
		if event.CreatedAt.IsZero() {
			continue
		}
		if event.CreatedAt.Before(start) {
			return true
		}
		if event.CreatedAt.After(end) {
			continue
		}
		if !event.Public {
			continue
		}

		repo := event.Repo.Name

		switch event.Type {
		case "PullRequestEvent":
			pr := event.Payload.PullRequest
			merged := event.Payload.Action == "merged" ||
				(event.Payload.Action == "closed" && pr != nil && pr.Merged)
			if !merged {
				continue
			}
			item := models.GitHubItem{Repo: repo}
			if pr != nil {
				item.Title = pr.Title
				item.URL = pr.HTMLURL
			}
			// Events API sometimes omits PR details
			if item.Title == "" {
				item.Title = "PR in " + repo
			}
			if item.URL == "" {
				item.URL = "https://github.com/" + repo
			}
			record.PRsMerged = append(record.PRsMerged, item)
		case "IssuesEvent":
			if event.Payload.Action != "closed" || event.Payload.Issue == nil {
				continue
			}
			record.IssuesClosed = append(record.IssuesClosed, models.GitHubItem{
				Title: event.Payload.Issue.Title,
				URL:   event.Payload.Issue.HTMLURL,
				Repo:  repo,
			})
		case "WatchEvent":
			if event.Payload.Action != "started" {
				continue
			}
			record.Starred = append(record.Starred, models.GitHubItem{
				Repo: repo,
				URL:  "https://github.com/" + repo,
			})
		case "PushEvent":
			record.Commits += len(event.Payload.Commits)
		}
	}
	return false
}

// weekStreak counts consecutive days with any event activity, walking back
// from yesterday. Any failure yields zero rather than an error.
func (s *GitHub) weekStreak(ctx context.Context, now time.Time) int {
	activity := make(map[string]bool)
	for page := 1; page <= streakMaxPages; page++ {
		events, err := s.fetchEvents(ctx, page)
		if err != nil {
			s.logger.Debug("github: streak page failed", "page", page, "error", truncateError(err))
			break
		}
		for _, event := range events {
			if !event.CreatedAt.IsZero() {
				activity[event.CreatedAt.In(s.location).Format("2006-01-02")] = true
			}
		}
		if len(events) < githubPageSize {
			break
		}
	}

	streak := 0
	for i := 1; i <= streakMaxLength; i++ {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		if !activity[day] {
			break
		}
		streak++
	}
	return streak
}

func (s *GitHub) searchCreated(ctx context.Context, itemType, date string) ([]models.GitHubSearchItem, error) {
	query := fmt.Sprintf("is:%s is:public author:%s created:%s", itemType, s.username, date)
	url := fmt.Sprintf("%s/search/issues?q=%s&per_page=100", s.baseURL, neturl.QueryEscape(query))

	var result models.GitHubSearchResult
	if err := s.get(ctx, url, &result); err != nil {
		return nil, err
	}

	items := make([]models.GitHubSearchItem, 0, len(result.Items))
	for _, item := range result.Items {
		if item.User.Login == s.username {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *GitHub) fetchEvents(ctx context.Context, page int) ([]models.GitHubEvent, error) {
	url := fmt.Sprintf("%s/users/%s/events?page=%d&per_page=%d", s.baseURL, s.username, page, githubPageSize)

	var events []models.GitHubEvent
	if err := s.get(ctx, url, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *GitHub) get(ctx context.Context, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "token "+s.token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}

// previousDayWindow returns the UTC bounds of the previous calendar day in
// now's location.
func previousDayWindow(now time.Time) (time.Time, time.Time) {
	yesterday := now.AddDate(0, 0, -1)
	start := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Second)
	return start.UTC(), end.UTC()
}

func repoNameFromURL(url string) string {
	parts := strings.Split(url, "/")
	if len(parts) < 2 {
		return url
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1]
}
