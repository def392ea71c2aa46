package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pkg/errors"

	"github.com/daybrief/daybrief/digest"
	"github.com/daybrief/daybrief/enums"
	"github.com/daybrief/daybrief/models"
)

const (
	duolingoBaseURL   = "https://www.duolingo.com"
	duolingoUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	defaultXPGoal = 20
)

type Duolingo struct {
	logger   *slog.Logger
	client   *http.Client
	username string
	jwt      string
	baseURL  string
}

func NewDuolingo(logger *slog.Logger, client *http.Client, username, jwt string) *Duolingo {
	return &Duolingo{
		logger:   logger,
		client:   client,
		username: username,
		jwt:      jwt,
		baseURL:  duolingoBaseURL,
	}
}

func (s *Duolingo) Name() enums.Source { return enums.SourceDuolingo }

func (s *Duolingo) Fetch(ctx context.Context) (digest.Record, error) {
	// The user lookup doubles as token verification.
	var user models.DuolingoUser
	if err := s.get(ctx, fmt.Sprintf("%s/users/%s", s.baseURL, s.username), &user); err != nil {
		return nil, errors.Wrap(err, "duolingo: verify token")
	}

	var detail models.DuolingoUserDetail
	if err := s.get(ctx, fmt.Sprintf("%s/2017-06-30/users/%d", s.baseURL, user.ID), &detail); err != nil {
		return nil, errors.Wrap(err, "duolingo: fetch user detail")
	}

	xpGoal := detail.XPGoal
	if xpGoal == 0 {
		xpGoal = defaultXPGoal
	}

	record := models.DuolingoRecord{
		Streak:           detail.Streak,
		XPToday:          detail.XPGainedToday,
		XPGoal:           xpGoal,
		TotalXP:          detail.TotalXP,
		LearningLanguage: detail.LearningLanguage,
		CompletedToday:   detail.XPGainedToday >= xpGoal,
	}

	s.logger.Info("duolingo stats collected",
		"streak", record.Streak,
		"xp_today", record.XPToday,
		"completed", record.CompletedToday)

	return record, nil
}

func (s *Duolingo) get(ctx context.Context, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", duolingoUserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	req.Header.Set("Authorization", "Bearer "+s.jwt)

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
