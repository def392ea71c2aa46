package sources

import (
	"context"
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
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
	zeppUserBaseURL    = "https://api-user.huami.com"
	zeppAccountBaseURL = "https://account.huami.com"
	zeppAPIBaseURL     = "https://api-mifit.huami.com"
	zeppUserAgent      = "MiFit/4.6.0 (iPhone; iOS 14.0; Scale/2.00)"
	zeppRedirectURI    = "https://s3-us-west-2.amazonaws.com/hm-registration/successsignin.html"
)

type Zepp struct {
	logger    *slog.Logger
	client    *http.Client
	username  string
	password  string
	sleepGoal float64
	location  *time.Location

	userBaseURL    string
	accountBaseURL string
	apiBaseURL     string
}

func NewZepp(logger *slog.Logger, client *http.Client, username, password string, sleepGoal float64, location *time.Location) *Zepp {
	return &Zepp{
		logger:         logger,
		client:         client,
		username:       username,
		password:       password,
		sleepGoal:      sleepGoal,
		location:       location,
		userBaseURL:    zeppUserBaseURL,
		accountBaseURL: zeppAccountBaseURL,
		apiBaseURL:     zeppAPIBaseURL,
	}
}

func (s *Zepp) Name() enums.Source { return enums.SourceZepp }

func (s *Zepp) Fetch(ctx context.Context) (digest.Record, error) {
	token, err := s.login(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "zepp: login")
	}

	date := time.Now().In(s.location).AddDate(0, 0, -1).Format("2006-01-02")
	record := models.ZeppRecord{SleepGoal: s.sleepGoal}

	// Either endpoint failing leaves its fields zeroed.
	sleepParams := neturl.Values{}
	sleepParams.Set("date", date)
	sleep, err := s.fetchDaily(ctx, "/v1/sleep/stay_bed", token, sleepParams)
	if err != nil {
		s.logger.Warn("zepp: fetch sleep failed", "error", truncateError(err))
	} else if sleep.TotalStayBedTime > 0 {
		record.SleepHours = float64(sleep.TotalStayBedTime) / 3600
		record.DeepHours = float64(sleep.DeepSleepTime) / 3600
		record.SleepStart = time.Unix(sleep.Start, 0).In(s.location).Format("15:04")
	}

	stepsParams := neturl.Values{}
	stepsParams.Set("date", date)
	stepsParams.Set("source", "run,walk")
	steps, err := s.fetchDaily(ctx, "/v1/sport/run/history.json", token, stepsParams)
	if err != nil {
		s.logger.Warn("zepp: fetch steps failed", "error", truncateError(err))
	} else {
		record.Steps = steps.Steps
		record.DistanceKm = float64(steps.Distance) / 1000
	}

	s.logger.Info("zepp stats collected",
		"steps", record.Steps,
		"sleep_hours", fmt.Sprintf("%.1f", record.SleepHours))

	return record, nil
}

func (s *Zepp) login(ctx context.Context) (string, error) {
	form := neturl.Values{}
	form.Set("country_code", "CN")
	form.Set("device_id", randomDeviceID())
	form.Set("device_model", "iPhone")
	form.Set("app_version", "4.6.0")
	form.Set("device_type", "ios")
	form.Set("third_name", "huami_phone")
	form.Set("password", hashPassword(s.password))

	var loginURL string
	if strings.Contains(s.username, "@") {
		loginURL = fmt.Sprintf("%s/registrations/%s/tokens", s.userBaseURL, strings.Replace(s.username, "@", "%40", 1))
		form.Set("client_id", "HuaMi")
		form.Set("redirect_uri", zeppRedirectURI)
	} else {
		loginURL = s.accountBaseURL + "/v2/client/login"
		phone := s.username
		if !strings.HasPrefix(phone, "+") {
			phone = "+86" + phone
		}
		form.Set("account", phone)
		form.Set("grant_type", "password")
	}

	req, err := http.NewRequestWithContext(ctx, "POST", loginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", zeppUserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	var token models.ZeppTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", err
	}

	if token.TokenInfo != nil && token.TokenInfo.AccessToken != "" {
		return token.TokenInfo.AccessToken, nil
	}
	if token.AccessToken != "" {
		return token.AccessToken, nil
	}
	return "", errors.New("no access token in response")
}

func (s *Zepp) fetchDaily(ctx context.Context, path, token string, params neturl.Values) (*models.ZeppDailyData, error) {
	url := s.apiBaseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", zeppUserAgent)
	req.Header.Set("apptoken", token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var envelope models.ZeppDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

func hashPassword(password string) string {
	sum := md5.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}

func randomDeviceID() string {
	buf := make([]byte, 16)
	rand.Read(buf)
	sum := md5.Sum(buf)
	return hex.EncodeToString(sum[:])
}
