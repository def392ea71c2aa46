package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/net/proxy"

	"github.com/daybrief/daybrief/collector"
	"github.com/daybrief/daybrief/config"
	"github.com/daybrief/daybrief/metrics"
	"github.com/daybrief/daybrief/notifiers"
	"github.com/daybrief/daybrief/sources"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	runID := uuid.NewString()
	opts := slog.HandlerOptions{Level: cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &opts)).With("run_id", runID)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	client, err := httpClient(cfg.ProxyURL)
	if err != nil {
		slog.Error("failed to create http client", "error", err)
		os.Exit(1)
	}

	notifier, err := notifiers.New(cfg, client)
	if err != nil {
		slog.Error("failed to create notifier", "error", err)
		os.Exit(1)
	}

	recorder := metrics.NewRecorder()

	ctx := context.Background()
	start := time.Now()
	coll := collector.New(logger, runID, cfg.Location, enabledSources(cfg, logger, client)...)
	report := coll.Collect(ctx)
	recorder.ObserveRun(report, time.Since(start))

	if err := notifier.Send(ctx, report); err != nil {
		slog.Error("failed to send report", "notifier", notifier.Name(), "error", err)
		recorder.ObserveDelivery(false)
		recorder.Push(cfg.PushgatewayURL)
		os.Exit(1)
	}

	recorder.ObserveDelivery(true)
	recorder.Push(cfg.PushgatewayURL)

	slog.Info("daily brief delivered",
		"notifier", notifier.Name(),
		"sources", len(report.Sources),
		"errors", len(report.Errors))
}

// enabledSources assembles the sources whose flags and credentials are both
// set, in presentation order.
func enabledSources(cfg *config.Config, logger *slog.Logger, client *http.Client) []sources.Source {
	enabled := make([]sources.Source, 0, 7)

	if cfg.ZeppEnabled() {
		enabled = append(enabled, sources.NewZepp(logger, client, cfg.ZeppUsername, cfg.ZeppPassword, cfg.SleepGoalHours, cfg.Location))
	}
	if cfg.HealthEnabled() {
		enabled = append(enabled, sources.NewHealth(logger, cfg.HealthSteps, cfg.HealthSleepHours, cfg.StepGoal, cfg.SleepGoalHours))
	}
	if cfg.GitHubEnabled() {
		enabled = append(enabled, sources.NewGitHub(logger, client, cfg.GitHubToken, cfg.GitHubUsername, cfg.Location))
	}
	if cfg.WeReadEnabled() {
		enabled = append(enabled, sources.NewWeRead(logger, client, cfg.WeReadCookie))
	}
	if cfg.DuolingoEnabled() {
		enabled = append(enabled, sources.NewDuolingo(logger, client, cfg.DuolingoUsername, cfg.DuolingoJWT))
	}
	if cfg.SteamEnabled() {
		enabled = append(enabled, sources.NewSteam(logger, client, cfg.SteamAPIKey, cfg.SteamID))
	}
	if cfg.PoemEnabled() {
		enabled = append(enabled, sources.NewPoem(logger, client))
	}

	return enabled
}

func httpClient(proxyURL string) (*http.Client, error) {
	client := &http.Client{Timeout: 10 * time.Second}

	if proxyURL == "" {
		return client, nil
	}

	parsedURL, err := url.Parse(proxyURL)
	if err != nil {
		return nil, err
	}
	if parsedURL.Scheme != "socks5" {
		return client, nil
	}

	// SOCKS5 proxy with authentication
	var auth *proxy.Auth
	if parsedURL.User != nil {
		password, _ := parsedURL.User.Password()
		auth = &proxy.Auth{
			User:     parsedURL.User.Username(),
			Password: password,
		}
	}

	dialer, err := proxy.SOCKS5("tcp", parsedURL.Host, auth, proxy.Direct)
	if err != nil {
		return nil, err
	}

	client.Transport = &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialer.Dial(network, addr)
		},
	}
	slog.Info("using SOCKS5 proxy", "proxy", parsedURL.Host)

	return client, nil
}
