package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	neturl "net/url"
	"sort"

	"github.com/pkg/errors"

	"github.com/daybrief/daybrief/digest"
	"github.com/daybrief/daybrief/enums"
	"github.com/daybrief/daybrief/models"
)

const (
	steamBaseURL   = "https://api.steampowered.com"
	steamUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

	steamTopGames     = 3
	steamNameMaxRunes = 20
)

type Steam struct {
	logger  *slog.Logger
	client  *http.Client
	apiKey  string
	steamID string
	baseURL string
}

func NewSteam(logger *slog.Logger, client *http.Client, apiKey, steamID string) *Steam {
	return &Steam{
		logger:  logger,
		client:  client,
		apiKey:  apiKey,
		steamID: steamID,
		baseURL: steamBaseURL,
	}
}

func (s *Steam) Name() enums.Source { return enums.SourceSteam }

func (s *Steam) Fetch(ctx context.Context) (digest.Record, error) {
	record := models.SteamRecord{PlayerName: "Unknown"}
	failures := 0

	player, err := s.fetchPlayer(ctx)
	if err != nil {
		failures++
		s.logger.Warn("steam: fetch player failed", "error", truncateError(err))
	} else if player != nil {
		record.PlayerName = player.PersonaName
		record.AvatarURL = player.AvatarMedium
	}

	recent, err := s.fetchRecentlyPlayed(ctx)
	if err != nil {
		failures++
		s.logger.Warn("steam: fetch recent games failed", "error", truncateError(err))
	}

	owned, err := s.fetchOwnedGames(ctx)
	if err != nil {
		failures++
		s.logger.Warn("steam: fetch owned games failed", "error", truncateError(err))
	}

	if failures == 3 {
		return nil, errors.New("steam: all requests failed")
	}

	// The API has no per-day numbers; the first three recent games' two week
	// playtime serves as the recent estimate.
	recentMinutes := 0
	weekMinutes := 0
	for i, game := range recent {
		if i < steamTopGames {
			recentMinutes += game.Playtime2Weeks
			record.RecentGames = append(record.RecentGames,
				fmt.Sprintf("%s (%.1fh)", truncateName(game.Name), minutesToHours(game.Playtime2Weeks)))
		}
		weekMinutes += game.Playtime2Weeks
	}
	record.RecentHours = minutesToHours(recentMinutes)
	record.WeekHours = minutesToHours(weekMinutes)

	record.TotalGames = len(owned)
	totalMinutes := 0
	for _, game := range owned {
		totalMinutes += game.PlaytimeForever
	}
	record.TotalHours = minutesToHours(totalMinutes)

	top := make([]models.SteamGame, len(owned))
	copy(top, owned)
	sort.Slice(top, func(i, j int) bool { return top[i].PlaytimeForever > top[j].PlaytimeForever })
	for i, game := range top {
		if i == steamTopGames {
			break
		}
		record.TopGames = append(record.TopGames, models.SteamTopGame{
			Name:  truncateName(game.Name),
			Hours: minutesToHours(game.PlaytimeForever),
		})
	}

	s.logger.Info("steam stats collected",
		"player", record.PlayerName,
		"recent_hours", record.RecentHours,
		"total_games", record.TotalGames)

	return record, nil
}

func (s *Steam) fetchPlayer(ctx context.Context) (*models.SteamPlayer, error) {
	params := neturl.Values{}
	params.Set("key", s.apiKey)
	params.Set("steamids", s.steamID)
	params.Set("format", "json")

	var result models.SteamPlayerSummariesResponse
	if err := s.get(ctx, "/ISteamUser/GetPlayerSummaries/v0002/", params, &result); err != nil {
		return nil, err
	}
	if len(result.Response.Players) == 0 {
		return nil, nil
	}
	return &result.Response.Players[0], nil
}

func (s *Steam) fetchRecentlyPlayed(ctx context.Context) ([]models.SteamGame, error) {
	params := neturl.Values{}
	params.Set("key", s.apiKey)
	params.Set("steamid", s.steamID)
	params.Set("count", "3")
	params.Set("format", "json")

	var result models.SteamGamesResponse
	if err := s.get(ctx, "/IPlayerService/GetRecentlyPlayedGames/v0001/", params, &result); err != nil {
		return nil, err
	}
	return result.Response.Games, nil
}

func (s *Steam) fetchOwnedGames(ctx context.Context) ([]models.SteamGame, error) {
	params := neturl.Values{}
	params.Set("key", s.apiKey)
	params.Set("steamid", s.steamID)
	params.Set("include_appinfo", "1")
	params.Set("include_played_free_games", "1")
	params.Set("format", "json")

	var result models.SteamGamesResponse
	if err := s.get(ctx, "/IPlayerService/GetOwnedGames/v0001/", params, &result); err != nil {
		return nil, err
	}
	return result.Response.Games, nil
}

func (s *Steam) get(ctx context.Context, path string, params neturl.Values, dest any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", steamUserAgent)

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

func minutesToHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*10) / 10
}

func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) > steamNameMaxRunes {
		return string(runes[:steamNameMaxRunes])
	}
	return name
}
