package models

import (
	"fmt"
	"strings"

	"github.com/daybrief/daybrief/enums"
)

type SteamPlayerSummariesResponse struct {
	Response SteamPlayerSummaries `json:"response"`
}

type SteamPlayerSummaries struct {
	Players []SteamPlayer `json:"players"`
}

type SteamPlayer struct {
	PersonaName  string `json:"personaname"`
	AvatarMedium string `json:"avatarmedium"`
}

type SteamGamesResponse struct {
	Response SteamGames `json:"response"`
}

type SteamGames struct {
	GameCount int         `json:"game_count"`
	Games     []SteamGame `json:"games"`
}

type SteamGame struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	Playtime2Weeks  int    `json:"playtime_2weeks"`
	PlaytimeForever int    `json:"playtime_forever"`
}

// SteamTopGame is one most-played title with its lifetime hours.
type SteamTopGame struct {
	Name  string
	Hours float64
}

// SteamRecord summarizes recent and lifetime play on the Steam account.
type SteamRecord struct {
	PlayerName  string
	AvatarURL   string
	RecentHours float64
	WeekHours   float64
	TotalGames  int
	TotalHours  float64
	RecentGames []string
	TopGames    []SteamTopGame
}

func (SteamRecord) Source() enums.Source { return enums.SourceSteam }

func (r SteamRecord) Block() string {
	lines := []string{"🎮 Gaming"}

	if r.PlayerName != "" {
		lines = append(lines, fmt.Sprintf("• Player: %s", r.PlayerName))
	}
	if r.RecentHours > 0 {
		lines = append(lines, fmt.Sprintf("• Recent playtime: %.1f hours", r.RecentHours))
	} else {
		lines = append(lines, "• No games played recently")
	}
	if r.WeekHours > 0 {
		lines = append(lines, fmt.Sprintf("• Two week total: %.1f hours", r.WeekHours))
	}
	if len(r.RecentGames) > 0 {
		lines = append(lines, "• Recently played:")
		for _, game := range r.RecentGames {
			lines = append(lines, "  - "+game)
		}
	}
	if len(r.TopGames) > 0 {
		lines = append(lines, "• Most played:")
		for _, game := range r.TopGames {
			lines = append(lines, fmt.Sprintf("  - %s: %.1fh", game.Name, game.Hours))
		}
	}
	if r.TotalGames > 0 {
		lines = append(lines, fmt.Sprintf("• Library: %d games", r.TotalGames))
	}
	if r.TotalHours > 0 {
		lines = append(lines, fmt.Sprintf("• Total playtime: %.1f hours", r.TotalHours))
	}

	return strings.Join(lines, "\n")
}
