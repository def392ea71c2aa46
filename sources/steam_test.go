package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daybrief/daybrief/models"
)

func steamServer(t *testing.T, player, recent, owned http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ISteamUser/GetPlayerSummaries/v0002/", player)
	mux.HandleFunc("/IPlayerService/GetRecentlyPlayedGames/v0001/", recent)
	mux.HandleFunc("/IPlayerService/GetOwnedGames/v0001/", owned)
	return httptest.NewServer(mux)
}

func steamJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func steamFail(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusForbidden)
}

func TestSteamFetch_AggregatesAllThreeEndpoints(t *testing.T) {
	server := steamServer(t,
		steamJSON(`{"response":{"players":[{"personaname":"gordon","avatarmedium":"http://a/img.jpg"}]}}`),
		steamJSON(`{"response":{"games":[
			{"appid":220,"name":"Half-Life 2","playtime_2weeks":90,"playtime_forever":6000},
			{"appid":400,"name":"Portal","playtime_2weeks":30,"playtime_forever":600}]}}`),
		steamJSON(`{"response":{"game_count":3,"games":[
			{"appid":220,"name":"Half-Life 2","playtime_forever":6000},
			{"appid":400,"name":"Portal","playtime_forever":600},
			{"appid":620,"name":"Portal 2","playtime_forever":1200}]}}`))
	defer server.Close()

	source := NewSteam(testLogger(), server.Client(), "key", "7656119")
	source.baseURL = server.URL

	record, err := source.Fetch(context.Background())
	assert.NoError(t, err)

	steam, ok := record.(models.SteamRecord)
	assert.True(t, ok)
	assert.Equal(t, "gordon", steam.PlayerName)
	assert.Equal(t, 2.0, steam.RecentHours)
	assert.Equal(t, 2.0, steam.WeekHours)
	assert.Equal(t, 3, steam.TotalGames)
	assert.Equal(t, 130.0, steam.TotalHours)
	assert.Equal(t, []string{"Half-Life 2 (1.5h)", "Portal (0.5h)"}, steam.RecentGames)
	assert.Equal(t, []models.SteamTopGame{
		{Name: "Half-Life 2", Hours: 100.0},
		{Name: "Portal 2", Hours: 20.0},
		{Name: "Portal", Hours: 10.0},
	}, steam.TopGames)
}

func TestSteamFetch_PlayerFailureToleratedAsUnknown(t *testing.T) {
	server := steamServer(t,
		steamFail,
		steamJSON(`{"response":{"games":[{"appid":220,"name":"Half-Life 2","playtime_2weeks":60,"playtime_forever":6000}]}}`),
		steamJSON(`{"response":{"game_count":1,"games":[{"appid":220,"name":"Half-Life 2","playtime_forever":6000}]}}`))
	defer server.Close()

	source := NewSteam(testLogger(), server.Client(), "key", "7656119")
	source.baseURL = server.URL

	record, err := source.Fetch(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Unknown", record.(models.SteamRecord).PlayerName)
}

func TestSteamFetch_AllEndpointsFailing(t *testing.T) {
	server := steamServer(t, steamFail, steamFail, steamFail)
	defer server.Close()

	source := NewSteam(testLogger(), server.Client(), "key", "7656119")
	source.baseURL = server.URL

	_, err := source.Fetch(context.Background())
	assert.ErrorContains(t, err, "all requests failed")
}

func TestSteamFetch_OnlyTopThreeRecentGamesListed(t *testing.T) {
	server := steamServer(t,
		steamJSON(`{"response":{"players":[]}}`),
		steamJSON(`{"response":{"games":[
			{"appid":1,"name":"One","playtime_2weeks":60},
			{"appid":2,"name":"Two","playtime_2weeks":60},
			{"appid":3,"name":"Three","playtime_2weeks":60},
			{"appid":4,"name":"Four","playtime_2weeks":60}]}}`),
		steamJSON(`{"response":{"games":[]}}`))
	defer server.Close()

	source := NewSteam(testLogger(), server.Client(), "key", "7656119")
	source.baseURL = server.URL

	record, err := source.Fetch(context.Background())
	assert.NoError(t, err)

	steam := record.(models.SteamRecord)
	assert.Len(t, steam.RecentGames, 3)
	assert.Equal(t, 3.0, steam.RecentHours)
	assert.Equal(t, 4.0, steam.WeekHours)
}

func TestMinutesToHours_RoundsToOneDecimal(t *testing.T) {
	assert.Equal(t, 1.5, minutesToHours(90))
	assert.Equal(t, 1.7, minutesToHours(100))
	assert.Equal(t, 0.0, minutesToHours(0))
}

func TestTruncateName_CapsAtTwentyRunes(t *testing.T) {
	assert.Equal(t, "Short", truncateName("Short"))
	assert.Equal(t, "The Elder Scrolls V:", truncateName("The Elder Scrolls V: Skyrim Special Edition"))
	assert.Equal(t, "十二三四五六七八九十一二三四五六七八九十", truncateName("十二三四五六七八九十一二三四五六七八九十增"))
}
