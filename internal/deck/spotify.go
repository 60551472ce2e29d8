package deck

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"trackline/internal/game"
)

// SpotifyClient fetches songs from the Spotify catalog via the
// client-credentials flow. Tracks without a usable release year or cover
// art are dropped.
type SpotifyClient struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	TokenURL     string
	http         *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

var spotifyGenres = []string{
	"pop", "rock", "soul", "disco", "hip-hop", "r&b", "dance", "indie",
	"funk", "reggae", "metal", "country", "jazz", "blues", "latin",
	"electronic", "punk", "alternative", "new wave", "folk",
}

var spotifyDecades = [][2]int{
	{1960, 1969}, {1970, 1979}, {1980, 1989}, {1990, 1999},
	{2000, 2009}, {2010, 2019}, {2020, 2026},
}

func NewSpotifyClient(clientID, clientSecret string) *SpotifyClient {
	return &SpotifyClient{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		BaseURL:      "https://api.spotify.com",
		TokenURL:     "https://accounts.spotify.com/api/token",
		http:         &http.Client{Timeout: 20 * time.Second},
	}
}

// Fetch pulls one search page per genre and decade and deduplicates by
// track id.
func (c *SpotifyClient) Fetch(ctx context.Context) ([]game.Song, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var songs []game.Song
	for _, genre := range spotifyGenres {
		for _, decade := range spotifyDecades {
			page, err := c.searchPage(ctx, token, genre, decade[0], decade[1])
			if err != nil {
				continue
			}
			for _, s := range page {
				if seen[s.ID] {
					continue
				}
				seen[s.ID] = true
				songs = append(songs, s)
			}
		}
	}
	if len(songs) == 0 {
		return nil, errors.New("spotify search returned no usable tracks")
	}
	return songs, nil
}

func (c *SpotifyClient) token(ctx context.Context) (string, error) {
	if c.ClientID == "" || c.ClientSecret == "" {
		return "", errors.New("missing SPOTIFY_CLIENT_ID or SPOTIFY_CLIENT_SECRET")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	req, _ := http.NewRequestWithContext(ctx, "POST", c.TokenURL, strings.NewReader("grant_type=client_credentials"))
	auth := base64.StdEncoding.EncodeToString([]byte(c.ClientID + ":" + c.ClientSecret))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("spotify token status %d", resp.StatusCode)
	}
	var out struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	c.accessToken = out.AccessToken
	// renew slightly early
	c.tokenExpiry = time.Now().Add(time.Duration(out.ExpiresIn-60) * time.Second)
	return c.accessToken, nil
}

type spotifyTrack struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	URI     string `json:"uri"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		ReleaseDate string `json:"release_date"`
		Images      []struct {
			URL string `json:"url"`
		} `json:"images"`
	} `json:"album"`
}

func (c *SpotifyClient) searchPage(ctx context.Context, token, genre string, startYear, endYear int) ([]game.Song, error) {
	query := url.QueryEscape(fmt.Sprintf("genre:%s year:%d-%d", genre, startYear, endYear))
	req, _ := http.NewRequestWithContext(ctx, "GET",
		fmt.Sprintf("%s/v1/search?q=%s&type=track&limit=10", c.BaseURL, query), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("spotify search status %d", resp.StatusCode)
	}
	var out struct {
		Tracks struct {
			Items []spotifyTrack `json:"items"`
		} `json:"tracks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	songs := make([]game.Song, 0, len(out.Tracks.Items))
	for _, t := range out.Tracks.Items {
		if s, ok := trackToSong(t); ok {
			songs = append(songs, s)
		}
	}
	return songs, nil
}

func trackToSong(t spotifyTrack) (game.Song, bool) {
	if len(t.Album.ReleaseDate) < 4 {
		return game.Song{}, false
	}
	year, err := strconv.Atoi(t.Album.ReleaseDate[:4])
	if err != nil || year < 1950 || year > 2026 {
		return game.Song{}, false
	}
	if len(t.Album.Images) == 0 {
		return game.Song{}, false
	}
	artist := "Unknown"
	if len(t.Artists) > 0 {
		artist = t.Artists[0].Name
	}
	return game.Song{
		ID:          t.ID,
		Title:       t.Name,
		Artist:      artist,
		Year:        year,
		AlbumArt:    t.Album.Images[0].URL,
		PlaybackURI: t.URI,
	}, true
}
