package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"

	"trackline/internal/config"
	"trackline/internal/deck"
	"trackline/internal/game"
	"trackline/internal/store"
	"trackline/internal/ws"
)

const version = "v1.0.0"

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		portFlag    = flag.String("port", "", "Port to listen on (overrides PORT env var)")
	)
	flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Parse()

	if *showHelp {
		fmt.Printf(`Trackline - Real-time music timeline party game

Usage: %s [options]

Options:
  -h, --help      Show this help message
  -v, --version   Show version information
  --port PORT     Port to listen on (default: 8080 or PORT env var)

Environment Variables:
  PORT                   Port to listen on (default: 8080)
  SPOTIFY_CLIENT_ID      Spotify API client id (optional, enables catalog decks)
  SPOTIFY_CLIENT_SECRET  Spotify API client secret
  CORS_ORIGIN            Allowed origin for browser clients (default: *)

Without Spotify credentials the server deals from its built-in song list.
`, os.Args[0])
		return
	}

	if *showVersion {
		fmt.Printf("Trackline %s\n", version)
		return
	}

	// .env is optional, env vars win
	_ = godotenv.Load()
	cfg := config.FromEnv()

	port := *portFlag
	if port == "" {
		port = cfg.Port
	}

	// zerolog setup (human-friendly console)
	zerolog.TimeFieldFormat = time.RFC3339
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zerologlog.Logger = zerologlog.Output(cw)

	// Gin setup with custom logger (skip /socket.io noise)
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/socket.io") {
			return
		}
		status := c.Writer.Status()
		dur := time.Since(start)
		zerologlog.Info().Str("path", path).Int("status", status).Dur("dur", dur).Msg("http")
	})

	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", cfg.CORSOrigin)
		c.Next()
	})

	// Healthcheck
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})

	// Deck source: Spotify when credentials are set, built-in catalog otherwise
	var source deck.Source = deck.Catalog{}
	if cfg.SpotifyClientID != "" && cfg.SpotifyClientSecret != "" {
		source = deck.NewSpotifyClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	}
	builder := deck.NewBuilder(source)

	// Store + state machine + socket gateway
	st := store.New()
	engine := game.NewEngine(st)
	sock := ws.New(engine)
	io := sock.Mount(r)
	defer io.Close()

	// REST surface for room creation and joining; everything in-game goes
	// over the socket.
	type createReq struct {
		PlayerName string `json:"playerName"`
	}
	r.POST("/api/games", func(c *gin.Context) {
		var req createReq
		if err := c.BindJSON(&req); err != nil || strings.TrimSpace(req.PlayerName) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Player name is required"})
			return
		}
		songs := builder.BuildDeck(c.Request.Context())
		room, player, err := st.CreateRoom(req.PlayerName, songs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": room.TakeSnapshot(), "player": player})
	})

	type joinReq struct {
		RoomCode   string `json:"roomCode"`
		PlayerName string `json:"playerName"`
	}
	r.POST("/api/players", func(c *gin.Context) {
		var req joinReq
		if err := c.BindJSON(&req); err != nil || req.RoomCode == "" || strings.TrimSpace(req.PlayerName) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Room code and player name are required"})
			return
		}
		player, room, err := st.AddPlayer(req.RoomCode, req.PlayerName)
		if err != nil {
			c.JSON(joinStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": room.TakeSnapshot(), "player": player})
	})

	r.GET("/api/games", func(c *gin.Context) {
		code := c.Query("roomCode")
		if code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Room code is required"})
			return
		}
		snap, err := engine.Snapshot(code)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": snap})
	})

	log.Printf("listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func joinStatus(err error) int {
	if err == game.ErrRoomNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
