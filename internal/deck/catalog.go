package deck

import (
	"context"

	"trackline/internal/game"
)

// Catalog is the built-in song source used when no Spotify credentials
// are configured. Playback references are YouTube video ids.
type Catalog struct{}

func (Catalog) Fetch(ctx context.Context) ([]game.Song, error) {
	return append([]game.Song(nil), catalogSongs...), nil
}

var catalogSongs = []game.Song{
	// 1960s
	{ID: "1", PlaybackURI: "youtube:iT6vqeL40v4", Title: "Twist and Shout", Artist: "The Beatles", Year: 1963},
	{ID: "2", PlaybackURI: "youtube:jenWdylTtzs", Title: "I Want to Hold Your Hand", Artist: "The Beatles", Year: 1963},
	{ID: "3", PlaybackURI: "youtube:nrIPxlFzDi0", Title: "(I Can't Get No) Satisfaction", Artist: "The Rolling Stones", Year: 1965},
	{ID: "4", PlaybackURI: "youtube:6FOUqQt3Kg0", Title: "Respect", Artist: "Aretha Franklin", Year: 1967},
	{ID: "5", PlaybackURI: "youtube:A3yCcXgbKrE", Title: "What a Wonderful World", Artist: "Louis Armstrong", Year: 1967},
	{ID: "6", PlaybackURI: "youtube:A_MjCqQoLLA", Title: "Hey Jude", Artist: "The Beatles", Year: 1968},
	// 1970s
	{ID: "7", PlaybackURI: "youtube:fJ9rUzIMcZQ", Title: "Bohemian Rhapsody", Artist: "Queen", Year: 1975},
	{ID: "8", PlaybackURI: "youtube:oRdxUFDoQe0", Title: "Dancing Queen", Artist: "ABBA", Year: 1976},
	{ID: "9", PlaybackURI: "youtube:fNFzfwLM72c", Title: "Stayin' Alive", Artist: "Bee Gees", Year: 1977},
	{ID: "10", PlaybackURI: "youtube:EPhWR4d3FJQ", Title: "Hotel California", Artist: "Eagles", Year: 1977},
	// 1980s
	{ID: "11", PlaybackURI: "youtube:rY0WxgSXdEE", Title: "Another One Bites the Dust", Artist: "Queen", Year: 1980},
	{ID: "12", PlaybackURI: "youtube:1k8craCGpgs", Title: "Don't Stop Believin'", Artist: "Journey", Year: 1981},
	{ID: "13", PlaybackURI: "youtube:l5aZJBLAu1E", Title: "I Love Rock 'n Roll", Artist: "Joan Jett", Year: 1981},
	{ID: "14", PlaybackURI: "youtube:sOnqjkJTMaA", Title: "Thriller", Artist: "Michael Jackson", Year: 1982},
	{ID: "15", PlaybackURI: "youtube:Zi_XLOBDo_Y", Title: "Billie Jean", Artist: "Michael Jackson", Year: 1982},
	{ID: "16", PlaybackURI: "youtube:btPJPFnesV4", Title: "Eye of the Tiger", Artist: "Survivor", Year: 1982},
	{ID: "17", PlaybackURI: "youtube:pAgnJDJN4VA", Title: "Beat It", Artist: "Michael Jackson", Year: 1983},
	{ID: "18", PlaybackURI: "youtube:qeMFqkcPYcg", Title: "Every Breath You Take", Artist: "The Police", Year: 1983},
	{ID: "19", PlaybackURI: "youtube:PIb6AZdTr-A", Title: "Girls Just Want to Have Fun", Artist: "Cyndi Lauper", Year: 1983},
	{ID: "20", PlaybackURI: "youtube:F2AitTPI5U0", Title: "Wake Me Up Before You Go-Go", Artist: "Wham!", Year: 1984},
	{ID: "21", PlaybackURI: "youtube:djV11Xbc914", Title: "Take On Me", Artist: "a-ha", Year: 1985},
	{ID: "22", PlaybackURI: "youtube:lDK9QqIzhwk", Title: "Livin' on a Prayer", Artist: "Bon Jovi", Year: 1986},
	{ID: "23", PlaybackURI: "youtube:9jK-NcRmVcw", Title: "The Final Countdown", Artist: "Europe", Year: 1986},
	{ID: "24", PlaybackURI: "youtube:dQw4w9WgXcQ", Title: "Never Gonna Give You Up", Artist: "Rick Astley", Year: 1987},
	{ID: "25", PlaybackURI: "youtube:1w7OgIMMRc4", Title: "Sweet Child O' Mine", Artist: "Guns N' Roses", Year: 1987},
	// 1990s
	{ID: "26", PlaybackURI: "youtube:hTWKbfoikeg", Title: "Smells Like Teen Spirit", Artist: "Nirvana", Year: 1991},
	{ID: "27", PlaybackURI: "youtube:3JWTaaS7LdU", Title: "I Will Always Love You", Artist: "Whitney Houston", Year: 1992},
	{ID: "28", PlaybackURI: "youtube:yFE6qQ3ySXE", Title: "Wonderwall", Artist: "Oasis", Year: 1995},
	{ID: "29", PlaybackURI: "youtube:gJLIiF15wjQ", Title: "Wannabe", Artist: "Spice Girls", Year: 1996},
	{ID: "30", PlaybackURI: "youtube:C-u5WLJ9Yk4", Title: "...Baby One More Time", Artist: "Britney Spears", Year: 1998},
	// 2000s
	{ID: "31", PlaybackURI: "youtube:YVkUvmDQ3HY", Title: "In the End", Artist: "Linkin Park", Year: 2001},
	{ID: "32", PlaybackURI: "youtube:dvgZkm1xWPE", Title: "Viva la Vida", Artist: "Coldplay", Year: 2008},
	{ID: "33", PlaybackURI: "youtube:4m48GqaOz90", Title: "Mr. Brightside", Artist: "The Killers", Year: 2004},
	{ID: "34", PlaybackURI: "youtube:kffacxfA7G4", Title: "Baby", Artist: "Justin Bieber", Year: 2010},
	// 2010s
	{ID: "35", PlaybackURI: "youtube:OPf0YbXqDm0", Title: "Uptown Funk", Artist: "Mark Ronson", Year: 2014},
	{ID: "36", PlaybackURI: "youtube:JGwWNGJdvx8", Title: "Shape of You", Artist: "Ed Sheeran", Year: 2017},
	{ID: "37", PlaybackURI: "youtube:ru0K8uYEZWw", Title: "CAN'T STOP THE FEELING!", Artist: "Justin Timberlake", Year: 2016},
	{ID: "38", PlaybackURI: "youtube:fHI8X4OXluQ", Title: "Blinding Lights", Artist: "The Weeknd", Year: 2019},
	// 2020s
	{ID: "39", PlaybackURI: "youtube:gNi_6U5Pm_o", Title: "good 4 u", Artist: "Olivia Rodrigo", Year: 2021},
	{ID: "40", PlaybackURI: "youtube:H5v3kku4y6Q", Title: "As It Was", Artist: "Harry Styles", Year: 2022},
}
