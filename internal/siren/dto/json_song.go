package dto

// Song is the payload of the song detail endpoint.
type Song struct {
	CID       string   `json:"cid"`
	Name      string   `json:"name"`
	AlbumCID  string   `json:"albumCid"`
	SourceURL string   `json:"sourceUrl"`
	LyricURL  string   `json:"lyricUrl"`
	Artists   []string `json:"artists"`
	Artistes  []string `json:"artistes"`
}

// ArtistNames returns the artist list under whichever key the API used.
func (s *Song) ArtistNames() []string {
	if len(s.Artists) > 0 {
		return s.Artists
	}
	return s.Artistes
}
