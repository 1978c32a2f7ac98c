package dto

import "encoding/json"

// Envelope is the wrapper the API puts around every payload. The payload
// itself lives under "data"; older endpoints occasionally return the
// payload as the whole body, which callers handle by falling back to the
// raw response.
type Envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// AlbumSummary is one entry of the album list endpoint.
type AlbumSummary struct {
	CID      string   `json:"cid"`
	Name     string   `json:"name"`
	CoverURL string   `json:"coverUrl"`
	Artistes []string `json:"artistes"`
}

// AlbumList handles both payload shapes the list endpoint has used:
// a bare array and an object with a "list" key.
type AlbumList []AlbumSummary

// UnmarshalJSON accepts either a JSON array of albums or {"list": [...]}.
func (l *AlbumList) UnmarshalJSON(data []byte) error {
	var direct []AlbumSummary
	if err := json.Unmarshal(data, &direct); err == nil {
		*l = direct
		return nil
	}

	var wrapped struct {
		List []AlbumSummary `json:"list"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*l = wrapped.List
	return nil
}

// AlbumDetail is the payload of the album detail endpoint. CoverDeURL is
// the large background artwork shown behind the album page.
type AlbumDetail struct {
	CID        string     `json:"cid"`
	Name       string     `json:"name"`
	Intro      string     `json:"intro"`
	Belong     string     `json:"belong"`
	CoverURL   string     `json:"coverUrl"`
	CoverDeURL string     `json:"coverDeUrl"`
	Songs      []SongStub `json:"songs"`
}

// SongStub is the per-song entry nested in an album detail; the audio URL
// requires a separate song detail fetch.
type SongStub struct {
	CID      string   `json:"cid"`
	Name     string   `json:"name"`
	Artistes []string `json:"artistes"`
}
