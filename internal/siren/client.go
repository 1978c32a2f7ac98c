package siren

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	httpclient "github.com/arknav/siren-downloader/internal/http"
	"github.com/arknav/siren-downloader/internal/model"
	"github.com/arknav/siren-downloader/internal/siren/dto"
)

// Client fetches the album catalog from the origin's JSON API.
//
// Any failure while listing albums is fatal to a run: a partial catalog
// means the metadata fetch is suspect, so errors propagate instead of
// being skipped.
type Client struct {
	http    *httpclient.Client
	baseURL string

	// Logf, when set, receives warnings about records the catalog lists
	// but that cannot be downloaded (missing IDs, missing audio URLs).
	Logf func(format string, args ...any)
}

// NewClient creates a catalog client for the given API base URL.
func NewClient(http *httpclient.Client, baseURL string) *Client {
	return &Client{
		http:    http,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) logf(format string, args ...any) {
	if c.Logf != nil {
		c.Logf(format, args...)
	}
}

// getJSON fetches an API path and unmarshals its payload into v.
// The payload usually sits under a "data" envelope; responses without
// the envelope are decoded as the whole body.
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	url := fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(path, "/"))
	body, err := c.http.Get(ctx, url)
	if err != nil {
		return err
	}

	var env dto.Envelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 {
		body = env.Data
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding %s: %w", url, err)
	}
	return nil
}

// ListAlbums fetches the full catalog: the album list, each album's
// detail and each song's detail (the audio URL only appears there).
// Albums and tracks are built with paths rooted at outputRoot.
func (c *Client) ListAlbums(ctx context.Context, outputRoot string) ([]*model.Album, error) {
	var summaries dto.AlbumList
	if err := c.getJSON(ctx, "albums", &summaries); err != nil {
		return nil, fmt.Errorf("fetching album list: %w", err)
	}

	var albums []*model.Album
	for _, summary := range summaries {
		if summary.CID == "" {
			c.logf("skipping album with no id: %q", summary.Name)
			continue
		}

		album, err := c.fetchAlbum(ctx, summary, outputRoot)
		if err != nil {
			return nil, err
		}
		albums = append(albums, album)
	}

	return albums, nil
}

func (c *Client) fetchAlbum(ctx context.Context, summary dto.AlbumSummary, outputRoot string) (*model.Album, error) {
	var detail dto.AlbumDetail
	if err := c.getJSON(ctx, fmt.Sprintf("album/%s/detail", summary.CID), &detail); err != nil {
		return nil, fmt.Errorf("fetching album %s: %w", summary.CID, err)
	}

	name := detail.Name
	if name == "" {
		name = summary.Name
	}
	coverURL := detail.CoverURL
	if coverURL == "" {
		coverURL = summary.CoverURL
	}

	album := model.NewAlbum(summary.CID, name, summary.Artistes, coverURL, detail.CoverDeURL, outputRoot)

	if len(detail.Songs) == 0 {
		c.logf("no songs listed for album %s", summary.CID)
	}

	number := 0
	for _, stub := range detail.Songs {
		if stub.CID == "" {
			c.logf("skipping song with no id in album %s", summary.CID)
			continue
		}

		var song dto.Song
		if err := c.getJSON(ctx, fmt.Sprintf("song/%s", stub.CID), &song); err != nil {
			return nil, fmt.Errorf("fetching song %s: %w", stub.CID, err)
		}

		if song.SourceURL == "" {
			c.logf("no audio URL for song %s", stub.CID)
			continue
		}

		title := song.Name
		if title == "" {
			title = stub.Name
		}
		artists := song.ArtistNames()
		if len(artists) == 0 {
			artists = stub.Artistes
		}

		number++
		album.Tracks = append(album.Tracks, model.NewTrack(album, stub.CID, number, title, artists, song.SourceURL))
	}

	return album, nil
}
