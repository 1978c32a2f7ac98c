package siren

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpclient "github.com/arknav/siren-downloader/internal/http"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/albums", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":0,"msg":"","data":[
			{"cid":"0123","name":"Vigil","coverUrl":"https://cdn.example/0123.png","artistes":["Artist One"]},
			{"cid":"0456","name":"Untold","coverUrl":"","artistes":["Artist Two"]}
		]}`)
	})
	mux.HandleFunc("/album/0123/detail", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":0,"data":{"cid":"0123","name":"Vigil","coverUrl":"https://cdn.example/0123.png",
			"coverDeUrl":"https://cdn.example/0123-bg.png",
			"songs":[{"cid":"s1","name":"One","artistes":["Artist One"]},{"cid":"s2","name":"Two","artistes":["Artist One"]}]}}`)
	})
	mux.HandleFunc("/album/0456/detail", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":0,"data":{"cid":"0456","name":"Untold","songs":[{"cid":"s3","name":"Three","artistes":["Artist Two"]}]}}`)
	})
	mux.HandleFunc("/song/s1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":0,"data":{"cid":"s1","name":"One","albumCid":"0123","sourceUrl":"https://cdn.example/one.wav","artists":["Artist One"]}}`)
	})
	mux.HandleFunc("/song/s2", func(w http.ResponseWriter, r *http.Request) {
		// No audio URL published for this song.
		fmt.Fprint(w, `{"code":0,"data":{"cid":"s2","name":"Two","albumCid":"0123","sourceUrl":""}}`)
	})
	mux.HandleFunc("/song/s3", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":0,"data":{"cid":"s3","name":"Three","albumCid":"0456","sourceUrl":"https://cdn.example/three.mp3","artistes":["Artist Two"]}}`)
	})
	return httptest.NewServer(mux)
}

func TestListAlbums(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client := NewClient(httpclient.NewClient("test", ""), server.URL)

	var warnings []string
	client.Logf = func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	albums, err := client.ListAlbums(context.Background(), "out")
	require.NoError(t, err)
	require.Len(t, albums, 2)

	vigil := albums[0]
	assert.Equal(t, "0123", vigil.ID)
	assert.Equal(t, "Vigil", vigil.Name)
	assert.Equal(t, "https://cdn.example/0123.png", vigil.CoverURL)
	assert.Equal(t, "https://cdn.example/0123-bg.png", vigil.BackgroundURL)

	// s2 has no audio URL and is skipped; s1 keeps track number 1.
	require.Len(t, vigil.Tracks, 1)
	assert.Equal(t, "s1", vigil.Tracks[0].ID)
	assert.Equal(t, 1, vigil.Tracks[0].Number)
	assert.Equal(t, filepath.Join("out", "songs", "0123 - Vigil", "01 - One.wav"), vigil.Tracks[0].Path)
	assert.Contains(t, warnings, "no audio URL for song s2")

	untold := albums[1]
	assert.False(t, untold.HasCover())
	require.Len(t, untold.Tracks, 1)
	assert.Equal(t, []string{"Artist Two"}, untold.Tracks[0].Artists)
}

func TestListAlbumsFatalOnAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(httpclient.NewClient("test", ""), server.URL)

	_, err := client.ListAlbums(context.Background(), "out")
	assert.Error(t, err)
}

func TestListAlbumsFatalOnMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":0,"data":"unexpected shape"}`)
	}))
	defer server.Close()

	client := NewClient(httpclient.NewClient("test", ""), server.URL)

	_, err := client.ListAlbums(context.Background(), "out")
	assert.Error(t, err)
}

func TestListAlbumsWrappedListPayload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/albums", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":0,"data":{"list":[{"cid":"9","name":"Solo","artistes":[]}]}}`)
	})
	mux.HandleFunc("/album/9/detail", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":0,"data":{"cid":"9","name":"Solo","songs":[]}}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(httpclient.NewClient("test", ""), server.URL)

	albums, err := client.ListAlbums(context.Background(), "out")
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, "Solo", albums[0].Name)
	assert.Empty(t, albums[0].Tracks)
}
