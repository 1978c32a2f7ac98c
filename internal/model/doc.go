// Package model defines the core data structures used throughout
// the siren-downloader application.
//
// # Album
//
// Album represents one catalog album with metadata and computed paths:
//
//	album := model.NewAlbum("0123", "Vigil", artists, coverURL, bgURL, "out")
//	fmt.Println(album.Dir)       // Where the album's files are saved
//	fmt.Println(album.CoverPath) // Where cover art is saved
//
// # Track
//
// Track represents a single track within an album:
//
//	track := model.NewTrack(album, "887563", 1, "Song Title", artists, sourceURL)
//	fmt.Println(track.Path) // Full path where the track will be saved
//
// Albums and tracks are immutable once built from the catalog; all paths
// are pure functions of the metadata and the output root.
package model
