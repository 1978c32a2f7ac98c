package audio

import (
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// writeID3Tags writes ID3v2 frames to an MP3 file. Existing picture
// frames are deleted before the cover is attached so re-tagging never
// accumulates duplicates.
func writeID3Tags(path string, tags Tags, cover []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetTitle(tags.Title)
	tag.SetAlbum(tags.Album)
	tag.SetArtist(strings.Join(tags.Artists, "/"))
	if tags.Number > 0 {
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, strconv.Itoa(tags.Number))
	}

	if len(cover) > 0 {
		tag.DeleteFrames(tag.CommonID("Attached picture"))
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/jpeg",
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     cover,
		})
	}

	return tag.Save()
}
