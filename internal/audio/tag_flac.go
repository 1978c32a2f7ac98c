package audio

import (
	"strconv"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

// writeFLACTags replaces the Vorbis comment block and, when cover bytes
// are given, the picture blocks of a FLAC file. Existing blocks are
// replaced rather than appended so re-tagging is idempotent.
func writeFLACTags(path string, tags Tags, cover []byte) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return err
	}

	cmtIdx := -1
	for idx, block := range f.Meta {
		if block.Type == flac.VorbisComment {
			cmtIdx = idx
			break
		}
	}

	cmt := flacvorbis.New()
	_ = cmt.Add(flacvorbis.FIELD_TITLE, tags.Title)
	_ = cmt.Add(flacvorbis.FIELD_ALBUM, tags.Album)
	for _, artist := range tags.Artists {
		_ = cmt.Add(flacvorbis.FIELD_ARTIST, artist)
	}
	if tags.Number > 0 {
		_ = cmt.Add(flacvorbis.FIELD_TRACKNUMBER, strconv.Itoa(tags.Number))
	}

	cmtBlock := cmt.Marshal()
	if cmtIdx < 0 {
		f.Meta = append(f.Meta, &cmtBlock)
	} else {
		f.Meta[cmtIdx] = &cmtBlock
	}

	if len(cover) > 0 {
		picture, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "Cover", cover, "image/jpeg")
		if err != nil {
			return err
		}
		pictureBlock := picture.Marshal()

		for i := len(f.Meta) - 1; i >= 0; i-- {
			if f.Meta[i].Type == flac.Picture {
				f.Meta = append(f.Meta[:i], f.Meta[i+1:]...)
			}
		}
		f.Meta = append(f.Meta, &pictureBlock)
	}

	return f.Save(path)
}
