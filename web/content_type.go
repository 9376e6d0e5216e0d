// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package web

import (
	"path"
	"slices"
	"strings"
)

// ContentType is a MIME type and the file extensions which map to it.
type ContentType struct {
	ident      string
	Name       string
	Extensions []string
}

// String implements the [fmt.Stringer] interface.
func (ct ContentType) String() string {
	return ct.Name
}

var (
	ContentTypeHTML        = ContentType{"HTML", "text/html", []string{"html"}}
	ContentTypeCSS         = ContentType{"CSS", "text/css", []string{"css"}}
	ContentTypeJavaScript  = ContentType{"JAVASCRIPT", "application/javascript", []string{"js"}}
	ContentTypeJSON        = ContentType{"JSON", "application/json", []string{"json"}}
	ContentTypeTextJSON    = ContentType{"TEXT_JSON", "text/json", []string{"json"}}
	ContentTypeXML         = ContentType{"XML", "application/xml", []string{"xml"}}
	ContentTypeText        = ContentType{"TEXT", "text/plain", []string{"txt"}}
	ContentTypeCSV         = ContentType{"CSV", "text/csv", []string{"csv"}}
	ContentTypeJPEG        = ContentType{"JPEG", "image/jpeg", []string{"jpeg", "jpg"}}
	ContentTypePNG         = ContentType{"PNG", "image/png", []string{"png"}}
	ContentTypeGIF         = ContentType{"GIF", "image/gif", []string{"gif"}}
	ContentTypeWebP        = ContentType{"WEBP", "image/webp", []string{"webp"}}
	ContentTypeSVG         = ContentType{"SVG", "image/svg+xml", []string{"svg"}}
	ContentTypeMP3         = ContentType{"MP3", "audio/mpeg", []string{"mpeg"}}
	ContentTypeOGGAudio    = ContentType{"OGG_AUDIO", "audio/ogg", []string{"ogg"}}
	ContentTypeWAV         = ContentType{"WAV", "audio/wav", []string{"wav"}}
	ContentTypeMP4         = ContentType{"MP4", "video/mp4", []string{"mp4"}}
	ContentTypeWebM        = ContentType{"WEBM", "video/webm", []string{"webm"}}
	ContentTypeOGGVideo    = ContentType{"OGG_VIDEO", "video/ogg", []string{"ogg"}}
	ContentTypePDF         = ContentType{"PDF", "application/pdf", []string{"pdf"}}
	ContentTypeZIP         = ContentType{"ZIP", "application/zip", []string{"zip"}}
	ContentTypeOctetStream = ContentType{"OCTET_STREAM", "application/octet-stream", nil}
)

// order matters: the first entry claiming an extension wins
var contentTypes = []ContentType{
	ContentTypeHTML,
	ContentTypeCSS,
	ContentTypeJavaScript,
	ContentTypeJSON,
	ContentTypeTextJSON,
	ContentTypeXML,
	ContentTypeText,
	ContentTypeCSV,
	ContentTypeJPEG,
	ContentTypePNG,
	ContentTypeGIF,
	ContentTypeWebP,
	ContentTypeSVG,
	ContentTypeMP3,
	ContentTypeOGGAudio,
	ContentTypeWAV,
	ContentTypeMP4,
	ContentTypeWebM,
	ContentTypeOGGVideo,
	ContentTypePDF,
	ContentTypeZIP,
	ContentTypeOctetStream,
}

// ContentTypeByName matches name case-insensitively against either the
// identifier ("PNG") or the MIME name ("image/png"). Defaults to [ContentTypeText].
func ContentTypeByName(name string) ContentType {
	for _, ct := range contentTypes {
		if strings.EqualFold(ct.ident, name) || strings.EqualFold(ct.Name, name) {
			return ct
		}
	}
	return ContentTypeText
}

// ContentTypeByExtension looks up ext, without its leading dot, case-insensitively.
// Defaults to [ContentTypeText].
func ContentTypeByExtension(ext string) ContentType {
	ext = strings.ToLower(ext)
	for _, ct := range contentTypes {
		if slices.Contains(ct.Extensions, ext) {
			return ct
		}
	}
	return ContentTypeText
}

// Extension returns the part of the final path element after its last dot,
// or "" if the final element has none.
func Extension(filePath string) string {
	filePath = strings.ReplaceAll(filePath, "\\", "/")
	ext := path.Ext(filePath)
	return strings.TrimPrefix(ext, ".")
}
