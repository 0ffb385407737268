// Package imagestore abstracts the external image-hosting service. Uploads
// and deletions are synchronous, unretried round trips; the caller decides
// whether a failure aborts the surrounding mutation.
package imagestore

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/featherdev/chirp/utils"
)

// ImageStore hosts user-submitted images somewhere the frontend can load them.
type ImageStore interface {
	// Upload stores the image carried by a base64 data URI
	// ("data:image/png;base64,...") and returns its public URL.
	Upload(ctx context.Context, dataURI string) (url string, err error)
	// Delete removes the hosted image behind a URL previously returned by
	// Upload. Deleting an unknown URL is not an error.
	Delete(ctx context.Context, url string) error
}

// decodeDataURI splits a data URI into its decoded bytes and file extension.
func decodeDataURI(dataURI string) (data []byte, ext string, err error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return nil, "", utils.InvalidInput("Image must be a data URI")
	}
	rest := strings.TrimPrefix(dataURI, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return nil, "", utils.InvalidInput("Image must be base64 encoded")
	}
	mediaType := rest[:sep]
	payload := rest[sep+len(";base64,"):]

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", utils.InvalidInput("Image is not valid base64")
	}

	// "image/png" -> ".png"; unknown types keep a generic extension
	ext = ".img"
	if slash := strings.Index(mediaType, "/"); slash >= 0 && slash < len(mediaType)-1 {
		ext = "." + mediaType[slash+1:]
	}
	return data, ext, nil
}
