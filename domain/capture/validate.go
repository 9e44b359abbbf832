package capture

import (
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNoFile           = errors.New("no file selected")
	ErrMultipleFiles    = errors.New("please upload a single file")
	ErrUnsupportedMedia = errors.New("unsupported file type")
)

// SupportedMedia lists the container types the decoder is expected to handle.
var SupportedMedia = []string{
	"video/mp4",
	"video/webm",
	"video/quicktime",
	"video/x-matroska",
	"video/x-msvideo",
	"video/x-m4v",
}

// ValidateSelection checks a file-picker result: exactly one file whose
// sniffed media type is a supported video container. It returns that path.
func ValidateSelection(paths []string) (string, error) {
	switch len(paths) {
	case 0:
		return "", ErrNoFile
	case 1:
	default:
		return "", fmt.Errorf("%w: %d files selected", ErrMultipleFiles, len(paths))
	}
	path := paths[0]
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detect %s: %w", path, err)
	}
	for _, t := range SupportedMedia {
		if mt.Is(t) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedMedia, mt.String())
}
