package services

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"path"
	"strings"

	"github.com/anikasharma/greenbasket/pkg/storage"
)

// MaxImageSize caps every image upload (profile, logo, product) at 5MB.
const MaxImageSize = 5 << 20

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// ValidateImage checks declared size and extension before anything touches
// a disk. The size limit is also enforced while reading, since the declared
// size comes from the client.
func ValidateImage(filename string, size int64) error {
	if size > MaxImageSize {
		return ErrImageTooLarge
	}
	ext := strings.ToLower(path.Ext(filename))
	if !allowedImageExtensions[ext] {
		return ErrImageExtension
	}
	return nil
}

// SaveImage validates and stores an uploaded image under dir on the default
// disk, returning the stored path. The filename is randomised; only the
// extension survives from the upload.
func SaveImage(dir, filename string, size int64, r io.Reader) (string, error) {
	if err := ValidateImage(filename, size); err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxImageSize {
		return "", ErrImageTooLarge
	}

	name := make([]byte, 16)
	_, _ = rand.Read(name)
	stored := path.Join(dir, hex.EncodeToString(name)+strings.ToLower(path.Ext(filename)))

	if err := storage.Put(stored, data); err != nil {
		return "", err
	}
	return stored, nil
}
