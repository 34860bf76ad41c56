package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImage(t *testing.T) {
	assert.NoError(t, ValidateImage("photo.jpg", 1024))
	assert.NoError(t, ValidateImage("photo.JPEG", 1024))
	assert.NoError(t, ValidateImage("logo.png", MaxImageSize))
	assert.NoError(t, ValidateImage("anim.gif", 1024))

	assert.ErrorIs(t, ValidateImage("big.jpg", MaxImageSize+1), ErrImageTooLarge)
	assert.ErrorIs(t, ValidateImage("sheet.pdf", 1024), ErrImageExtension)
	assert.ErrorIs(t, ValidateImage("script.sh", 1024), ErrImageExtension)
	assert.ErrorIs(t, ValidateImage("noext", 1024), ErrImageExtension)
	assert.ErrorIs(t, ValidateImage("double.jpg.exe", 1024), ErrImageExtension)
}
