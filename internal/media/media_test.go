package media_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgencyAdmin/AgencyAdmin/internal/config"
	"github.com/AgencyAdmin/AgencyAdmin/internal/media"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 255), G: uint8(y % 255), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func TestThumbnail(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		size int
		want int
	}{
		{name: "landscape cropped square", w: 400, h: 200, size: 64, want: 64},
		{name: "small image upscaled", w: 20, h: 30, size: 50, want: 50},
		{name: "default size", w: 300, h: 300, size: 0, want: media.DefaultAvatarSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := media.Thumbnail(pngBytes(t, tt.w, tt.h), tt.size)
			require.NoError(t, err)

			img, format, err := image.Decode(bytes.NewReader(out))
			require.NoError(t, err)
			assert.Equal(t, "jpeg", format)
			assert.Equal(t, tt.want, img.Bounds().Dx())
			assert.Equal(t, tt.want, img.Bounds().Dy())
		})
	}
}

func TestThumbnailRejects(t *testing.T) {
	_, err := media.Thumbnail([]byte("definitely not an image"), 32)
	require.ErrorIs(t, err, media.ErrUnsupportedImage)

	// a truncated png has the right magic bytes but does not decode
	data := pngBytes(t, 10, 10)
	_, err = media.Thumbnail(data[:40], 32)
	require.ErrorIs(t, err, media.ErrUnsupportedImage)
}

func TestSaveAvatar(t *testing.T) {
	dir := t.TempDir()
	store := media.NewStore(config.Upload{Dir: dir, AvatarSize: 32})

	rel, err := store.SaveAvatar(bytes.NewReader(pngBytes(t, 100, 80)))
	require.NoError(t, err)
	assert.Regexp(t, `^avatars/[0-9a-f-]{36}\.jpg$`, rel)

	_, err = os.Stat(store.Path(rel))
	require.NoError(t, err)

	img, err := imaging.Open(store.Path(rel))
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
}

func TestRemove(t *testing.T) {
	store := media.NewStore(config.Upload{Dir: t.TempDir(), AvatarSize: 16})

	rel, err := store.SaveAvatar(bytes.NewReader(pngBytes(t, 20, 20)))
	require.NoError(t, err)

	require.NoError(t, store.Remove(rel))

	_, err = os.Stat(store.Path(rel))
	require.ErrorIs(t, err, os.ErrNotExist)

	// already gone and never stored are both fine
	require.NoError(t, store.Remove(rel))
	require.NoError(t, store.Remove(""))
}
