package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPublicURL = "https://backend.example.com/storage/v1/object/public/media"

func TestPublicURLRoundTrip(t *testing.T) {
	n := NewNormalizer(testPublicURL)

	for _, objectPath := range []string{
		"images/posts/cover.jpg",
		"images/authors/jo.webp",
		"images/other/logo.svg",
	} {
		u := n.PublicURL(objectPath)
		assert.Equal(t, testPublicURL+"/"+objectPath, u)

		back, err := n.ObjectPathFromPublicURL(u)
		require.NoError(t, err)
		assert.Equal(t, objectPath, back)
	}
}

func TestPublicURLNormalizesLeadingSlash(t *testing.T) {
	n := NewNormalizer(testPublicURL)
	assert.Equal(t, testPublicURL+"/images/a.png", n.PublicURL("/images/a.png"))
}

func TestObjectPathFromLegacyPath(t *testing.T) {
	n := NewNormalizer(testPublicURL)

	p, err := n.ObjectPathFromPublicURL("/images/posts/cover.jpg")
	require.NoError(t, err)
	assert.Equal(t, "images/posts/cover.jpg", p)
}

func TestObjectPathUnrecognized(t *testing.T) {
	n := NewNormalizer(testPublicURL)

	for _, src := range []string{
		"https://elsewhere.example.com/images/cover.jpg",
		"/static/cover.jpg",
		"cover.jpg",
		"",
		testPublicURL + "/",
		"/images/",
	} {
		_, err := n.ObjectPathFromPublicURL(src)
		assert.ErrorIs(t, err, ErrUnrecognizedMediaPath, "src=%q", src)
	}
}

func TestRenderableImageSrc(t *testing.T) {
	n := NewNormalizer(testPublicURL)

	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"own-bucket svg proxied",
			testPublicURL + "/images/other/logo.svg",
			ProxyPrefix + "images/other/logo.svg",
		},
		{
			"query string ignored for extension check",
			testPublicURL + "/images/other/logo.svg?v=2",
			ProxyPrefix + "images/other/logo.svg?v=2",
		},
		{
			"raster image untouched",
			testPublicURL + "/images/posts/cover.jpg",
			testPublicURL + "/images/posts/cover.jpg",
		},
		{
			"foreign-host svg untouched",
			"https://elsewhere.example.com/logo.svg",
			"https://elsewhere.example.com/logo.svg",
		},
		{
			"relative path untouched",
			"/images/other/logo.svg",
			"/images/other/logo.svg",
		},
		{
			"empty untouched",
			"",
			"",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, n.RenderableImageSrc(tc.in))
		})
	}
}

func TestContentTypeByExtension(t *testing.T) {
	assert.Equal(t, "image/svg+xml", ContentTypeByExtension("images/other/logo.svg"))
	assert.Equal(t, "image/svg+xml", ContentTypeByExtension("LOGO.SVG"))
	assert.Equal(t, "image/jpeg", ContentTypeByExtension("cover.jpg"))
	assert.Equal(t, "image/webp", ContentTypeByExtension("a.webp"))
	assert.Equal(t, "application/octet-stream", ContentTypeByExtension("file.bin"))
}
