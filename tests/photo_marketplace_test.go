package tests

import (
	"bytes"
	"image/color"
	"mime/multipart"
	"net/http"
	"net/url"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gavv/httpexpect/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	host = "0.0.0.0:8082"
)

func testJPEG(t *testing.T) []byte {
	t.Helper()

	img := imaging.New(640, 480, color.NRGBA{R: 30, G: 60, B: 120, A: 255})

	buf := &bytes.Buffer{}
	require.NoError(t, imaging.Encode(buf, img, imaging.JPEG))

	return buf.Bytes()
}

func uploadBody(t *testing.T, fields map[string]string, jpeg []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image", "sunset.jpg")
	require.NoError(t, err)
	_, err = part.Write(jpeg)
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestFullPhotoCycle(t *testing.T) {
	u := url.URL{Scheme: "http", Host: host}
	e := httpexpect.Default(t, u.String())

	body, contentType := uploadBody(t, map[string]string{
		"uploader_id":  uuid.New().String(),
		"title":        "Sunset over the bay",
		"description":  "Shot from the pier at dusk",
		"capture_date": "2025-06-01",
	}, testJPEG(t))

	resp := e.POST("/upload").
		WithHeader("Content-Type", contentType).
		WithBytes(body.Bytes()).
		Expect().
		Status(http.StatusOK).
		JSON().Object()

	resp.Value("status").String().IsEqual("OK")
	resp.Value("watermarked_url").String().Contains("_watermarked.jpg")

	photoID := resp.Value("id").String().NotEmpty().Raw()

	t.Run("Get Photo", func(t *testing.T) {
		resp := e.GET("/photo/" + photoID).
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		resp.Value("id").String().IsEqual(photoID)
		resp.Value("original_url").String().NotEmpty()

		watermarkedURL := resp.Value("watermarked_url").String().Contains("_watermarked.jpg").Raw()

		wu, err := url.Parse(watermarkedURL)
		require.NoError(t, err)

		e.GET(wu.Path).
			Expect().
			Status(http.StatusOK).
			Header("Content-Type").Contains("image/jpeg")
	})

	t.Run("Reprocess Is A No-Op When Derived", func(t *testing.T) {
		e.POST("/photo/" + photoID + "/reprocess").
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			Value("queued").Boolean().IsFalse()
	})

	t.Run("Gallery Lists The Photo", func(t *testing.T) {
		gallery := e.GET("/gallery").
			Expect().
			Status(http.StatusOK).
			JSON().Object()

		gallery.Value("status").String().IsEqual("OK")

		found := false
		for _, raw := range gallery.Value("photos").Array().Iter() {
			if raw.Object().Value("id").String().Raw() == photoID {
				found = true
			}
		}
		require.True(t, found)
	})
}

func TestGalleryHoldsBackIncompletePhoto(t *testing.T) {
	u := url.URL{Scheme: "http", Host: host}
	e := httpexpect.Default(t, u.String())

	// No description, so the record never qualifies for the gallery.
	body, contentType := uploadBody(t, map[string]string{
		"uploader_id":  uuid.New().String(),
		"title":        "Untitled draft",
		"capture_date": "2025-06-01",
	}, testJPEG(t))

	resp := e.POST("/upload").
		WithHeader("Content-Type", contentType).
		WithBytes(body.Bytes()).
		Expect().
		Status(http.StatusOK).
		JSON().Object()

	photoID := resp.Value("id").String().NotEmpty().Raw()

	gallery := e.GET("/gallery").
		Expect().
		Status(http.StatusOK).
		JSON().Object()

	for _, raw := range gallery.Value("photos").Array().Iter() {
		require.NotEqual(t, photoID, raw.Object().Value("id").String().Raw())
	}
}

func TestCorruptUploadStillStoresRecord(t *testing.T) {
	u := url.URL{Scheme: "http", Host: host}
	e := httpexpect.Default(t, u.String())

	body, contentType := uploadBody(t, map[string]string{
		"uploader_id":  uuid.New().String(),
		"title":        "Broken bytes",
		"description":  "Not actually a JPEG",
		"capture_date": "2025-06-01",
	}, []byte("this is not image data"))

	resp := e.POST("/upload").
		WithHeader("Content-Type", contentType).
		WithBytes(body.Bytes()).
		Expect().
		Status(http.StatusOK).
		JSON().Object()

	resp.Value("status").String().IsEqual("OK")
	resp.Value("watermarked_url").IsNull()

	photoID := resp.Value("id").String().NotEmpty().Raw()

	t.Run("Reprocess Queues The Photo", func(t *testing.T) {
		e.POST("/photo/" + photoID + "/reprocess").
			Expect().
			Status(http.StatusOK).
			JSON().Object().
			Value("queued").Boolean().IsTrue()
	})
}

func TestInvalidUpload(t *testing.T) {
	u := url.URL{Scheme: "http", Host: host}
	e := httpexpect.Default(t, u.String())

	e.POST("/upload").
		Expect().
		Status(http.StatusBadRequest).
		JSON().Object().
		Value("error").String().Contains("file from request")
}

func TestGetPhotoNotFound(t *testing.T) {
	u := url.URL{Scheme: "http", Host: host}
	e := httpexpect.Default(t, u.String())

	nonExistentID := "00000000-0000-0000-0000-000000000000"

	e.GET("/photo/" + nonExistentID).
		Expect().
		Status(http.StatusNotFound).
		JSON().Object().
		Value("error").String().Contains("not found")
}
