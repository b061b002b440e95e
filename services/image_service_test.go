package services

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// imageFileHeader builds a multipart.FileHeader carrying the given content
func imageFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content)) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	require.NotEmpty(t, form.File["file"])
	return form.File["file"][0]
}

func TestS3ImageService_UploadRoundTrip(t *testing.T) {
	mockS3 := NewMockS3Service()
	svc := InitImageService(mockS3)

	content := []byte("fake image content")
	fileHeader := imageFileHeader(t, "showcase.png", content)

	key, err := svc.UploadImage(fileHeader, "gallery")
	assert.NoError(t, err)
	assert.Equal(t, "gallery/mock_showcase.png", key)
	assert.True(t, mockS3.FileExists(key))

	url, err := svc.GetImageURL(key)
	assert.NoError(t, err)
	assert.Contains(t, url, key)

	assert.NoError(t, svc.DeleteImage(key))
	assert.False(t, mockS3.FileExists(key))
}

func TestS3ImageService_RejectsInvalidFormatBeforeUpload(t *testing.T) {
	mockS3 := NewMockS3Service()
	svc := InitImageService(mockS3)

	fileHeader := imageFileHeader(t, "receipt.pdf", []byte("not an image"))

	_, err := svc.UploadImage(fileHeader, "receipts")
	assert.Error(t, err)

	// Nothing should reach storage when validation fails
	assert.Empty(t, mockS3.GetUploadedFiles())
}

func TestS3ImageService_EmptyKeys(t *testing.T) {
	svc := InitImageService(NewMockS3Service())

	url, err := svc.GetImageURL("")
	assert.NoError(t, err)
	assert.Empty(t, url)

	assert.NoError(t, svc.DeleteImage(""))
}

func TestMockS3Service_PresignUnknownKey(t *testing.T) {
	mockS3 := NewMockS3Service()

	_, err := mockS3.GetPresignedURL("gallery/never_uploaded.png")
	assert.Error(t, err)
}

func TestMockS3Service_SetAsGlobal(t *testing.T) {
	mockS3 := NewMockS3Service()
	mockS3.SetAsMockForTesting()

	assert.Equal(t, S3Interface(mockS3), GetS3Service())
}

func TestContentTypeForFilename(t *testing.T) {
	cases := map[string]string{
		"cake.jpg":  "image/jpeg",
		"cake.JPEG": "image/jpeg",
		"cake.webp": "image/webp",
		"cake.png":  "image/png",
		"cake":      "image/png",
	}

	for filename, want := range cases {
		assert.Equal(t, want, contentTypeForFilename(filename), filename)
	}
}
