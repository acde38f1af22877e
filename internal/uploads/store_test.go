package uploads

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"strings"
	"testing"
	"time"

	"postpilot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := multipart.NewReader(&buf, w.Boundary())
	form, err := r.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["image"]
	require.Len(t, files, 1)
	return files[0]
}

func TestStore_SaveWritesTimestampedFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, "http://localhost:8340/")
	store.now = func() time.Time { return time.UnixMilli(1700000000000) }

	saved, err := store.Save(fileHeader(t, "banner.png", "image/png", []byte("png-bytes")))
	require.NoError(t, err)

	assert.Equal(t, "1700000000000-banner.png", saved.Name)
	assert.Equal(t, "http://localhost:8340/uploads/1700000000000-banner.png", saved.URL)

	content, err := os.ReadFile(saved.Path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
}

func TestStore_RejectsUnsupportedContentType(t *testing.T) {
	store := NewStore(t.TempDir(), "http://localhost:8340")

	_, err := store.Save(fileHeader(t, "notes.txt", "text/plain", []byte("hello")))
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
}

func TestStore_RejectsOversizedFile(t *testing.T) {
	store := NewStore(t.TempDir(), "http://localhost:8340")

	big := bytes.Repeat([]byte("a"), int(DefaultMaxUploadSizeMB*1024*1024)+1)
	_, err := store.Save(fileHeader(t, "huge.jpg", "image/jpeg", big))
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
}

func TestStore_SanitizesClientFilename(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, "http://localhost:8340")

	saved, err := store.Save(fileHeader(t, "../../etc/passwd my file.jpg", "image/jpeg", []byte("jpg")))
	require.NoError(t, err)
	assert.False(t, strings.Contains(saved.Name, ".."))
	assert.False(t, strings.Contains(saved.Name, "/"))
	assert.True(t, strings.HasSuffix(saved.Name, "passwd_my_file.jpg"))
}
