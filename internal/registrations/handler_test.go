package registrations

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2706msjk-ui/gilmo/internal/models"
)

type fakeStore struct {
	createErr error
	created   []*models.Registration
}

func (f *fakeStore) Create(_ context.Context, reg *models.Registration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, reg)
	return nil
}

func (f *fakeStore) List(context.Context) ([]models.Registration, error) {
	var list []models.Registration
	for _, r := range f.created {
		list = append(list, *r)
	}
	return list, nil
}

type fakePhotos struct {
	uploadErr map[string]error // by key suffix ("body.jpg"/"face.jpg")
	uploads   []string
	deletes   []string
}

func (f *fakePhotos) UploadPhoto(_ context.Context, key, _ string, _ []byte) (string, error) {
	for suffix, err := range f.uploadErr {
		if strings.HasSuffix(key, suffix) && err != nil {
			return "", err
		}
	}
	f.uploads = append(f.uploads, key)
	return "https://registrations.s3.ap-northeast-2.amazonaws.com/" + key, nil
}

func (f *fakePhotos) DeletePhoto(_ context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	return nil
}

func newRouter(store *fakeStore, photos *fakePhotos) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(store, photos, NewValidator(testRules()), nil)
	r := gin.New()
	r.POST("/registrations", h.Create)
	r.GET("/admin/registrations", h.List)
	return r
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for x := 0; x < 64; x++ {
		for y := 0; y < 64; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type formOpts struct {
	fields   map[string]string
	skipBody bool
	skipFace bool
}

func buildForm(t *testing.T, opts formOpts) (*bytes.Buffer, string) {
	t.Helper()
	fields := map[string]string{
		"name":         "Kim",
		"gender":       "male",
		"birth_date":   "1999-05-01",
		"phone":        "010-1111-2222",
		"instagram_id": "@kim",
		"height":       "175",
		"weight":       "70",
	}
	for k, v := range opts.fields {
		fields[k] = v
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if !opts.skipBody {
		fw, err := w.CreateFormFile("body_photo", "body.png")
		require.NoError(t, err)
		_, err = fw.Write(pngBytes(t))
		require.NoError(t, err)
	}
	if !opts.skipFace {
		fw, err := w.CreateFormFile("face_photo", "face.png")
		require.NoError(t, err)
		_, err = fw.Write(pngBytes(t))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func postForm(r *gin.Engine, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/registrations", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateRegistration(t *testing.T) {
	store := &fakeStore{}
	photos := &fakePhotos{}
	r := newRouter(store, photos)

	body, ct := buildForm(t, formOpts{})
	rec := postForm(r, body, ct)

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, store.created, 1)
	reg := store.created[0]
	assert.Equal(t, "Kim", reg.Name)
	assert.Equal(t, "01011112222", reg.Phone, "stored phone must be digits only")
	assert.False(t, reg.SMSSent)
	assert.Len(t, photos.uploads, 2)
	assert.Contains(t, reg.BodyPhotoURL, "_body.jpg")
	assert.Contains(t, reg.FacePhotoURL, "_face.jpg")
	assert.Empty(t, photos.deletes)
}

func TestCreateRejectsIneligibleBirthYearWithoutNetworkCall(t *testing.T) {
	store := &fakeStore{}
	photos := &fakePhotos{}
	r := newRouter(store, photos)

	body, ct := buildForm(t, formOpts{fields: map[string]string{"birth_date": "1988-01-01"}})
	rec := postForm(r, body, ct)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "birth_date")
	assert.Empty(t, photos.uploads, "validation failure must not touch storage")
	assert.Empty(t, store.created)
}

func TestCreateRejectsMissingPhotoWithoutNetworkCall(t *testing.T) {
	store := &fakeStore{}
	photos := &fakePhotos{}
	r := newRouter(store, photos)

	body, ct := buildForm(t, formOpts{skipFace: true})
	rec := postForm(r, body, ct)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "face_photo")
	assert.Empty(t, photos.uploads)
	assert.Empty(t, store.created)
}

func TestCreateFailsWhenEitherUploadFails(t *testing.T) {
	store := &fakeStore{}
	photos := &fakePhotos{uploadErr: map[string]error{"face.jpg": errors.New("s3 down")}}
	r := newRouter(store, photos)

	body, ct := buildForm(t, formOpts{})
	rec := postForm(r, body, ct)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, store.created, "no row insert after a failed upload")
}

func TestCreateCleansUpBlobsWhenInsertFails(t *testing.T) {
	store := &fakeStore{createErr: errors.New("db down")}
	photos := &fakePhotos{}
	r := newRouter(store, photos)

	body, ct := buildForm(t, formOpts{})
	rec := postForm(r, body, ct)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, photos.deletes, 2, "both uploaded blobs must be compensated")
}

func TestCreateStoresInstagramSentinel(t *testing.T) {
	store := &fakeStore{}
	photos := &fakePhotos{}
	r := newRouter(store, photos)

	body, ct := buildForm(t, formOpts{fields: map[string]string{"instagram_id": "", "no_instagram": "true"}})
	rec := postForm(r, body, ct)

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, store.created, 1)
	assert.Equal(t, models.InstagramNone, store.created[0].InstagramID)
}

func TestListRegistrations(t *testing.T) {
	store := &fakeStore{created: []*models.Registration{{Name: "Kim"}}}
	r := newRouter(store, &fakePhotos{})

	req := httptest.NewRequest(http.MethodGet, "/admin/registrations", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kim")
}
