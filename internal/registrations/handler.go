package registrations

import (
	"context"
	"io"
	"mime/multipart"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/2706msjk-ui/gilmo/internal/models"
	"github.com/2706msjk-ui/gilmo/pkg/imaging"
	"github.com/2706msjk-ui/gilmo/pkg/response"
	"github.com/2706msjk-ui/gilmo/pkg/storage"
	"github.com/2706msjk-ui/gilmo/pkg/utils"
)

// Store persists registrations.
type Store interface {
	Create(ctx context.Context, reg *models.Registration) error
	List(ctx context.Context) ([]models.Registration, error)
}

// PhotoStore uploads and deletes photo blobs.
type PhotoStore interface {
	UploadPhoto(ctx context.Context, key, contentType string, data []byte) (string, error)
	DeletePhoto(ctx context.Context, key string) error
}

// Handler handles registration HTTP endpoints.
type Handler struct {
	store     Store
	photos    PhotoStore
	validator *Validator
	logger    *zap.Logger
}

// NewHandler creates a registrations handler.
func NewHandler(store Store, photos PhotoStore, validator *Validator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, photos: photos, validator: validator, logger: logger}
}

// Create handles POST /registrations. Validates the multipart form,
// recompresses and uploads both photos concurrently, then inserts the row.
// Uploaded blobs are deleted if the insert fails.
func (h *Handler) Create(c *gin.Context) {
	bodyFile, bodyErr := c.FormFile("body_photo")
	faceFile, faceErr := c.FormFile("face_photo")

	sub := Submission{
		Name:        c.PostForm("name"),
		Gender:      c.PostForm("gender"),
		BirthDate:   c.PostForm("birth_date"),
		Phone:       c.PostForm("phone"),
		InstagramID: c.PostForm("instagram_id"),
		NoInstagram: c.PostForm("no_instagram") == "true",
		Height:      c.PostForm("height"),
		Weight:      c.PostForm("weight"),
		HasBody:     bodyErr == nil,
		HasFace:     faceErr == nil,

		EventDate:         c.PostForm("event_date"),
		Location:          c.PostForm("location"),
		Job:               c.PostForm("job"),
		Charm:             c.PostForm("charm"),
		PreferredStyle:    c.PostForm("preferred_style"),
		ParticipationType: c.PostForm("participation_type"),
		ReferralSource:    c.PostForm("referral_source"),
	}

	if errs := h.validator.Validate(sub); len(errs) > 0 {
		response.ValidationFailed(c, errs)
		return
	}

	bodyData, err := readAndRecompress(bodyFile)
	if err != nil {
		response.BadRequest(c, "body_photo: "+err.Error())
		return
	}
	faceData, err := readAndRecompress(faceFile)
	if err != nil {
		response.BadRequest(c, "face_photo: "+err.Error())
		return
	}

	now := time.Now()
	bodyKey := storage.PhotoKey(now, storage.PhotoKindBody)
	faceKey := storage.PhotoKey(now, storage.PhotoKindFace)

	var bodyURL, faceURL string
	g, gctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		bodyURL, err = h.photos.UploadPhoto(gctx, bodyKey, "image/jpeg", bodyData)
		return err
	})
	g.Go(func() error {
		var err error
		faceURL, err = h.photos.UploadPhoto(gctx, faceKey, "image/jpeg", faceData)
		return err
	})
	if err := g.Wait(); err != nil {
		h.logger.Error("photo upload failed", zap.Error(err))
		response.Internal(c, "failed to upload photos")
		return
	}

	birthDate, _ := time.Parse("2006-01-02", sub.BirthDate) // validated above
	instagram := sub.InstagramID
	if sub.NoInstagram {
		instagram = models.InstagramNone
	}
	reg := &models.Registration{
		Name:         sub.Name,
		BirthDate:    birthDate,
		Gender:       sub.Gender,
		Phone:        utils.NormalizePhone(sub.Phone),
		InstagramID:  instagram,
		Height:       sub.Height,
		Weight:       sub.Weight,
		BodyPhotoURL: bodyURL,
		FacePhotoURL: faceURL,

		EventDate:         sub.EventDate,
		Location:          sub.Location,
		Job:               sub.Job,
		Charm:             sub.Charm,
		PreferredStyle:    sub.PreferredStyle,
		ParticipationType: sub.ParticipationType,
		ReferralSource:    sub.ReferralSource,
	}
	if err := h.store.Create(c.Request.Context(), reg); err != nil {
		h.logger.Error("create registration failed", zap.Error(err))
		h.cleanupPhotos(bodyKey, faceKey)
		response.Internal(c, "failed to register")
		return
	}

	response.Created(c, reg)
}

// List handles GET /admin/registrations.
func (h *Handler) List(c *gin.Context) {
	list, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list registrations failed", zap.Error(err))
		response.Internal(c, "failed to list registrations")
		return
	}
	response.OK(c, list)
}

// cleanupPhotos removes already-uploaded blobs after a failed insert so no
// orphaned objects accumulate.
func (h *Handler) cleanupPhotos(keys ...string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, key := range keys {
		if err := h.photos.DeletePhoto(ctx, key); err != nil {
			h.logger.Warn("orphan photo cleanup failed", zap.String("key", key), zap.Error(err))
		}
	}
}

func readAndRecompress(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return imaging.Recompress(data)
}
