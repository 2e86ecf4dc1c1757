package httpapi

import (
	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/skycatalog/media-portal/internal/catalogue"
	"github.com/skycatalog/media-portal/internal/upload"
	"github.com/skycatalog/media-portal/pkg/filestore"
	"github.com/skycatalog/media-portal/pkg/val"
)

// Handler serves the media endpoints: upload, catalogue queries, record
// mutation and blob streaming.
type Handler struct {
	uploads   *upload.Service
	catalogue *catalogue.Service
}

func NewHandler(uploads *upload.Service, cat *catalogue.Service) *Handler {
	return &Handler{
		uploads:   uploads,
		catalogue: cat,
	}
}

// Upload handles POST /upload: a multipart form with a "file" part and the
// seven metadata fields.
func (h *Handler) Upload(c *fiber.Ctx) error {
	var form metadataForm
	if err := c.BodyParser(&form); err != nil {
		return errx.Wrap(err,
			errx.WithType(errx.T_Validation),
			errx.WithCode(codeInvalidFormData),
		)
	}

	if err := val.ValidateSchema(&form); err != nil {
		return errx.Wrap(err)
	}

	fields, err := form.fields()
	if err != nil {
		return errx.Wrap(err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errx.New(
			"validation failed",
			errx.WithCode(val.CodeValidationFailed),
			errx.WithType(errx.T_Validation),
			errx.WithFields(errx.M{"file": "this field is required"}),
		)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errx.Wrap(err)
	}
	defer file.Close() //nolint:errcheck // request-scoped temp file

	record, err := h.uploads.Upload(c.UserContext(), upload.Input{
		OriginalFilename: fileHeader.Filename,
		File:             file,
		Size:             fileHeader.Size,
		Fields:           fields,
	})
	if err != nil {
		return errx.Wrap(err)
	}

	return errx.Wrap(c.JSON(catalogue.RecordFromModel(*record)))
}

// ListImages handles GET /images with the filter query string.
func (h *Handler) ListImages(c *fiber.Ctx) error {
	var schema listQuerySchema
	if err := c.QueryParser(&schema); err != nil {
		return errx.Wrap(err,
			errx.WithType(errx.T_Validation),
			errx.WithCode(codeInvalidQueryParams),
		)
	}

	query := catalogue.ListQuery{
		Source:               schema.Source,
		Copyright:            schema.Copyright,
		DatasetRelease:       schema.DatasetRelease,
		Description:          schema.Description,
		DataProcessingStages: schema.DataProcessingStages,
		Coordinates:          schema.Coordinates,
		Page:                 schema.Params,
	}

	if schema.IsPublic != "" {
		isPublic, err := parseBoolField("isPublic", schema.IsPublic)
		if err != nil {
			return errx.Wrap(err)
		}
		query.IsPublic = &isPublic
	}

	records, err := h.catalogue.List(c.UserContext(), viewerFromCtx(c), query)
	if err != nil {
		return errx.Wrap(err)
	}

	return errx.Wrap(c.JSON(records))
}

// GetImage handles GET /images/:filename.
func (h *Handler) GetImage(c *fiber.Ctx) error {
	record, err := h.catalogue.Get(c.UserContext(), viewerFromCtx(c), c.Params("filename"))
	if err != nil {
		return errx.Wrap(err)
	}

	return errx.Wrap(c.JSON(record))
}

// UpdateImage handles PUT /images/:filename, replacing the seven content
// fields.
func (h *Handler) UpdateImage(c *fiber.Ctx) error {
	var form metadataForm
	if err := c.BodyParser(&form); err != nil {
		return errx.Wrap(err,
			errx.WithType(errx.T_Validation),
			errx.WithCode(codeInvalidFormData),
		)
	}

	if err := val.ValidateSchema(&form); err != nil {
		return errx.Wrap(err)
	}

	fields, err := form.fields()
	if err != nil {
		return errx.Wrap(err)
	}

	record, err := h.catalogue.Update(c.UserContext(), viewerFromCtx(c), c.Params("filename"), fields)
	if err != nil {
		return errx.Wrap(err)
	}

	return errx.Wrap(c.JSON(record))
}

// DeleteImage handles DELETE /images/:filename.
func (h *Handler) DeleteImage(c *fiber.Ctx) error {
	err := h.catalogue.Delete(c.UserContext(), viewerFromCtx(c), c.Params("filename"))
	if err != nil {
		return errx.Wrap(err)
	}

	return errx.Wrap(c.SendStatus(fiber.StatusNoContent))
}

// ServeFile handles GET /files/:filename, streaming the blob with the
// content type implied by the stored filename.
func (h *Handler) ServeFile(c *fiber.Ctx) error {
	rc, record, err := h.catalogue.OpenFile(c.UserContext(), viewerFromCtx(c), c.Params("filename"))
	if err != nil {
		return errx.Wrap(err)
	}

	// fasthttp closes the stream after the response is written.
	c.Set(fiber.HeaderContentType, filestore.TypeByName(record.Filename))
	return errx.Wrap(c.SendStream(rc))
}
