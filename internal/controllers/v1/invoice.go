package v1

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/auth"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/httputil"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/invoice"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/ledger"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/models"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/ocr"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// OCR is the text extractor used for uploaded receipt images. It is
// set at startup when an OCR provider is configured.
var OCR ocr.TextExtractor

// Classifier guesses expense categories for extracted line items.
var Classifier invoice.Classifier = invoice.NewKeywordClassifier()

// imageSuffixes are the file types the OCR provider accepts.
var imageSuffixes = []string{".png", ".jpg", ".jpeg", ".bmp", ".tiff"}

// RegisterInvoiceRoutes registers the routes for invoice scanning with
// the RouterGroup that is passed.
func RegisterInvoiceRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsPost)
		r.POST("", CreateInvoiceDraft)
	}

	// Draft with ID
	{
		r.OPTIONS("/:id", httputil.OptionsDelete)
		r.DELETE("/:id", DeleteInvoiceDraft)
	}

	// Commit
	{
		r.OPTIONS("/:id/commit", httputil.OptionsPost)
		r.POST("/:id/commit", CommitInvoiceDraft)
	}
}

type InvoiceDraftResponse struct {
	Error *string              `json:"error"` // The error, if any occurred
	Data  *models.InvoiceDraft `json:"data"`  // The draft with its extracted items
}

type InvoiceCommitRequest struct {
	Items []ledger.DraftItem `json:"items"` // The reviewed line items
}

type InvoiceCommitResponse struct {
	Error *string          `json:"error"` // The error, if any occurred
	Data  []models.Expense `json:"data"`  // The created expenses
}

// getUploadedImage returns the uploaded receipt image and handles
// potential errors.
func getUploadedImage(c *gin.Context) (multipart.File, string, error) {
	formFile, err := c.FormFile("image")
	if formFile == nil {
		return nil, "", errNoFilePost
	}

	if err != nil {
		return nil, "", err
	}

	suffix := strings.ToLower(filepath.Ext(formFile.Filename))
	if !slices.Contains(imageSuffixes, suffix) {
		return nil, "", errWrongFileSuffix
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, "", err
	}

	return f, formFile.Filename, nil
}

// CreateInvoiceDraft accepts a receipt image, extracts its line items
// and stores them as a draft for the user to review.
//
// Lines the extractor cannot parse are dropped silently, so the draft
// may hold fewer items than the receipt has lines, or none at all.
// The draft does not affect the balance until it is committed.
func CreateInvoiceDraft(c *gin.Context) {
	if OCR == nil {
		e := errOCRNotConfigured.Error()
		c.JSON(http.StatusNotImplemented, InvoiceDraftResponse{Error: &e})
		return
	}

	image, filename, err := getUploadedImage(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, InvoiceDraftResponse{Error: &e})
		return
	}
	defer image.Close()

	text, err := OCR.Extract(c.Request.Context(), image, filename)
	if err != nil {
		log.Warn().Err(err).Str("file", filename).Msg("text extraction failed")

		// The provider error is not forwarded to the client
		e := errUnreadableImage.Error()
		c.JSON(http.StatusBadRequest, InvoiceDraftResponse{Error: &e})
		return
	}

	draft := models.InvoiceDraft{UserID: auth.UserID(c)}
	for _, item := range invoice.Extract(text, Classifier) {
		draft.Items = append(draft.Items, models.InvoiceDraftItem{
			Name:     item.Name,
			Amount:   item.Amount,
			Category: item.Category,
		})
	}

	err = models.DB.Create(&draft).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvoiceDraftResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, InvoiceDraftResponse{Data: &draft})
}

// CommitInvoiceDraft turns the reviewed items into expenses dated
// today and deletes the draft. The items in the request body replace
// the extracted ones, the user may have edited them.
func CommitInvoiceDraft(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, InvoiceCommitResponse{Error: &e})
		return
	}

	var request InvoiceCommitRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvoiceCommitResponse{Error: &e})
		return
	}

	expenses, err := ledger.CommitDraft(models.DB, auth.UserID(c), uri.ID.UUID, request.Items)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InvoiceCommitResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, InvoiceCommitResponse{Data: expenses})
}

// DeleteInvoiceDraft discards a draft without creating any expenses.
func DeleteInvoiceDraft(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, httpError{Error: e})
		return
	}

	var draft models.InvoiceDraft
	err := models.DB.Where("user_id = ?", auth.UserID(c)).First(&draft, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("invoice_draft_id = ?", draft.ID).Delete(&models.InvoiceDraftItem{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&draft).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
