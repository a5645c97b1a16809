package v1_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	v1 "github.com/Meghana-Kona/Student-Budget-Tracker/internal/controllers/v1"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/ledger"
	"github.com/Meghana-Kona/Student-Budget-Tracker/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// stubExtractor returns fixed text instead of calling an OCR service.
type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) Extract(_ context.Context, _ io.Reader, _ string) (string, error) {
	return s.text, s.err
}

// uploadReceipt posts a fake image to the invoice endpoint.
func (suite *TestSuiteStandard) uploadReceipt(headers map[string]string, filename string) httptest.ResponseRecorder {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		suite.Assert().FailNow("Multipart body could not be built", "Error: %s", err)
	}
	_, _ = part.Write([]byte("not really image data"))
	writer.Close()

	uploadHeaders := map[string]string{"Content-Type": writer.FormDataContentType()}
	for header, value := range headers {
		uploadHeaders[header] = value
	}

	return test.Request(suite.T(), http.MethodPost, "http://example.com/v1/invoices", body, uploadHeaders)
}

func (suite *TestSuiteStandard) TestInvoiceUpload() {
	defer func() { v1.OCR = nil }()
	v1.OCR = stubExtractor{text: "Pizza - 250.00\nNotebook: 40\ngarbled line without amount"}

	headers := suite.signUp("invoice-upload@example.com")

	recorder := suite.uploadReceipt(headers, "receipt.jpg")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.InvoiceDraftResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	// The garbled line is dropped silently
	assert.Len(suite.T(), response.Data.Items, 2)
	assert.Equal(suite.T(), "Pizza", response.Data.Items[0].Name)
	assert.Equal(suite.T(), "Food", response.Data.Items[0].Category)
	assert.True(suite.T(), response.Data.Items[0].Amount.Equal(decimal.NewFromInt(250)))
	assert.Equal(suite.T(), "Books", response.Data.Items[1].Category)
}

func (suite *TestSuiteStandard) TestInvoiceUploadWrongSuffix() {
	defer func() { v1.OCR = nil }()
	v1.OCR = stubExtractor{text: "Pizza - 250.00"}

	headers := suite.signUp("invoice-suffix@example.com")

	recorder := suite.uploadReceipt(headers, "receipt.pdf")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestInvoiceUploadOCRFailure() {
	defer func() { v1.OCR = nil }()
	v1.OCR = stubExtractor{err: errors.New("connection refused")}

	headers := suite.signUp("invoice-ocr-failure@example.com")

	recorder := suite.uploadReceipt(headers, "receipt.png")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response v1.InvoiceDraftResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	// The provider error is not forwarded
	assert.Contains(suite.T(), *response.Error, "Try a clearer image")
	assert.NotContains(suite.T(), *response.Error, "connection refused")
}

func (suite *TestSuiteStandard) TestInvoiceUploadNotConfigured() {
	headers := suite.signUp("invoice-unconfigured@example.com")

	recorder := suite.uploadReceipt(headers, "receipt.jpg")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotImplemented)
}

func (suite *TestSuiteStandard) TestInvoiceCommit() {
	defer func() { v1.OCR = nil }()
	v1.OCR = stubExtractor{text: "Pizza - 250.00\nNotebook: 40"}

	headers := suite.signUp("invoice-commit@example.com")

	recorder := suite.uploadReceipt(headers, "receipt.jpg")
	var draft v1.InvoiceDraftResponse
	test.DecodeResponse(suite.T(), &recorder, &draft)

	// Commit with one edited item
	recorder = test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/invoices/%s/commit", draft.Data.ID), v1.InvoiceCommitRequest{
		Items: []ledger.DraftItem{
			{Name: "Pizza", Amount: decimal.NewFromInt(250), Category: "Food"},
			{Name: "Sketchbook", Amount: decimal.NewFromInt(60), Category: "Books"},
		},
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var committed v1.InvoiceCommitResponse
	test.DecodeResponse(suite.T(), &recorder, &committed)
	assert.Len(suite.T(), committed.Data, 2)
	assert.Equal(suite.T(), "Sketchbook", committed.Data[1].Description)

	// Committing again fails, the draft is gone
	recorder = test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/invoices/%s/commit", draft.Data.ID), v1.InvoiceCommitRequest{}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	// The expenses are in the ledger even though there was no allowance
	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/expenses", nil, headers)
	var expenses v1.ExpenseListResponse
	test.DecodeResponse(suite.T(), &recorder, &expenses)
	assert.Len(suite.T(), expenses.Data, 2)
}

func (suite *TestSuiteStandard) TestInvoiceCancel() {
	defer func() { v1.OCR = nil }()
	v1.OCR = stubExtractor{text: "Pizza - 250.00"}

	headers := suite.signUp("invoice-cancel@example.com")

	recorder := suite.uploadReceipt(headers, "receipt.jpg")
	var draft v1.InvoiceDraftResponse
	test.DecodeResponse(suite.T(), &recorder, &draft)

	recorder = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/invoices/%s", draft.Data.ID), nil, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// No expenses were created
	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/expenses", nil, headers)
	var expenses v1.ExpenseListResponse
	test.DecodeResponse(suite.T(), &recorder, &expenses)
	assert.Len(suite.T(), expenses.Data, 0)
}
