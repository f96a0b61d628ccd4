package validation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/dmitrijs2005/docdesk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New(logging.Discard())
	require.NoError(t, err)
	return v
}

func TestValidateUpload_AcceptsWhitelist(t *testing.T) {
	v := newValidator(t)
	for _, name := range []string{"report.pdf", "notes.docx", "deck.pptx", "UPPER.PDF"} {
		f := models.UploadFile{Name: name, Size: 10, Content: strings.NewReader("x")}
		assert.NoError(t, v.ValidateUpload(context.Background(), f), name)
	}
}

func TestValidateUpload_RejectsOtherExtensions(t *testing.T) {
	v := newValidator(t)
	for _, name := range []string{"report.txt", "image.png", "legacy.doc", "noext"} {
		err := v.ValidateUpload(context.Background(), models.UploadFile{Name: name, Content: strings.NewReader("x")})
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrValidation), name)
		assert.Equal(t, "Only PDF, DOCX and PPTX files are supported", err.Error())
	}
}

func TestValidateUpload_EmptyName(t *testing.T) {
	v := newValidator(t)
	err := v.ValidateUpload(context.Background(), models.UploadFile{})
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Name", verr.Field)
	assert.Contains(t, verr.Message, "missing required field")
}

type sampleConfig struct {
	APIURL string `json:"api_url" validate:"required,url"`
	Driver string `json:"storage_driver" validate:"oneof=supabase s3"`
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := newValidator(t)

	err := v.Validate(context.Background(), sampleConfig{APIURL: "not a url", Driver: "s3"})
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "api_url", verr.Field)

	err = v.Validate(context.Background(), sampleConfig{APIURL: "http://localhost:8000", Driver: "ftp"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "storage_driver", verr.Field)
	assert.Contains(t, verr.Message, "supabase s3")

	assert.NoError(t, v.Validate(context.Background(), sampleConfig{APIURL: "http://localhost:8000", Driver: "supabase"}))
}
