package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profileInput struct {
	FullName string `json:"fullName" binding:"required,notblank"`
	Mobile   string `json:"mobileNumber" binding:"omitempty,mobile10"`
	Stage    string `json:"admissionStage" binding:"omitempty,stage"`
	DocType  string `json:"documentType" binding:"omitempty,doctype"`
	Email    string `json:"email" binding:"omitempty,email"`
}

func TestSetup_TranslatesWithJSONNames(t *testing.T) {
	require.NoError(t, Setup())
	require.NoError(t, Setup())

	err := binding.Validator.ValidateStruct(&profileInput{
		FullName: "  ",
		Mobile:   "12345",
		Stage:    "Account Created",
		DocType:  "passport",
		Email:    "not-an-email",
	})
	require.Error(t, err)

	got := map[string]string{}
	for _, fe := range Translate(err) {
		got[fe.Field] = fe.Message
	}

	assert.Equal(t, "fullName cannot be blank", got["fullName"])
	assert.Equal(t, "mobileNumber must be a 10 digit number", got["mobileNumber"])
	assert.Equal(t, "admissionStage must be one of the admission stages", got["admissionStage"])
	assert.Equal(t, "documentType must be a known document type", got["documentType"])
	assert.Equal(t, "email must be a valid email address", got["email"])
}

func TestSetup_AcceptsValidInput(t *testing.T) {
	require.NoError(t, Setup())

	err := binding.Validator.ValidateStruct(&profileInput{
		FullName: "Asha Patil",
		Mobile:   "9876543210",
		Stage:    "Seat Allotment",
		DocType:  "aadhaar",
	})
	assert.NoError(t, err)
}

func TestTranslate_NonValidationError(t *testing.T) {
	assert.Nil(t, Translate(assert.AnError))
}

func TestIsValidMobile(t *testing.T) {
	assert.True(t, IsValidMobile(""))
	assert.True(t, IsValidMobile("0123456789"))
	assert.False(t, IsValidMobile("012345678"))
	assert.False(t, IsValidMobile("01234567890"))
	assert.False(t, IsValidMobile("01234-6789"))
}
