package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type joinForm struct {
	UID    string `json:"uid" binding:"required,digits"`
	Number string `json:"number" binding:"required,payout_target"`
	Name   string `json:"gameName" binding:"max=4"`
}

func newValidate(t *testing.T) *validator.Validate {
	validate := validator.New()
	validate.SetTagName("binding")
	require.NoError(t, RegisterOn(validate))
	return validate
}

func TestRegisterOn(t *testing.T) {
	validate := newValidate(t)

	tests := []struct {
		name    string
		form    joinForm
		wantErr map[string]string
	}{
		{"Valid", joinForm{UID: "123456", Number: "+8801711111111", Name: "Rex"}, nil},
		{"Letters in UID", joinForm{UID: "12a", Number: "01711111111"}, map[string]string{"uid": "Must contain digits only"}},
		{"Bad payout number", joinForm{UID: "1", Number: "0171-111"}, map[string]string{"number": "Must be a mobile banking number"}},
		{"Missing fields", joinForm{}, map[string]string{"uid": "This field is required", "number": "This field is required"}},
		{"Long name", joinForm{UID: "1", Number: "1", Name: "Rexxar"}, map[string]string{"gameName": "Must be at most 4 characters"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.form)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantErr, FieldErrors(err))
		})
	}
}

func TestFieldErrors_NotValidation(t *testing.T) {
	assert.Nil(t, FieldErrors(assert.AnError))
	assert.Nil(t, FieldErrors(nil))
}
