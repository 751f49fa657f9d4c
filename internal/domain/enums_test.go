package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMaterial(t *testing.T) {
	assert.NoError(t, ValidateMaterial("PP", nil))
	assert.NoError(t, ValidateMaterial(" pe ", nil), "normalized before lookup")
	assert.Error(t, ValidateMaterial("", nil))
	assert.Error(t, ValidateMaterial("ABS", nil), "not in the default catalog")

	catalog := map[string]bool{"ABS": true}
	assert.NoError(t, ValidateMaterial("abs", catalog))
	assert.Error(t, ValidateMaterial("PP", catalog))
}
