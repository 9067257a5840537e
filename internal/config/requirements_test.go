package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequirementsValidate(t *testing.T) {
	assert.NoError(t, Requirements{}.Validate())
	assert.NoError(t, Requirements{From: "a", To: "b", Direct: true}.Validate())
	assert.ErrorContains(t, Requirements{From: "a", To: "a"}.Validate(), "at least two solutions")
}
