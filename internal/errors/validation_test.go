package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/agent-sandbox/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("npc_id").
		Fieldf("memory_limit", "must be between %d and %d", 1, 20)

	err := vb.Build()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "memory_limit: must be between 1 and 20")
	s.Contains(err.Error(), "npc_id: is required")
	s.NotNil(errors.GetMeta(err)["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	s.NoError(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "npc-1", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("field", tc.value, vb)
			if tc.shouldErr {
				s.Error(vb.Build())
			} else {
				s.NoError(vb.Build())
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateRangeAndEnum() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("limit", 0, 1, 10, vb)
	errors.ValidateEnum("policy", "chaos", []string{"passthrough", "defaults"}, vb)

	err := vb.Build()
	s.Require().Error(err)
	s.Contains(err.Error(), "limit: must be between 1 and 10")
	s.Contains(err.Error(), "policy: must be one of: passthrough, defaults")

	ok := errors.NewValidationBuilder()
	errors.ValidateRange("limit", 3, 1, 10, ok)
	errors.ValidateEnum("policy", "defaults", []string{"passthrough", "defaults"}, ok)
	s.NoError(ok.Build())
}
