package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/debnet/fallout/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "binding not found",
			expected: "NOT_FOUND: binding not found",
		},
		{
			name:     "network error",
			code:     errors.CodeNetwork,
			message:  "search endpoint unreachable",
			expected: "NETWORK_ERROR: search endpoint unreachable",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.Network("search failed").
		WithMeta("url", "http://localhost/api/item/").
		WithMeta("status", 503)

	s.Assert().Equal("http://localhost/api/item/", err.Meta["url"])
	s.Assert().Equal(503, err.Meta["status"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(baseErr, "failed to search items")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to search items", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.MalformedResponse("results missing")
	wrapped := errors.Wrap(baseErr, "failed to decode envelope")

	s.Assert().Equal(errors.CodeMalformedResponse, wrapped.Code)
	s.Assert().True(errors.IsMalformedResponse(wrapped))
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := errors.Internal("boom").WithMeta("attempt", 1)
	wrapped := errors.WrapWithCode(baseErr, errors.CodeNetwork, "simulation unreachable")

	s.Assert().Equal(errors.CodeNetwork, wrapped.Code)
	s.Assert().Equal(1, wrapped.Meta["attempt"])
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.Network("a")
	err2 := errors.Network("b")
	err3 := errors.MalformedResponse("c")

	s.Assert().True(errors.Is(err1, err2))
	s.Assert().False(errors.Is(err1, err3))
}

func (s *ErrorsTestSuite) TestGetters() {
	err := errors.NotFound("user friendly message").WithMeta("key", "value")
	wrapped := errors.Wrap(err, "wrapped message")
	stdErr := fmt.Errorf("standard error")

	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(stdErr))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))

	s.Assert().Equal("value", errors.GetMeta(wrapped)["key"])
	s.Assert().Nil(errors.GetMeta(stdErr))

	s.Assert().Equal("wrapped message", errors.GetMessage(wrapped))
	s.Assert().Equal("standard error", errors.GetMessage(stdErr))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, 200},
		{errors.CodeNotFound, 404},
		{errors.CodeInvalidArgument, 400},
		{errors.CodeAborted, 409},
		{errors.CodeInternal, 500},
		{errors.CodeUnavailable, 503},
		{errors.CodeNetwork, 502},
		{errors.CodeMalformedResponse, 502},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.HTTPStatus())
		})
	}
}

func (s *ErrorsTestSuite) TestGRPCRoundTrip() {
	err := errors.MalformedResponse("results missing").WithMeta("url", "/api/item/")

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Assert().Equal(codes.DataLoss, st.Code())
	s.Assert().Equal("results missing", st.Message())

	back := errors.FromGRPCError(grpcErr)
	s.Assert().True(errors.IsMalformedResponse(back))
	s.Assert().Equal("/api/item/", errors.GetMeta(back)["url"])
}

func (s *ErrorsTestSuite) TestGRPCUnencodableMeta() {
	err := errors.NewValidationBuilder().RequiredField("Client").Build()

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Assert().Equal(codes.InvalidArgument, st.Code())
	s.Assert().True(errors.IsInvalidArgument(errors.FromGRPCError(grpcErr)))
}

func (s *ErrorsTestSuite) TestFromPlainGRPCError() {
	err := errors.FromGRPCError(status.Error(codes.Unavailable, "down"))
	s.Assert().Equal(errors.CodeUnavailable, errors.GetCode(err))
	s.Assert().Equal("down", errors.GetMessage(err))
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	s.Assert().Equal(codes.Unavailable, errors.CodeNetwork.GRPCCode())
	s.Assert().Equal(codes.DataLoss, errors.CodeMalformedResponse.GRPCCode())
	s.Assert().Equal(codes.Unknown, errors.Code("SOMETHING").GRPCCode())
}
