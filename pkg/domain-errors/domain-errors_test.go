package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestError() {
	s.Run("message wins over code", func() {
		err := &Error{Code: CodeNotFound, Message: "property not found"}
		s.Equal("property not found", err.Error())
	})

	s.Run("falls back to code", func() {
		err := &Error{Code: CodeConflict}
		s.Equal("conflict", err.Error())
	})
}

func (s *DomainErrorsSuite) TestIs() {
	s.Run("matches on code across messages", func() {
		a := &Error{Code: CodeNotFound, Message: "user not found"}
		b := &Error{Code: CodeNotFound, Message: "rating not found"}
		s.True(errors.Is(a, b))
	})

	s.Run("does not match foreign errors", func() {
		s.False((&Error{Code: CodeNotFound}).Is(errors.New("not_found")))
	})

	s.Run("walks the chain", func() {
		inner := &Error{Code: CodeForbidden}
		outer := fmt.Errorf("service: %w", inner)
		s.True(errors.Is(outer, &Error{Code: CodeForbidden}))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("keeps the inner domain code", func() {
		wrapped := Wrap(New(CodeConflict, "email taken"), CodeInternal, "register failed")
		s.True(HasCode(wrapped, CodeConflict))
		s.Equal("register failed", wrapped.Error())
	})

	s.Run("applies code to foreign errors", func() {
		cause := errors.New("connection reset")
		wrapped := Wrap(cause, CodeInternal, "load property")
		s.True(HasCode(wrapped, CodeInternal))
		s.ErrorIs(wrapped, cause)
	})

	s.Run("detail exposes the cause", func() {
		wrapped := Wrap(errors.New("pq: relation missing"), CodeInternal, "query failed")
		var de *Error
		s.Require().ErrorAs(wrapped, &de)
		s.Equal("pq: relation missing", de.Detail())
	})
}

func (s *DomainErrorsSuite) TestCodeOf() {
	s.Equal(CodeValidation, CodeOf(Newf(CodeValidation, "rating must be between %d and %d", 1, 5)))
	s.Equal(CodeInternal, CodeOf(errors.New("boom")))
	s.False(HasCode(nil, CodeNotFound))
}
