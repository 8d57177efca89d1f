package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mossvale/mossvale/internal/dependencies/mocks"
	"github.com/mossvale/mossvale/internal/storage/memory"
	"github.com/mossvale/mossvale/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	session, err := s.service.Register(s.ctx, "ari", "opensesame")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal("ari", session.Account.Username)
	s.NotEmpty(session.AccountID)
}

func (s *ServiceSuite) TestRegisterPersistsAccount() {
	session, err := s.service.Register(s.ctx, "ari", "opensesame")
	s.Require().NoError(err)

	account, err := s.storage.GetAccount(s.ctx, session.AccountID)
	s.Require().NoError(err)
	s.Equal("ari", account.Username)
	s.NotEqual("opensesame", account.PasswordHash)
}

func (s *ServiceSuite) TestRegisterRejectsDuplicateUsername() {
	_, err := s.service.Register(s.ctx, "ari", "opensesame")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "ari", "different")
	s.ErrorIs(err, ErrUsernameExists)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	registered, err := s.service.Register(s.ctx, "ari", "opensesame")
	s.Require().NoError(err)

	session, err := s.service.Login(s.ctx, "ari", "opensesame")
	s.Require().NoError(err)
	s.Equal(registered.AccountID, session.AccountID)
	s.NotEqual(registered.Token, session.Token)
}

func (s *ServiceSuite) TestLoginRejectsWrongPassword() {
	_, err := s.service.Register(s.ctx, "ari", "opensesame")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "ari", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginRejectsUnknownUsername() {
	_, err := s.service.Login(s.ctx, "nobody", "opensesame")
	s.ErrorIs(err, ErrInvalidCredentials)
}

// Session tests

func (s *ServiceSuite) TestValidateSession() {
	session, err := s.service.Register(s.ctx, "ari", "opensesame")
	s.Require().NoError(err)

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(session.AccountID, validated.AccountID)
}

func (s *ServiceSuite) TestValidateSessionRejectsUnknownToken() {
	_, err := s.service.ValidateSession("sess_bogus")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionRejectsExpiredToken() {
	session, err := s.service.Register(s.ctx, "ari", "opensesame")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestInvalidateSession() {
	session, err := s.service.Register(s.ctx, "ari", "opensesame")
	s.Require().NoError(err)

	s.service.InvalidateSession(session.Token)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestCleanExpiredSessions() {
	expired, err := s.service.Register(s.ctx, "ari", "opensesame")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)
	fresh, err := s.service.Login(s.ctx, "ari", "opensesame")
	s.Require().NoError(err)

	s.service.CleanExpiredSessions()

	_, err = s.service.ValidateSession(expired.Token)
	s.ErrorIs(err, ErrInvalidSession)
	_, err = s.service.ValidateSession(fresh.Token)
	s.NoError(err)
}
