package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/onokeee/mindmap"
	"github.com/onokeee/mindmap/errors"
)

// Service is the authentication front: it verifies credentials against the
// user store and manages the sessions derived from them.
type Service struct {
	users    mindmap.UserStore
	sessions *SessionRegistry
	encoder  *EncodeDecoder
}

func NewService(users mindmap.UserStore, key string) *Service {
	return &Service{
		users:    users,
		sessions: NewSessionRegistry(),
		encoder:  NewEncodeDecoder(key),
	}
}

// Login verifies the credentials and starts a session. It returns the signed
// token to hand to the client along with the session. Unknown usernames and
// wrong passwords are indistinguishable.
func (s *Service) Login(username, password string) (string, Session, error) {
	user, err := s.users.GetByUsername(username)
	if err == mindmap.ErrNotFound {
		return "", Session{}, errInvalidCredentials()
	} else if err != nil {
		return "", Session{}, errors.New("could not get user", errors.WithCause(err))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", Session{}, errInvalidCredentials()
	}

	session := s.sessions.Start(user)
	token, err := s.encoder.Encode(session.ID, session.ExpiresAt)
	if err != nil {
		s.sessions.End(session.ID)
		return "", Session{}, errors.New("could not encode token", errors.WithCause(err))
	}

	return token, session, nil
}

// Validate returns the session behind token, or nil when the token does not
// decode, the session is gone, or it has expired.
func (s *Service) Validate(token string) *Session {
	sessionID, err := s.encoder.Decode(token)
	if err != nil {
		return nil
	}

	return s.sessions.Validate(sessionID)
}

// Logout ends the session behind token. Invalid tokens are ignored: logging
// out never fails.
func (s *Service) Logout(token string) {
	sessionID, err := s.encoder.Decode(token)
	if err != nil {
		return
	}

	s.sessions.End(sessionID)
}

// Create provisions a new account with a bcrypt-hashed password.
func (s *Service) Create(username, password string) (*mindmap.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password required", errors.BadRequest())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("could not hash password", errors.WithCause(err))
	}

	user := &mindmap.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.users.Upsert(user); err == mindmap.ErrDuplicateName {
		return nil, errors.New(fmt.Sprintf("username %s already taken", username), errors.BadRequest())
	} else if err != nil {
		return nil, errors.New("could not save user", errors.WithCause(err))
	}

	return user, nil
}

// Bootstrap makes sure the default account exists. It runs on every start
// and leaves an existing account untouched.
func (s *Service) Bootstrap(username, password string) error {
	_, err := s.users.GetByUsername(username)
	if err == nil {
		return nil
	} else if err != mindmap.ErrNotFound {
		return err
	}

	_, err = s.Create(username, password)
	return err
}

func errInvalidCredentials() error {
	return errors.New("invalid credentials", errors.Unauthorized())
}
