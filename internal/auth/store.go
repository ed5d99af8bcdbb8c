package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/LegendaryTyan/VKR/internal/progression"
)

// loginErrorMessage is the user-visible message for a failed login,
// matching the client's locale.
const loginErrorMessage = "Неверное имя пользователя или пароль"

var (
	// ErrInvalidCredentials is returned when no credential matches.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLoginInFlight is returned when a login is attempted while a
	// previous one has not resolved yet.
	ErrLoginInFlight = errors.New("login already in progress")
	// ErrNotAuthenticated is returned by callers gating progression
	// access on a signed-in session.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// ProgressionBinder is the slice of the progression store the session
// store needs: binding an identity on successful login.
type ProgressionBinder interface {
	Initialize(userID, displayName string) []progression.Event
}

// StateSink receives state snapshots after every transition, outside the
// store lock.
type StateSink func(State)

// Store owns the device-scoped session: a single record moving between
// signedOut, authenticating and signedIn. The credential check simulates
// a remote authentication call with configurable latency; a second login
// while one is pending is rejected rather than raced. On successful
// login the progression store is initialized for the matched identity.
type Store struct {
	mu      sync.Mutex
	state   State
	creds   []Credential
	repo    SessionRepository
	binder  ProgressionBinder
	latency time.Duration
	sink    StateSink
	log     zerolog.Logger
}

// NewStore builds a session store starting signed out.
func NewStore(creds []Credential, repo SessionRepository, binder ProgressionBinder, latency time.Duration, log zerolog.Logger) *Store {
	return &Store{
		state:   State{Status: SignedOut},
		creds:   creds,
		repo:    repo,
		binder:  binder,
		latency: latency,
		log:     log,
	}
}

// OnState registers the sink invoked with each state snapshot. Must be
// called before the store starts serving.
func (s *Store) OnState(sink StateSink) {
	s.sink = sink
}

// State returns an immutable snapshot of the session.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Restore re-establishes a persisted remember-me session. Anything else
// (no snapshot, or one saved without remember-me) leaves the store signed
// out, forcing a fresh login.
func (s *Store) Restore() {
	rec, err := s.repo.Load()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load session record")
		return
	}
	if rec == nil || !rec.RememberMe || !rec.IsAuthenticated {
		return
	}

	s.mu.Lock()
	s.state = State{
		Status:      SignedIn,
		UserID:      rec.UserID,
		Username:    rec.Username,
		DisplayName: rec.DisplayName,
		RememberMe:  true,
	}
	st := s.state
	s.mu.Unlock()

	s.log.Info().Str("username", rec.Username).Msg("restored remembered session")
	s.binder.Initialize(rec.UserID, rec.DisplayName)
	s.dispatch(st)
}

// Login authenticates against the credential set: case-insensitive
// username, exact password. It blocks for the simulated latency; callers
// should render a loading state from the authenticating snapshot in the
// meantime. Returns the resulting state and ErrInvalidCredentials on no
// match, ErrLoginInFlight if another login is pending, or ctx.Err() if
// the context ends first.
func (s *Store) Login(ctx context.Context, username, password string, rememberMe bool) (State, error) {
	s.mu.Lock()
	if s.state.Status == Authenticating {
		st := s.state
		s.mu.Unlock()
		return st, ErrLoginInFlight
	}
	s.state = State{Status: Authenticating}
	st := s.state
	s.mu.Unlock()
	s.dispatch(st)

	select {
	case <-time.After(s.latency):
	case <-ctx.Done():
		s.mu.Lock()
		s.state = State{Status: SignedOut}
		st = s.state
		s.mu.Unlock()
		s.dispatch(st)
		return st, ctx.Err()
	}

	cred, ok := lookup(s.creds, username, password)

	s.mu.Lock()
	if !ok {
		s.state = State{Status: SignedOut, Error: loginErrorMessage}
		st = s.state
		s.mu.Unlock()

		s.persist(st)
		s.dispatch(st)
		return st, ErrInvalidCredentials
	}

	s.state = State{
		Status:      SignedIn,
		UserID:      cred.ID,
		Username:    cred.Username,
		DisplayName: cred.DisplayName,
		RememberMe:  rememberMe,
	}
	st = s.state
	s.mu.Unlock()

	s.persist(st)
	s.log.Info().Str("username", cred.Username).Bool("rememberMe", rememberMe).Msg("login succeeded")
	s.binder.Initialize(cred.ID, cred.DisplayName)
	s.dispatch(st)
	return st, nil
}

// Logout signs the session out and clears the identity plus any stored
// remember-me snapshot. The progression record is left alone so that a
// re-login by the same user resumes where it stopped.
func (s *Store) Logout() State {
	s.mu.Lock()
	s.state = State{Status: SignedOut}
	st := s.state
	s.mu.Unlock()

	if err := s.repo.Clear(); err != nil {
		s.log.Error().Err(err).Msg("failed to clear session record")
	}
	s.dispatch(st)
	return st
}

// ClearError drops the stored login error without changing authentication
// state.
func (s *Store) ClearError() State {
	s.mu.Lock()
	s.state.Error = ""
	st := s.state
	s.mu.Unlock()

	s.dispatch(st)
	return st
}

// persist applies the remember-me contract: a signed-in state with
// rememberMe set is saved; everything else clears the stored snapshot.
// Best-effort: failures are logged and the in-memory state stays
// authoritative.
func (s *Store) persist(st State) {
	if st.Status == SignedIn && st.RememberMe {
		rec := &SessionRecord{
			IsAuthenticated: true,
			UserID:          st.UserID,
			Username:        st.Username,
			DisplayName:     st.DisplayName,
			RememberMe:      true,
		}
		if err := s.repo.Save(rec); err != nil {
			s.log.Error().Err(err).Msg("failed to save session record")
		}
		return
	}
	if err := s.repo.Clear(); err != nil {
		s.log.Error().Err(err).Msg("failed to clear session record")
	}
}

func (s *Store) dispatch(st State) {
	if s.sink != nil {
		s.sink(st)
	}
}
