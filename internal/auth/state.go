package auth

import "encoding/json"

// Status is the session state machine position.
type Status int

const (
	SignedOut Status = iota
	Authenticating
	SignedIn
)

var statusNames = map[Status]string{
	SignedOut:      "signed_out",
	Authenticating: "authenticating",
	SignedIn:       "signed_in",
}

var statusFromName = map[string]Status{
	"signed_out":     SignedOut,
	"authenticating": Authenticating,
	"signed_in":      SignedIn,
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "unknown"
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	if v, ok := statusFromName[name]; ok {
		*s = v
	}
	return nil
}

// State is an immutable snapshot of the session store. Error holds the
// human-readable message from the last failed login until it is cleared
// or the next attempt starts.
type State struct {
	Status      Status `json:"status"`
	UserID      string `json:"userId,omitempty"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	RememberMe  bool   `json:"rememberMe"`
	Error       string `json:"error,omitempty"`
}

// IsAuthenticated reports whether the session is signed in.
func (s State) IsAuthenticated() bool {
	return s.Status == SignedIn
}

// SessionRecord is the durable snapshot persisted across restarts, and
// only when RememberMe was true at login time.
type SessionRecord struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	UserID          string `json:"userId"`
	Username        string `json:"username"`
	DisplayName     string `json:"displayName"`
	RememberMe      bool   `json:"rememberMe"`
}
