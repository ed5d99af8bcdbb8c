package auth

import "strings"

// Credential is one entry in the in-memory credential set. This is a
// stand-in for a real authentication backend: plaintext, process-local,
// with no registration path.
type Credential struct {
	ID          string `yaml:"id"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	DisplayName string `yaml:"display_name"`
}

// DefaultCredentials is the built-in user set.
func DefaultCredentials() []Credential {
	return []Credential{
		{ID: "1", Username: "OrlovDV", Password: "12qwaszx", DisplayName: "Орлов Д.В."},
		{ID: "2", Username: "admin", Password: "admin", DisplayName: "Администратор"},
	}
}

// lookup matches username case-insensitively and the password exactly.
func lookup(creds []Credential, username, password string) (Credential, bool) {
	for _, c := range creds {
		if strings.EqualFold(c.Username, username) && c.Password == password {
			return c, true
		}
	}
	return Credential{}, false
}
