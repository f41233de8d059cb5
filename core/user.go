package core

// ScopeAuthenticated is the scope granted to every authenticated request.
const ScopeAuthenticated = "authenticated"

// User is the identity produced from a validated token. It is immutable:
// accessors return copies.
type User struct {
	username string
	payload  Claims
	token    string
}

// NewUser builds a User from a username, the decoded payload and the encoded token.
func NewUser(username string, payload Claims, token string) *User {
	return &User{
		username: username,
		payload:  payload.Clone(),
		token:    token,
	}
}

// Username returns the username claim.
func (u *User) Username() string { return u.username }

// DisplayName returns the name to show for the user, which is the username.
func (u *User) DisplayName() string { return u.username }

// IsAuthenticated always returns true; unauthenticated requests carry no User.
func (u *User) IsAuthenticated() bool { return true }

// Payload returns a copy of the full decoded claim set.
func (u *User) Payload() Claims { return u.payload.Clone() }

// Token returns the encoded token exactly as received.
func (u *User) Token() string { return u.token }

// Result is the outcome of authenticating a request: either Authenticated,
// carrying scopes and a User, or Unauthenticated (the zero value).
type Result struct {
	Scopes []string
	User   *User
}

// Unauthenticated returns the result for a request that sent no credentials.
func Unauthenticated() Result {
	return Result{}
}

// Authenticated returns the result for a validated user.
func Authenticated(user *User) Result {
	return Result{
		Scopes: []string{ScopeAuthenticated},
		User:   user,
	}
}

// IsAuthenticated reports whether the result carries a user.
func (r Result) IsAuthenticated() bool {
	return r.User != nil
}

// HasScopes reports whether every scope in scopes was granted.
func (r Result) HasScopes(scopes ...string) bool {
	for _, want := range scopes {
		found := false
		for _, have := range r.Scopes {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
