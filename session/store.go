package session

// Audience is the token namespace a session belongs to. The backend issues
// separate credentials for patrons and administrators, and the two must never
// be mixed on the wire.
type Audience string

const (
	AudienceAdmin Audience = "admin"
	AudienceUser  Audience = "user"
)

// Audiences lists every audience in precedence order (admin first). The guard
// and the views both walk this slice, so the order is fixed here and nowhere
// else.
var Audiences = []Audience{AudienceAdmin, AudienceUser}

// Role labels as issued by the backend.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// AudienceForRole maps a role label to the audience that issues it.
func AudienceForRole(role string) (Audience, bool) {
	switch role {
	case RoleAdmin:
		return AudienceAdmin, true
	case RoleUser:
		return AudienceUser, true
	}
	return "", false
}

// Record holds everything written at login for one audience. Token and Role
// are always stored together; Name is cosmetic greeting text.
type Record struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

// Store is the persisted session surface. Set must be atomic from the
// caller's perspective: a token is never observable without its role.
// Clear removes every audience at once (logout).
type Store interface {
	Set(aud Audience, rec Record) error
	Get(aud Audience) (Record, bool, error)
	Clear() error
}

// First returns the first present session record, walking Audiences in
// precedence order.
func First(s Store) (Audience, Record, bool, error) {
	for _, aud := range Audiences {
		rec, ok, err := s.Get(aud)
		if err != nil {
			return "", Record{}, false, err
		}
		if ok && rec.Token != "" {
			return aud, rec, true, nil
		}
	}
	return "", Record{}, false, nil
}

// FirstToken returns the first present token across audiences, or "" when no
// audience is authenticated.
func FirstToken(s Store) (string, error) {
	_, rec, ok, err := First(s)
	if err != nil || !ok {
		return "", err
	}
	return rec.Token, nil
}
