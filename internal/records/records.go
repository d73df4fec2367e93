// Package records defines the document shapes held in the store: the two
// person collections and the role-grouped users, plus the search filter
// the list screens share. Every field except the store key is a free-text
// string; dates and durations are deliberately left unvalidated because
// the source data mixes Hijri, Gregorian and prose values.
package records

// Role is the authorization level attached to a user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleViewer
}

// Prisoner is a person presumed still incarcerated.
type Prisoner struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Charge      string `json:"charge"`
	Prison      string `json:"prison"`
	Family      string `json:"family"`
	Residence   string `json:"residence"`
	Years       string `json:"years"`
	From        string `json:"from"`
	To          string `json:"to"`
	Children    string `json:"children,omitempty"`
	Education   string `json:"education,omitempty"`
	Submissions string `json:"submissions"`
	Phone       string `json:"phone"`
	NationalID  string `json:"nationalId"`
	Signature   string `json:"signature"`
}

// ReleasedPrisoner is a person presumed released. Same shape as Prisoner
// with the sentence span replaced by a single release date.
type ReleasedPrisoner struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Charge      string `json:"charge"`
	Prison      string `json:"prison"`
	Family      string `json:"family"`
	Residence   string `json:"residence"`
	ReleaseDate string `json:"releaseDate"`
	Children    string `json:"children,omitempty"`
	Education   string `json:"education,omitempty"`
	Submissions string `json:"submissions"`
	Phone       string `json:"phone"`
	NationalID  string `json:"nationalId"`
	Signature   string `json:"signature"`
}

// User is a login identity. Users live in two parallel groups (admins,
// viewers) rather than one collection with a role column; moving a user
// between roles is therefore an insert in one group plus a delete in the
// other, with no atomicity between the two.
type User struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}
