package records

import "strings"

// searchable is implemented by both person record types; the filter
// matches the same four fields on each.
type searchable interface {
	searchFields() []string
}

func (p Prisoner) searchFields() []string {
	return []string{p.Name, p.Charge, p.Prison, p.Residence}
}

func (p ReleasedPrisoner) searchFields() []string {
	return []string{p.Name, p.Charge, p.Prison, p.Residence}
}

// matches reports whether any of the searchable fields contains term,
// case-insensitively. An empty term matches everything.
func matches(s searchable, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, f := range s.searchFields() {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// FilterPrisoners returns the subset of list whose name, charge, prison or
// residence contains term. The term is matched as typed, surrounding
// whitespace included. Pure: the input slice is never modified and the
// same (list, term) pair always yields the same result.
func FilterPrisoners(list []Prisoner, term string) []Prisoner {
	out := make([]Prisoner, 0, len(list))
	for _, p := range list {
		if matches(p, term) {
			out = append(out, p)
		}
	}
	return out
}

// FilterReleased is FilterPrisoners for the released collection.
func FilterReleased(list []ReleasedPrisoner, term string) []ReleasedPrisoner {
	out := make([]ReleasedPrisoner, 0, len(list))
	for _, p := range list {
		if matches(p, term) {
			out = append(out, p)
		}
	}
	return out
}
