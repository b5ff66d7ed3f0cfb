// Package identity collapses raw contact rows into unique clients when no stable
// client identifier exists. Two rows belong to the same client when they share a
// normalized email or a normalized phone, transitively.
package identity

import (
	"sort"
	"strconv"

	"sessiondesk/internal/models"
)

// Resolver partitions contact records into client identities.
type Resolver struct {
	normalizer Normalizer
}

// NewResolver creates a resolver that normalizes phones against region.
func NewResolver(region string) *Resolver {
	return &Resolver{normalizer: NewNormalizer(region)}
}

// Resolve groups records into identities using the default phone region.
func Resolve(records []models.RawContactRecord) []models.ClientIdentity {
	return NewResolver(DefaultRegion).Resolve(records)
}

// contactKeys holds the normalized contact fields of one record.
type contactKeys struct {
	email string
	phone string
}

// resolution is the state folded over the input. Groups are merged union-find
// style; parent[g] == g marks a surviving group.
type resolution struct {
	emailGroup map[string]int
	phoneGroup map[string]int
	parent     []int
	members    [][]int
}

func (s *resolution) find(g int) int {
	for s.parent[g] != g {
		s.parent[g] = s.parent[s.parent[g]]
		g = s.parent[g]
	}
	return g
}

func (s *resolution) mint() int {
	g := len(s.parent)
	s.parent = append(s.parent, g)
	s.members = append(s.members, nil)
	return g
}

// union merges the later-created group into the earlier one and returns the survivor.
func (s *resolution) union(a, b int) int {
	a, b = s.find(a), s.find(b)
	if a == b {
		return a
	}
	if b < a {
		a, b = b, a
	}
	s.parent[b] = a
	s.members[a] = append(s.members[a], s.members[b]...)
	s.members[b] = nil
	return a
}

func (s *resolution) add(i int, k contactKeys) {
	byEmail, hasEmail := -1, false
	if k.email != "" {
		byEmail, hasEmail = s.emailGroup[k.email]
	}
	byPhone, hasPhone := -1, false
	if k.phone != "" {
		byPhone, hasPhone = s.phoneGroup[k.phone]
	}

	var g int
	switch {
	case hasEmail && hasPhone:
		g = s.union(byEmail, byPhone)
	case hasEmail:
		g = s.find(byEmail)
	case hasPhone:
		g = s.find(byPhone)
	default:
		g = s.mint()
	}

	// Register every present field so later records can bridge through this one.
	if k.email != "" {
		s.emailGroup[k.email] = g
	}
	if k.phone != "" {
		s.phoneGroup[k.phone] = g
	}
	s.members[g] = append(s.members[g], i)
}

// Resolve partitions records into identities. The partition does not depend on
// input order; identities are returned in order of their first member and
// members keep input order. Keys are only meaningful within one call.
func (r *Resolver) Resolve(records []models.RawContactRecord) []models.ClientIdentity {
	keys := make([]contactKeys, len(records))
	state := &resolution{
		emailGroup: make(map[string]int),
		phoneGroup: make(map[string]int),
	}
	for i, rec := range records {
		keys[i] = contactKeys{
			email: NormalizeEmail(deref(rec.Email)),
			phone: r.normalizer.Phone(deref(rec.Phone)),
		}
		state.add(i, keys[i])
	}

	identities := make([]models.ClientIdentity, 0, len(state.parent))
	for g := range state.parent {
		if state.find(g) != g {
			continue
		}
		idx := state.members[g]
		sort.Ints(idx)

		identity := models.ClientIdentity{
			Key:     "client-" + strconv.Itoa(len(identities)+1),
			Members: make([]models.RawContactRecord, 0, len(idx)),
		}
		for _, i := range idx {
			identity.Members = append(identity.Members, records[i])
			identity.TotalWeight += records[i].SourceWeight
			if identity.CanonicalEmail == nil && keys[i].email != "" {
				email := keys[i].email
				identity.CanonicalEmail = &email
			}
			if identity.CanonicalPhone == nil && keys[i].phone != "" {
				phone := keys[i].phone
				identity.CanonicalPhone = &phone
			}
		}
		identities = append(identities, identity)
	}
	return identities
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
