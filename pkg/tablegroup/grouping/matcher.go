package grouping

import "github.com/ukaji3/tablegroup-go/pkg/tablegroup/models"

// Matcher holds the groups seen so far, in creation order.
type Matcher struct {
	groups []*models.Group
}

// Match returns the first group whose header width equals the width of
// header, or nil.
func (m *Matcher) Match(header models.Header) *models.Group {
	for _, g := range m.groups {
		if g.Header.Width() == header.Width() {
			return g
		}
	}
	return nil
}

// Register appends g to the group list.
func (m *Matcher) Register(g *models.Group) {
	m.groups = append(m.groups, g)
}

// Groups returns the groups in creation order.
func (m *Matcher) Groups() []*models.Group {
	return m.groups
}
