// Package inventory arranges machines for display. It only reads resources.
package inventory

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/benchbook/internal/models"
)

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*://`)

// Section is one group of machines sharing a name prefix.
type Section struct {
	Name      string
	Resources []models.Resource
}

// Group buckets resources by Section(), sorts sections by name and machines by
// name inside each section, and drops repeated names.
func Group(resources []models.Resource) []Section {
	bySection := make(map[string][]models.Resource)
	seen := make(map[string]bool)
	for _, r := range resources {
		name := strings.TrimSpace(r.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		sec := r.Section()
		bySection[sec] = append(bySection[sec], r)
	}

	sections := make([]Section, 0, len(bySection))
	for name, rs := range bySection {
		sort.Slice(rs, func(i, j int) bool { return rs[i].Name < rs[j].Name })
		sections = append(sections, Section{Name: name, Resources: rs})
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].Name < sections[j].Name })
	return sections
}

// KVMURL turns an ipkvm address into a link, adding http:// when no scheme is given.
func KVMURL(v string) string {
	s := strings.TrimSpace(v)
	if s == "" || schemePattern.MatchString(s) {
		return s
	}
	return "http://" + s
}

// Field is one labelled line of a machine's detail view.
type Field struct {
	Key   string
	Value string
	// Link marks values that open in a browser.
	Link bool
	// Alert marks the current-holder lines.
	Alert bool
}

// Details lists a machine's fields in display order, followed by the current
// holder when there is one.
func Details(r models.Resource, holder *models.Identity) []Field {
	fields := []Field{
		{Key: "sn", Value: r.Name},
		{Key: "owner", Value: r.Owner},
		{Key: "host_name", Value: r.HostName},
		{Key: "host_account_password", Value: r.HostAccountPassword},
		{Key: "remote_account", Value: r.RemoteAccount},
		{Key: "remote_password", Value: r.RemotePassword},
		{Key: "note", Value: r.Note},
		{Key: "state", Value: r.State},
		{Key: "ipkvm", Value: KVMURL(r.IPKVM), Link: r.IPKVM != ""},
	}
	if !r.UpdatedAt.IsZero() {
		fields = append(fields, Field{Key: "updated_at", Value: r.UpdatedAt.Format(time.DateTime)})
	}
	if holder != nil {
		fields = append(fields,
			Field{Key: "current_user", Value: holder.DisplayName, Alert: true},
			Field{Key: "requester_id", Value: holder.NumericID, Alert: true},
		)
	}
	return fields
}
