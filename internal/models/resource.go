package models

import (
	"strings"
	"time"

	"github.com/julianstephens/benchbook/internal/constants"
)

// Resource is a bookable remote machine. Name is the serial used as the external key.
type Resource struct {
	ID                  int64
	Name                string
	Owner               string
	HostName            string
	HostAccountPassword string
	RemoteAccount       string
	RemotePassword      string
	Note                string
	State               string
	IPKVM               string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Section returns the group tag of the resource: the part of the name before
// the first separator, or "OTHER" when the name has none.
func (r Resource) Section() string {
	name := strings.TrimSpace(r.Name)
	if before, _, found := strings.Cut(name, constants.SectionSep); found {
		return before
	}
	return constants.SectionOther
}

// ConnectionParams returns what a remote session needs to reach the machine.
func (r Resource) ConnectionParams() ConnectionParams {
	return ConnectionParams{
		Resource: strings.TrimSpace(r.Name),
		Host:     strings.TrimSpace(r.HostName),
		Account:  strings.TrimSpace(r.RemoteAccount),
		Password: strings.TrimSpace(r.RemotePassword),
	}
}

// ConnectionParams are read from the inventory when a session is launched.
type ConnectionParams struct {
	Resource string
	Host     string
	Account  string
	Password string
}
