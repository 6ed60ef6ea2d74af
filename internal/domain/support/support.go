package support

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Status string

const (
	StatusPending       Status = "pending"
	StatusResolved      Status = "resolved"
	errInvalidStatusFmt        = "invalid support status: %s"
)

func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusResolved:
		return nil
	default:
		return fmt.Errorf(errInvalidStatusFmt, s)
	}
}

// Ticket is a support request raised from the public site.
type Ticket struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"`
	Email     *string   `json:"email"`
	Query     string    `json:"query"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (t Ticket) ItemKey() string {
	return strconv.FormatInt(t.ID, 10)
}

func (t Ticket) Matches(q string) bool {
	q = strings.ToLower(q)
	fields := []string{t.Name, t.Mobile, t.Query}
	if t.Email != nil {
		fields = append(fields, *t.Email)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

type UpdateStatusInput struct {
	Status Status `json:"status"`
}
