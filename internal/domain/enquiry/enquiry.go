package enquiry

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Status string

const (
	StatusPending       Status = "pending"
	StatusContacted     Status = "contacted"
	StatusNotInterested Status = "not_interested"
	errInvalidStatusFmt        = "invalid enquiry status: %s"
)

func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusContacted, StatusNotInterested:
		return nil
	default:
		return fmt.Errorf(errInvalidStatusFmt, s)
	}
}

type Enquiry struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobile_number"`
	ProductSlug  *string   `json:"product_slug"`
	Message      string    `json:"message"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func (e Enquiry) ItemKey() string {
	return strconv.FormatInt(e.ID, 10)
}

func (e Enquiry) Matches(q string) bool {
	q = strings.ToLower(q)
	fields := []string{e.CustomerName, e.Email, e.MobileNumber, e.Message}
	if e.ProductSlug != nil {
		fields = append(fields, *e.ProductSlug)
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
