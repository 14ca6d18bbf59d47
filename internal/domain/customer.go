package domain

import "strings"

type Customer struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Phone     *string
	Address   *string
}

func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
