// Package randdata generates throwaway usernames and email addresses for
// the walkthrough inserts.
package randdata

import (
	"math/rand"
	"strings"
)

const (
	usernameLength = 10
	letters        = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

var domains = []string{"example.com", "test.com", "mail.com", "demo.org"}

// Username returns a random ASCII-letter username.
func Username() string {
	var b strings.Builder
	b.Grow(usernameLength)
	for i := 0; i < usernameLength; i++ {
		b.WriteByte(letters[rand.Intn(len(letters))])
	}
	return b.String()
}

// Email returns a random lowercase address at one of a fixed set of
// example domains.
func Email() string {
	return strings.ToLower(Username()) + "@" + domains[rand.Intn(len(domains))]
}
