package report

import (
	"fmt"
	"strings"

	"github.com/go-ldap/ldap/v3"
	ldif "github.com/go-ldap/ldif"
)

// toLDAPEntry converts one line into an *ldap.Entry. The displayed date is
// the entry's cn, so a date format also shapes the DN.
func (l line) toLDAPEntry(suffixDN string) *ldap.Entry {
	attrs := map[string][]string{
		"objectClass":  {"organizationalRole", "simpleSecurityObject"},
		"cn":           {l.display},
		"userPassword": {l.password},
		"description":  {"Password of the day for " + l.date.String()},
	}
	dn := fmt.Sprintf("cn=%s,%s", ldap.EscapeDN(l.display), suffixDN)
	return ldap.NewEntry(dn, attrs)
}

func renderLDIF(suffixDN string, lines []line) (string, error) {
	if suffixDN == "" {
		suffixDN = DefaultSuffixDN
	}
	entries := make([]*ldap.Entry, 0, len(lines))
	for _, l := range lines {
		entries = append(entries, l.toLDAPEntry(suffixDN))
	}

	ldifData, err := ldif.ToLDIF(entries)
	if err != nil {
		return "", fmt.Errorf("failed to build LDIF struct: %w", err)
	}
	ldifText, err := ldif.Marshal(ldifData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal LDIF: %w", err)
	}
	return strings.TrimRight(ldifText, "\n"), nil
}
