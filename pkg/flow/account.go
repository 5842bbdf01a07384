package flow

import (
	"regexp"
	"sync"
)

const accountChars = `[A-Za-z0-9_-]+`

type accountMatcher struct {
	find  *regexp.Regexp
	exact *regexp.Regexp
}

var accountMatchers sync.Map // network -> *accountMatcher

func matcherFor(network string) *accountMatcher {
	if m, ok := accountMatchers.Load(network); ok {
		return m.(*accountMatcher)
	}
	suffix := regexp.QuoteMeta("." + network)
	m, _ := accountMatchers.LoadOrStore(network, &accountMatcher{
		find:  regexp.MustCompile(accountChars + suffix),
		exact: regexp.MustCompile(`^` + accountChars + suffix + `$`),
	})
	return m.(*accountMatcher)
}

// AccountPattern matches an account name on the given network, e.g. "alice_01.testnet".
// Patterns are compiled once per network.
func AccountPattern(network string) *regexp.Regexp {
	return matcherFor(network).find
}

// ParseAccountID returns the first account name on network found in output.
// A candidate that runs on into a host name, like the wallet host in
// "https://wallet.testnet.near.org", is skipped.
func ParseAccountID(output, network string) (string, bool) {
	for _, loc := range AccountPattern(network).FindAllStringIndex(output, -1) {
		if continuesName(output[loc[1]:]) {
			continue
		}
		return output[loc[0]:loc[1]], true
	}
	return "", false
}

// continuesName reports whether rest extends the match into a longer name:
// a word character right away, or a dot followed by a name character.
func continuesName(rest string) bool {
	if rest == "" {
		return false
	}
	if isWordByte(rest[0]) {
		return true
	}
	return rest[0] == '.' && len(rest) > 1 && (isWordByte(rest[1]) || rest[1] == '-')
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// ValidAccountID reports whether id is exactly one account name on network.
func ValidAccountID(id, network string) bool {
	return matcherFor(network).exact.MatchString(id)
}
