package flow

import "strings"

// AccountPlaceholder is replaced by the account identifier in the keys command.
const AccountPlaceholder = "{account}"

// Commands are the command line templates for the demonstrated tool.
type Commands struct {
	Version string
	Install string
	Login   string
	Keys    string
}

// DefaultCommands targets near-cli installed through npm.
func DefaultCommands() Commands {
	return Commands{
		Version: "near --version",
		Install: "npm install -g near-cli",
		Login:   "near login",
		Keys:    "near keys " + AccountPlaceholder,
	}
}

// KeysFor renders the keys command for accountID.
// The Keys template must contain AccountPlaceholder.
func (c Commands) KeysFor(accountID string) string {
	return strings.ReplaceAll(c.Keys, AccountPlaceholder, accountID)
}

// Network describes the network the login and keys flows require.
type Network struct {
	// Variable is the environment variable the tool reads, e.g. NEAR_ENV.
	Variable string
	// Required is the value the flows pin it to, e.g. testnet.
	Required string
}

// DefaultNetwork is NEAR's test network.
func DefaultNetwork() Network {
	return Network{Variable: "NEAR_ENV", Required: "testnet"}
}

// AccountSuffix is the suffix every account on the network carries, e.g. ".testnet".
func (n Network) AccountSuffix() string {
	return "." + n.Required
}
