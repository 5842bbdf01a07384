package demo

import "github.com/aretw0/reddisetgo/pkg/domain"

// ChainPrompt is the question asked at the top menu.
const ChainPrompt = "Which blockchain do you want to demo? (default is `Near`)"

// DemoPrompt is the question asked once a chain is picked.
const DemoPrompt = "Which demo do you want to run?"

// Chains lists the top menu in display order.
var Chains = []domain.Chain{domain.ChainEthereum, domain.ChainSolana, domain.ChainNear, domain.ChainQuit}

// DefaultChain is preselected at the top menu.
const DefaultChain = domain.ChainNear

// Entry is one line of a chain's demo menu.
type Entry struct {
	Demo  domain.Demo
	Label string
	// Available is false for demos that only print a placeholder.
	Available bool
}

// Catalog maps chains to their demo menus. Chains without entries are placeholders.
var Catalog = map[domain.Chain][]Entry{
	domain.ChainNear: {
		{Demo: domain.DemoSetup, Label: "Check / install near-cli", Available: true},
		{Demo: domain.DemoLogin, Label: "Log in to testnet", Available: true},
		{Demo: domain.DemoKeys, Label: "List account keys", Available: true},
		{Demo: domain.DemoCreateAccount, Label: "Create a sub-account"},
		{Demo: domain.DemoBack, Label: "Back", Available: true},
	},
}

// placeholders are shown for chains and demos that are not implemented yet.
var placeholders = map[domain.Chain]string{
	domain.ChainEthereum: "Still a todo for Ethereum demos",
}

const defaultPlaceholder = "Work in progress"

// Placeholder returns the "not yet available" message for a chain.
func Placeholder(chain domain.Chain) string {
	if msg, ok := placeholders[chain]; ok {
		return msg
	}
	return defaultPlaceholder
}

func chainLabels() ([]string, int) {
	labels := make([]string, len(Chains))
	def := 0
	for i, c := range Chains {
		labels[i] = string(c)
		if c == DefaultChain {
			def = i
		}
	}
	return labels, def
}
