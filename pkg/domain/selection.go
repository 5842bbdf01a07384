package domain

// Chain is a top level menu entry.
type Chain string

const (
	ChainEthereum Chain = "Ethereum"
	ChainSolana   Chain = "Solana"
	ChainNear     Chain = "Near"
	ChainQuit     Chain = "Quit"
)

// Demo is a chain scoped menu entry.
type Demo string

const (
	DemoNone          Demo = ""
	DemoSetup         Demo = "setup"
	DemoLogin         Demo = "login"
	DemoKeys          Demo = "keys"
	DemoCreateAccount Demo = "create-account"
	DemoBack          Demo = "back"
)

// DemoSelection is what the user picked during one loop iteration.
type DemoSelection struct {
	Chain Chain `json:"chain"`
	Demo  Demo  `json:"demo,omitempty"`
}
