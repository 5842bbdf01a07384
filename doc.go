/*
Package reddisetgo walks a user through demonstrating a blockchain command line tool,
near-cli on the NEAR test network.

The program detects the tool, installs it on demand, logs a test account in and lists that
account's keys, all from an interactive menu. The orchestration lives in small packages that
can be embedded without the terminal UI:

  - pkg/adapters/process runs command lines and reports failures as values.
  - pkg/flow holds the probe, installer, login and keys flows and their pure classifiers.
  - pkg/session keeps the session state and persists snapshots of it.
  - pkg/demo is the menu state machine, talking to the user through a Presenter.

# Usage

	state := session.New(os.Getenv("NEAR_ENV"))
	runner := process.NewRunner(process.WithStdin(os.Stdin))
	login := flow.NewLogin(runner, flow.OSEnvironment{}, state, flow.DefaultNetwork(), "near login")

	id, err := login.Login(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("logged in as", id)

The reddisetgo command in cmd/reddisetgo wires everything together with configuration,
session storage and an optional status server.
*/
package reddisetgo
