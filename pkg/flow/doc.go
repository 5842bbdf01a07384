/*
Package flow implements the tool pipeline behind the NEAR demos.

Each flow is a bounded sequence of external commands plus the rule that
classifies their output:

  - Probe: runs the version command and classifies the tool as present or absent.
  - Installer: runs the install command and tells benign warnings from fatal errors.
  - Login: pins the network environment, runs the login command and extracts the account.
  - Keys: lists the account's keys, logging in at most once when no account is known.

Classification and parsing are pure functions (ClassifyProbe, ClassifyInstall,
ParseAccountID) so they can be tested against literal captured outputs without
spawning processes. Flows reach the outside world only through the Runner and
Environment ports.
*/
package flow
