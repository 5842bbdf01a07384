/*
Package demo is the interactive dispatcher of reddisetgo.

Machine walks the states SelectChain -> SelectDemo -> RunDemo and back to
SelectChain until the user picks Quit. Flow failures are reported through the
Presenter and never stop the loop; Quit ends it with domain.ErrUserQuit so the
caller can exit with a distinct status.

The Presenter is the only way the machine talks to the user, which keeps
banners, colors and prompt rendering out of the control flow.
*/
package demo
