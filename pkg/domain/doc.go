/*
Package domain contains the core types shared by the reddisetgo orchestrator.

It defines the values that cross component boundaries: the result of one external
command, the classifications derived from it, the menu selections, and the
session snapshot. The package is kept free of I/O so flows and adapters can be
tested by constructing these values directly.

# Key Entities

  - CommandResult: Captured outcome of a single external process invocation.
  - ToolStatus / InstallOutcome: Enumerated classifications of a CommandResult.
  - DemoSelection: The chain and demo a user picked from the menus.
  - SessionSnapshot: A point-in-time copy of the session (network + account).
*/
package domain
