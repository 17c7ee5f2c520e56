// Runs external build tools on the host.
//
// Every stage that shells out (gclient, gn, autoninja, codesign, hdiutil,
// curl, tar) goes through Run, which checks the tool exists before starting
// it and translates the three ways an invocation can go wrong into distinct
// error classes: ErrToolNotFound, ErrToolFailed, and ErrToolTimeout. A
// non-zero exit carries the exit code and the first line of captured stderr
// so stage faults stay readable.
//
// Long-running tools can opt into streaming, which mirrors output to the
// orchestrator's own streams while still capturing it for error reporting.
package toolchain
