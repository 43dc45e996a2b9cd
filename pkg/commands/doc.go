/*
Package commands provides the builtin commands and the kind table used to
build commands from declarative manifests.

# Builtins

  - help: Describes a command and its options ("help --command install").
  - list: Lists commands as "id - description", and flows with --all.
  - flows: Lists flows as "name: [step, step]".
  - hello: Greets --name.
  - echo: Writes its arguments and adds them to the outputs pool, feeding later flow steps.
  - exec: Runs an allow-listed external program; every stdout line is written and added to the outputs pool.
*/
package commands
