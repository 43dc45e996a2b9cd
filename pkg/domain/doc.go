/*
Package domain contains the core types of the clic command interpreter.

It defines what a command looks like to the engine, how commands are grouped
into flows, and the per-invocation execution context that commands write to.
This package is kept pure and free of I/O, following Hexagonal Architecture
principles.

# Key Entities

  - CommandDescriptor: An id, a description and a factory producing fresh Command instances.
  - FlowDescriptor: A named, ordered list of command ids executed as one unit.
  - ExecutionContext: Output sink, ambient scope and the outputs pool shared by the steps of a dispatch.
  - DispatchReport: What happened to each step of a processed line.
*/
package domain
