/*
Package ports defines the driven ports (interfaces) of the clic engine.

These interfaces decouple the dispatcher from where commands come from and
from what happens after a line has been processed.

# Key Interfaces

  - RegistrySource: Produces the catalog of commands and flows (e.g. from a manifest, Loam or memory).
  - Watchable: Optional capability of a source that can signal catalog changes.
  - Listener: Notified with every processed line.
  - Journal: Append-only record of processed lines (e.g. Redis or memory).
*/
package ports
