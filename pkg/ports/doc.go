/*
Package ports defines the driven ports (interfaces) for the unabs engine.

These interfaces decouple the engine and the session manager from concrete
storage backends and program sources, and let the outer adapters (HTTP, MCP)
talk to the engine without depending on its construction.

# Key Interfaces

  - SessionStore: Persists and loads sessions (memory, file, Redis).
  - DistributedLocker: Serializes access to one session across replicas.
  - ProgramLoader: Resolves library programs (Loam, memory).
  - Engine: Runs programs and advances sessions.
*/
package ports
