/*
Package ports defines the driven ports (interfaces) for the Regula engine.

These interfaces decouple the conversion core from external implementations, allowing
adapters (HTTP, MCP, CLI) to reach the engine and the engine to use various
catalog sources and rate-limiting backends.

# Key Interfaces

  - Converter: the engine surface used by transport adapters.
  - Catalog: a read-only source of named regexes and automata (e.g., from Loam or Memory).
  - RateLimiter: admission control for shared deployments (e.g., Redis or Memory).
*/
package ports
