/*
Package ports defines the driven ports (interfaces) for the crema translator.

These interfaces decouple the translation core from external implementations,
allowing the same engine to be served from the CLI, an HTTP service or an MCP
tool server, with results cached in memory or in Redis.

# Key Interfaces

  - Translator: translates raw source documents (implemented by crema.Translator).
  - ResultCache: stores finished translations keyed by CacheKey.
  - Locker: provides mutual exclusion over shared resources such as an output directory.
*/
package ports
