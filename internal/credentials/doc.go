// Package credentials persists the agent identity (API key and agent ID)
// issued at registration. The record lives in a single JSON file, by default
// ~/.prior/config.json, and is replaced wholesale on every save. There is no
// locking: concurrent writers race and the last one wins.
package credentials
