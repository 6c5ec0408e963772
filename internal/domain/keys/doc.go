// Package keys holds the metadata entity of generated keys and the contracts of the services,
// repositories and connectors managing them.
package keys
