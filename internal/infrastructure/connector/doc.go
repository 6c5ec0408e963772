// Package connector stores key files outside the metadata database, either in a local directory or in an
// Azure Blob Storage container.
package connector
