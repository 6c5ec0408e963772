// Package persistence stores key metadata through GORM on SQLite or PostgreSQL.
package persistence
