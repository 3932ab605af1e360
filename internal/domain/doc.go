// Package domain contains shared domain types used across entity sub-packages.
// The Period value object and its helpers live in domain/period. This root
// package holds the sentinel errors and typed errors shared by every layer.
package domain
