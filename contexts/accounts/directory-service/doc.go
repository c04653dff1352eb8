// Package directoryservice lists user accounts across every configured bank
// partition from one logical request.
//
// Layering:
// - application: the fan-out executor and result aggregation
// - ports: per-bank repository, bank catalog, visibility resolution
// - adapters: memory and postgres repositories, HTTP handler
// - transport: module-private DTOs for HTTP contracts
//
// Aggregation contract:
// - ordering is bank-major (registry order), then created_at descending
//   within each bank; no global sort is attempted
// - an unreachable bank is skipped and logged, never an aggregate failure
package directoryservice
