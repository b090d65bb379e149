// Package preflight verifies directories, model artifacts, and credentials
// before the daemon starts serving so degraded tiers are visible up front.
package preflight
