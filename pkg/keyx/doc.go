// Package keyx owns the RSA key pair used to protect passwords in transit.
//
// A Manager resolves key material from an ordered list of tiers:
//
//  1. process memory (the pair adopted or generated by this process)
//  2. environment-supplied PEM (RSA_PRIVATE_KEY / RSA_PUBLIC_KEY)
//  3. PEM files in the key directory (private_key.pem / public_key.pem)
//
// Each tier is a Resolver and tiers are tried in that fixed order. In
// ephemeral mode a generated pair lives in memory only; in persistent mode it
// is also written to the key directory so it survives restarts.
package keyx
