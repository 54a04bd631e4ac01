// Package gpg wraps the gpg command line tool for key generation, secret key
// discovery, and armored public key export.
//
// The keyring remains the single source of truth; this package only parses
// the machine-readable colon listing format and validates exported armor
// before it leaves the machine.
package gpg
