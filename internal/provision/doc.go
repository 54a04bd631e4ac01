// Package provision implements the signing-setup workflow: it generates or
// selects a GPG key pair, exports and validates the armored public key,
// registers it with the hosting account, and enables commit signing in the
// global git configuration.
package provision
