// Package sshauth wraps ssh-add for loading identities into the running agent.
package sshauth
