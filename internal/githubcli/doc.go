// Package githubcli wraps the GitHub CLI for account and repository operations.
//
// It exposes Client, which registers GPG keys, creates remote repositories,
// resolves repository metadata, and verifies authentication, all through gh
// invocations executed by execshell.
package githubcli
