// Package gitrepo contains helpers for interrogating and manipulating Git repositories.
//
// It exposes RepositoryManager for initializing repositories, staging and
// committing changes, managing remotes, and reading or writing global
// configuration, along with remote URL parsing utilities consumed by the
// bootstrap and provisioning services.
package gitrepo
