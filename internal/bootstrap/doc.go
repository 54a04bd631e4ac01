// Package bootstrap implements the first-push workflow: it initializes a
// local repository, commits its contents, creates the remote counterpart, and
// pushes with upstream tracking, applying documented remedies when the push
// is rejected.
package bootstrap
