// Package workflow executes an ordered list of provisioning and bootstrap
// steps loaded from a YAML steps file, stopping at the first failure.
package workflow
