package bootstrap

import (
	"errors"
	"strings"

	"github.com/gitprep/gitprep/internal/execshell"
)

const (
	publicKeyDenialFragmentConstant     = "permission denied (publickey)"
	pushRejectedFragmentConstant        = "rejected"
	fetchFirstFragmentConstant          = "fetch first"
	unrelatedHistoriesFragmentConstant  = "unrelated histories"
	remedySSHIdentityLabelConstant      = "ssh-identity"
	remedyUnrelatedHistoryLabelConstant = "merge-unrelated-histories"
)

// RemedyKind identifies an automated recovery for a rejected push.
type RemedyKind string

// Remedy kinds matching the documented failure modes.
const (
	RemedyNone               RemedyKind = RemedyKind("")
	RemedySSHIdentity        RemedyKind = RemedyKind(remedySSHIdentityLabelConstant)
	RemedyUnrelatedHistories RemedyKind = RemedyKind(remedyUnrelatedHistoryLabelConstant)
)

// ClassifyPushFailure maps a failed push to the remedy its stderr calls for.
func ClassifyPushFailure(pushError error) RemedyKind {
	if pushError == nil {
		return RemedyNone
	}

	var commandFailure execshell.CommandFailedError
	if !errors.As(pushError, &commandFailure) {
		return RemedyNone
	}

	normalizedStderr := strings.ToLower(commandFailure.Result.StandardError)

	if strings.Contains(normalizedStderr, publicKeyDenialFragmentConstant) {
		return RemedySSHIdentity
	}

	if strings.Contains(normalizedStderr, pushRejectedFragmentConstant) &&
		(strings.Contains(normalizedStderr, fetchFirstFragmentConstant) || strings.Contains(normalizedStderr, unrelatedHistoriesFragmentConstant)) {
		return RemedyUnrelatedHistories
	}

	return RemedyNone
}
