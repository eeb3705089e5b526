package identity

import "errors"

// Closed error set for the identity bridge. Callers branch on these with
// [errors.Is]; provider SDK error strings are never parsed or re-matched
// upstream of this package.
var (
	// ErrPopupBlocked is reported when the interactive loopback flow cannot
	// start (the callback port could not be bound). The caller should fall
	// back to the out-of-band redirect flow.
	ErrPopupBlocked = errors.New("interactive sign-in flow unavailable")

	// ErrFlowCanceled is reported when the user abandoned the sign-in flow
	// (closed the consent page, denied access, or the flow timed out).
	ErrFlowCanceled = errors.New("sign-in flow canceled")

	// ErrProviderNetwork is reported when the identity provider could not
	// be reached at all.
	ErrProviderNetwork = errors.New("identity provider unreachable")

	// ErrAssertionInvalid is reported when the provider responded but the
	// ID token failed verification (bad signature, audience, or expiry).
	ErrAssertionInvalid = errors.New("identity assertion invalid")
)
