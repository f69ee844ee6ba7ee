package srtp

import "github.com/pkg/errors"

// errorsWrap attaches cause's message to one of this package's sentinel
// errors while keeping errors.Is(result, sentinel) true, matching the
// teacher's errors.Wrap/errors.Errorf idiom (cptpcrd-srtp/srtp.go,
// Aziiiz-ssh-p2p's vendored context.go).
func errorsWrap(sentinel, cause error) error {
	return errors.Wrap(sentinel, cause.Error())
}
