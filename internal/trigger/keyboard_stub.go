//go:build !windows

package trigger

import "errors"

func newKeySource() (keySource, error) {
	return nil, errors.New("trigger: keyboard listener unavailable on this platform")
}
