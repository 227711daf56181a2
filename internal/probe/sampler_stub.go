//go:build !windows

package probe

import "errors"

// NewSampler returns the platform sampler. Foreground-window polling is
// only implemented for Windows.
func NewSampler() (Sampler, error) {
	return nil, errors.New("foreground window sampling is only supported on windows")
}
