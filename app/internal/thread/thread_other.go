// SPDX-License-Identifier: Unlicense OR MIT

//go:build !linux && !windows

package thread

const supported = false

func current() ID {
	return 1
}
