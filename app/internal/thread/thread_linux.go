// SPDX-License-Identifier: Unlicense OR MIT

package thread

import "golang.org/x/sys/unix"

const supported = true

func current() ID {
	return ID(unix.Gettid())
}
