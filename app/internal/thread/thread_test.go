// SPDX-License-Identifier: Unlicense OR MIT

package thread

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrentStable(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	assert.Equal(t, Current(), Current())
}

func TestCurrentDistinct(t *testing.T) {
	if !Supported {
		t.Skip("thread identity not supported")
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	other := make(chan ID)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		other <- Current()
	}()
	assert.NotEqual(t, Current(), <-other)
}
