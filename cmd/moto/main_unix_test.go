//go:build linux || darwin

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestFormatRlimit(t *testing.T) {
	assert.Equal(t, "unlimited", formatRlimit(unix.RLIM_INFINITY))
	assert.Equal(t, "4096", formatRlimit(4096))
}
