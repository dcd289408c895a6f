package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

var (
	hookMu    sync.Mutex
	resetHook func()
)

// SetResetHook registers the function that restores the output device on crash
// The terminal host registers tcell's Fini so a panic never leaves raw mode behind
func SetResetHook(fn func()) {
	hookMu.Lock()
	resetHook = fn
	hookMu.Unlock()
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	hookMu.Lock()
	reset := resetHook
	hookMu.Unlock()
	if reset != nil {
		reset()
	}

	os.Stdout.Sync()
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRYSTAL-SHARD CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the 'go' keyword so a crash restores the terminal
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
