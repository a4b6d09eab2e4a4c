package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

var (
	crashHookMu sync.Mutex
	crashHook   func()
)

// SetCrashHook registers a function run before the crash report is printed
// The terminal view uses it to restore the tty
func SetCrashHook(fn func()) {
	crashHookMu.Lock()
	defer crashHookMu.Unlock()
	crashHook = fn
}

// HandleCrash is the unified panic handler that restores the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashHookMu.Lock()
	hook := crashHook
	crashHookMu.Unlock()
	if hook != nil {
		hook()
	}

	os.Stdout.Sync()
	os.Stderr.Sync()

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())

	os.Stderr.Sync()
	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
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
