// Command catalog prints the bundled message catalog and emits sample messages through the
// configured transport.
//
//	catalog list [-namespace ns]
//	catalog describe -name InitiateCheckOut -namespace sleep-on-time
//	catalog emit -sample sleep-on-time/InitiateCheckOut [-topic t]
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}
