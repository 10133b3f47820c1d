// Package logic is a client for the Saleae Logic software's Socket
// Scripting Interface.
//
// The Logic software, when the scripting socket is enabled, listens on a TCP
// port (10429 by default) and accepts plain text commands for configuring
// the device, running captures and exporting data. This package wraps that
// socket with a typed client:
//
//  cli, err := logic.Dial(logic.DefaultAddr)
//  if err != nil {
//      // ...
//  }
//  defer cli.Close()
//
//  ctx := context.Background()
//  if err := cli.Capture(ctx); err != nil {
//      // ...
//  }
//
// Commands the software rejects return a *CommandError. Arguments the
// software would never accept are rejected locally with an *ArgumentError
// before anything is sent.
package logic
