// Package bridge is the single path from the application to its backend.
//
// Every data operation is a named command invoked with JSON arguments; the
// backend answers with a JSON result or rejects the command with a
// descriptive error string. Invoker abstracts that contract so the sale,
// sales and invoice packages never see the transport.
package bridge
