// Package ebarimt is a client for the PosAPI, the local daemon that registers fiscal receipts
// with the Mongolian Ebarimt tax system.
//
// # Overview
//
// A point-of-sale process talks to a PosAPI instance running next to it. The PosAPI keeps a
// local ledger of registered bills and periodically forwards it to the central tax server.
// This package wraps the daemon's HTTP endpoints and adds the recovery protocol the daemon
// expects from its callers: stale local data is repaired with a single resynchronization
// before the register is declared ready, and bills accepted with a lottery warning trigger a
// resynchronization in the background.
//
// # Key Features
//
//   - Initialization with automatic recovery from the "[100]" stale-data state
//   - Bill registration with best-effort background resync on lottery warnings
//   - Bill reversal, manual resync, register information and registration number lookup
//   - Merchant lookup against the public registry
//   - Exactly one network call per operation, guarded by a circuit breaker
//   - Service-reported failures as data, transport failures as errors
//
// # Basic Usage
//
// Creating a client and initializing the register:
//
//	client, err := ebarimt.New("http://localhost:7080",
//		ebarimt.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close(context.Background())
//
//	outcome := client.Initialize(ctx)
//	if !outcome.Ready() {
//		log.Fatal(outcome.Failure())
//	}
//
// Registering a bill:
//
//	result, err := client.Put(ctx, ebarimt.Bill{
//		Amount:   "1000.00",
//		VAT:      "90.91",
//		BillType: ebarimt.BillTypeCitizen,
//		Stocks:   stocks,
//	})
//	if err != nil {
//		// The PosAPI could not be reached or replied with garbage.
//		return err
//	}
//
//	if !result.Success {
//		log.Printf("bill rejected: [%s] %s", result.ErrorCode, result.Message)
//	}
//
// # Error Handling
//
// Every method that talks to the PosAPI returns an error only when the exchange itself
// failed: a network error, a timeout, an unexpected HTTP status, an undecodable reply or an
// open circuit breaker. Such errors match ErrTransport:
//
//	if errors.Is(err, ebarimt.ErrTransport) {
//		// retry later
//	}
//
// A reply the PosAPI sent with success=false is returned as a value with Success=false and
// its ErrorCode and Message set. ErrorCode keeps the textual form of the code whether the
// endpoint sent it as a JSON string or a number.
//
// # Background Resync
//
// Put returns as soon as the bill is registered. When the receipt carries a lottery warning
// a resync runs on its own goroutine, detached from the caller's context and bounded by the
// resync timeout. Its outcome is logged and never changes the returned receipt. Close waits
// for outstanding resyncs.
package ebarimt
