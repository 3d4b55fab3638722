// Package async is a small asynchronous runtime: a coroutine-shaped Lazy
// task type, a thread-safe Future/Promise pair with continuation chaining,
// and a pluggable Executor that schedules work onto a multi-threaded pool.
//
// The package has three tightly coupled subsystems:
//
//   - the shared future state machine (futureState), an atomic handshake
//     between a result-producing side and a continuation-installing side;
//   - the lazy task machinery (Lazy, RescheduleLazy): cold closures, where
//     awaiting one Lazy from another is a plain nested call and a
//     RescheduleLazy dispatches its body through its executor;
//   - the collect combinators (CollectAll, CollectAny, CollectAllWindowed),
//     which fan out a batch of lazy tasks and resume the caller exactly once.
//
// Go has no native stackful coroutine, so "awaiting" a Lazy from inside
// another Lazy's body is an ordinary nested Go call (free symmetric
// transfer), and "Via(executor)" re-enters an executor by scheduling a
// closure rather than resuming a suspended frame. See SPEC_FULL.md for the
// full mapping.
package async
