// Delivers orchestration events to optional side channels.
//
// The orchestrator reports run and stage outcomes through the Notifier
// interface. Delivery failures are returned as errors wrapping ErrDelivery
// and are logged and discarded at the call site; they never influence stage
// execution, the run outcome, or the process exit status.
package notify
