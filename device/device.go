package device

// Device is a virtual input device sink. Implementations serialize Emit
// internally, so a batch handed to one device is applied atomically with
// respect to other batches for the same device.
type Device interface {
	// Emit applies a batch of events to the device. Batches not ending in
	// a sync event are flushed with one by the implementation.
	Emit(events []Event) error
	Close() error
}
