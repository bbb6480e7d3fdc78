package pipeline

// Observer receives one progress event per processed file: the 1-based
// position, the batch total, and a short human-readable message. Drivers
// that don't care pass nil.
type Observer func(current, total int, message string)

// notifier returns obs or a no-op, so call sites never nil-check.
func notifier(obs Observer) Observer {
	if obs == nil {
		return func(int, int, string) {}
	}
	return obs
}
