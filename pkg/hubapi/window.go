package hubapi

// Window is a half-open interval [Start, End) in epoch milliseconds.
type Window struct {
	Start int64
	End   int64
}

// Windows tiles [start, now) into fixed-size chunks for high volume timeline
// streams. "now" is captured once at construction, so the loop terminates
// even under continuous new data; the final window is clamped to now.
type Windows struct {
	next    int64
	now     int64
	chunk   int64
	current Window
}

func NewWindows(startMS, nowMS, chunkMS int64) *Windows {
	return &Windows{next: startMS, now: nowMS, chunk: chunkMS}
}

func (w *Windows) Next() bool {
	if w.next >= w.now {
		return false
	}
	end := w.next + w.chunk
	if end > w.now {
		end = w.now
	}
	w.current = Window{Start: w.next, End: end}
	w.next = end
	return true
}

func (w *Windows) Current() Window {
	return w.current
}
