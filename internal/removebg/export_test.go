package removebg

// SetMaxResponseSize overrides the response cap until the returned func runs.
func SetMaxResponseSize(n int64) (restore func()) {
	prev := maxResponseSize
	maxResponseSize = n
	return func() { maxResponseSize = prev }
}
