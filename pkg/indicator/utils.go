package indicator

// pushWindow appends v and drops the oldest element once the window exceeds size
func pushWindow(window []float64, v float64, size int) []float64 {
	window = append(window, v)
	if len(window) > size {
		copy(window, window[1:])
		window = window[:len(window)-1]
	}
	return window
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
