package player

// speedMarks are the play speeds reachable with the speed up/down inputs.
var speedMarks = []float64{0.1, 0.2, 0.4, 0.6, 0.8, 1.0, 1.2, 1.5, 2.0, 2.5, 3.0,
	3.5, 4.0, 4.5, 5.0, 5.5, 6.0, 7.0, 8.0, 10.0, 15.0, 25.0, 40.0, 60.0, 99.0}

// lowerSpeedMark finds the nearest mark below the current speed, if any.
func lowerSpeedMark(current float64) (float64, bool) {
	prev, ok := 0.0, false
	for _, speed := range speedMarks {
		if speed < current-0.001 {
			prev, ok = speed, true
		} else {
			break
		}
	}
	return prev, ok
}

// upperSpeedMark finds the nearest mark above the current speed, if any.
func upperSpeedMark(current float64) (float64, bool) {
	for _, speed := range speedMarks {
		if speed > current+0.001 {
			return speed, true
		}
	}
	return 0, false
}
