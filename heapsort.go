package phylonj

// mirroredHeapsort sorts values[0:length] ascending in place using a
// binary-heap selection sort, applying every swap driven by a values
// comparison to ids[0:length] in lockstep. This keeps the (distance,
// cluster-id) pairing intact: S[row] and I[row] are the same
// permutation of each other after the call.
func mirroredHeapsort(values []float64, ids []int, length int) {
	for i := length/2 - 1; i >= 0; i-- {
		siftDown(values, ids, i, length)
	}
	for end := length - 1; end > 0; end-- {
		values[0], values[end] = values[end], values[0]
		ids[0], ids[end] = ids[end], ids[0]
		siftDown(values, ids, 0, end)
	}
}

// siftDown restores the max-heap property for the subtree rooted at i,
// within values[0:length], mirroring swaps onto ids.
func siftDown(values []float64, ids []int, i, length int) {
	for {
		left := 2*i + 1
		right := 2*i + 2
		largest := i
		if left < length && values[left] > values[largest] {
			largest = left
		}
		if right < length && values[right] > values[largest] {
			largest = right
		}
		if largest == i {
			return
		}
		values[i], values[largest] = values[largest], values[i]
		ids[i], ids[largest] = ids[largest], ids[i]
		i = largest
	}
}
