// Implements the ReadyQueue, which holds references to processes that are
// waiting for the CPU. One queue instance belongs to exactly one pass.

package sim

import (
	"fmt"
	"strings"
)

// ReadyQueue is a FIFO queue of process references (not copies).
// Round-robin dispatches from it directly; FCFS rebuilds it as a derived view.
type ReadyQueue struct {
	queue []*Process
}

// Enqueue adds a process to the back of the queue.
func (rq *ReadyQueue) Enqueue(p *Process) {
	if p == nil {
		panic("Enqueue: process must not be nil")
	}
	rq.queue = append(rq.queue, p)
}

// Dequeue removes and returns the process at the front of the queue.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) Dequeue() *Process {
	if len(rq.queue) == 0 {
		return nil
	}
	p := rq.queue[0]
	rq.queue[0] = nil
	rq.queue = rq.queue[1:]
	return p
}

// Peek returns the process at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) Peek() *Process {
	if len(rq.queue) == 0 {
		return nil
	}
	return rq.queue[0]
}

// Len returns the number of processes in the queue.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

// Clear empties the queue.
func (rq *ReadyQueue) Clear() {
	rq.queue = rq.queue[:0]
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage; callers MUST NOT modify it.
func (rq *ReadyQueue) Items() []*Process {
	return rq.queue
}

// IDs returns the process numbers in queue order.
func (rq *ReadyQueue) IDs() []int64 {
	ids := make([]int64, len(rq.queue))
	for i, p := range rq.queue {
		ids[i] = p.ID()
	}
	return ids
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range rq.queue {
		sb.WriteString(fmt.Sprintf("P%d", p.ID()))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
