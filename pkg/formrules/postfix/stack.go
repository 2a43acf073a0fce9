package postfix

import "github.com/edwingeng/deque"

// operandStack is the LIFO operand store; push and pop work on the back.
type operandStack struct {
	dq deque.Deque
}

func newOperandStack() *operandStack {
	return &operandStack{dq: deque.NewDeque()}
}

func (s *operandStack) push(v any) {
	s.dq.PushBack(v)
}

func (s *operandStack) pop() any {
	return s.dq.PopBack()
}

func (s *operandStack) len() int {
	return s.dq.Len()
}

// drain empties the stack and returns its operands bottom to top.
func (s *operandStack) drain() []any {
	out := make([]any, 0, s.dq.Len())
	for !s.dq.Empty() {
		out = append(out, s.dq.PopFront())
	}
	return out
}
