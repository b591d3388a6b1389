package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/poregraph/poregraph/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates pipeline progress on the terminal. The status line is
// retargetable, so the message can follow the run from point generation
// through tessellation and filtering.
type spinner struct {
	w       io.Writer
	cancel  context.CancelFunc
	stopped chan struct{}

	mu      sync.Mutex
	message string
	width   int // widest line drawn so far, for clearing
}

// startSpinner begins animating on w until Stop is called or ctx ends.
func startSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		w:       w,
		cancel:  cancel,
		stopped: make(chan struct{}),
		message: message,
	}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.stopped)
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	s.draw(spinnerFrames[0])
	for i := 1; ; i++ {
		select {
		case <-ctx.Done():
			s.clear()
			return
		case <-ticker.C:
			s.draw(spinnerFrames[i%len(spinnerFrames)])
		}
	}
}

// SetMessage swaps the status line and redraws immediately, e.g. when the
// pipeline moves from tessellation to filtering.
func (s *spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
	s.draw(spinnerFrames[0])
}

// Stop halts the animation and clears the line.
func (s *spinner) Stop() {
	s.cancel()
	<-s.stopped
}

func (s *spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
	if n := len(s.message) + 4; n > s.width {
		s.width = n
	}
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
}

// stageHooks retargets a spinner as generation stages start, so long runs
// show which stage they are in rather than a generic message.
type stageHooks struct {
	observability.NoopGenerationHooks
	spin *spinner
}

func (h stageHooks) OnTessellateStart(ctx context.Context, pointCount int) {
	h.spin.SetMessage(fmt.Sprintf("Tessellating %d points...", pointCount))
}

func (h stageHooks) OnFilterStart(ctx context.Context, candidateCount int) {
	h.spin.SetMessage(fmt.Sprintf("Filtering %d candidate edges...", candidateCount))
}
