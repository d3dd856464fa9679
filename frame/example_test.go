package frame_test

import (
	"fmt"

	"github.com/plus3/vconsole/frame"
)

type counter struct {
	n int
}

func (c *counter) Execute(f *frame.UpdateFrame) {
	c.n++
	f.Commands.Defer(func() {
		fmt.Printf("tick %d: counted %d\n", f.Tick, c.n)
	})
}

// ExampleScheduler runs a system for three frames. Deferred functions run
// after every system of the frame has executed.
func ExampleScheduler() {
	scheduler := frame.NewScheduler()
	scheduler.Register(&counter{})
	scheduler.Register(frame.SystemFunc(func(f *frame.UpdateFrame) {
		fmt.Printf("tick %d: systems done\n", f.Tick)
	}))

	for i := 0; i < 3; i++ {
		scheduler.Once(1.0 / 60.0)
	}

	stats := scheduler.GetStats()
	fmt.Println(stats.Ticks, stats.Systems[0].Name, stats.Systems[0].ExecutionCount)

	// Output:
	// tick 0: systems done
	// tick 0: counted 1
	// tick 1: systems done
	// tick 1: counted 2
	// tick 2: systems done
	// tick 2: counted 3
	// 3 counter 3
}
