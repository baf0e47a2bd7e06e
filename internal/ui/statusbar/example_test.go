package statusbar_test

import (
	"fmt"

	"github.com/riordanpawley/blindtimer/internal/domain"
	"github.com/riordanpawley/blindtimer/internal/types"
	"github.com/riordanpawley/blindtimer/internal/ui/statusbar"
	"github.com/riordanpawley/blindtimer/internal/ui/styles"
)

// Example demonstrates how to use the StatusBar
func Example() {
	sb := statusbar.New(types.ModeTimer, domain.StatusIdle, 80, styles.New())

	// Output includes ANSI codes, so just check something rendered
	fmt.Println(len(sb.Render()) > 0)
	// Output: true
}

// ExampleGetHints shows the hints for a paused clock
func ExampleGetHints() {
	fmt.Println(statusbar.GetHints(types.ModeConfirm, domain.StatusPaused))
	// Output: y: yes  n: no  Esc: cancel
}
