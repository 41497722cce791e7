package alerts_test

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/alertkit/pkg/alerts"
)

func ExampleManager() {
	m := alerts.NewManager()

	m.Success("Profile saved", "")
	m.New(alerts.TypeWarning, "Your trial ends tomorrow").
		WithTitle("Heads up").
		AsToast().
		Flash(5 * time.Second).
		Commit()

	for _, a := range m.Flush() {
		fmt.Println(a.Type, a.Kind, a.Message)
	}
	fmt.Println(m.Count())
	// Output:
	// success alert Profile saved
	// warning toast Your trial ends tomorrow
	// 0
}

func ExampleOptionsFromMap() {
	opts, ignored := alerts.OptionsFromMap(map[string]any{
		"theme":   "minimal",
		"sparkle": true,
	})

	fmt.Println(opts.Theme, ignored)
	// Output: minimal [sparkle]
}
