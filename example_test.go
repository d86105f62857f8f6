package sway_test

import (
	"fmt"

	sway "github.com/driftkit/sway"
)

func ExampleNew() {
	g := sway.New[string](
		sway.WithFrom[string](sway.Static[string](sway.Target{"opacity": 0.0})),
		sway.WithEnter[string](sway.Static[string](sway.Target{"opacity": 1.0})),
		sway.WithLeave[string](sway.Static[string](sway.Target{"opacity": 0.0})),
		sway.WithManualStart[string](),
	)
	defer g.Close()

	if err := g.Update([]string{"alpha", "beta"}); err != nil {
		fmt.Println("update:", err)
		return
	}

	for _, v := range g.Views() {
		fmt.Printf("%s %s opacity=%.1f\n", v.Item, v.Phase, v.Values["opacity"])
	}
	// Output:
	// alpha enter opacity=0.0
	// beta enter opacity=0.0
}

func ExampleRender() {
	g := sway.New[int](
		sway.WithFrom[int](sway.Static[int](sway.Target{"y": 24.0})),
		sway.WithEnter[int](func(item, index int) sway.Target {
			return sway.Target{"y": float64(item) * 8}
		}),
		sway.WithManualStart[int](),
	)
	defer g.Close()

	if err := g.Update([]int{1, 2, 3}); err != nil {
		fmt.Println("update:", err)
		return
	}

	rows := sway.Render(g, func(r sway.Rendered[int]) string {
		return fmt.Sprintf("row %d at y=%.0f", r.Item, r.Values["y"])
	})
	for _, row := range rows {
		fmt.Println(row)
	}
	// Output:
	// row 1 at y=24
	// row 2 at y=24
	// row 3 at y=24
}
