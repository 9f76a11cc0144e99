package regview_test

import (
	"context"
	"fmt"
	"os"

	"github.com/KromDaniel/regview/pkg/regview"
)

func ExampleVisualizer_Run() {
	v := regview.New(regview.Options{})
	report := v.Run(context.Background(), `r"b+"`, "abbcb")

	fmt.Println(report.Pattern)
	for _, s := range regview.Matches(report.Segments) {
		fmt.Println(s.Start, s.End, s.Text)
	}
	_ = report.WriteDiagram("outline", os.Stdout)
	// Output:
	// b+
	// 1 3 bb
	// 4 5 b
	// oneOrMore
	//   terminal "b"
}

func ExampleVisualizer_Substitute() {
	v := regview.New(regview.Options{})
	out, err := v.Substitute(context.Background(), `(?P<y>\d{4})-(?P<m>\d\d)`, "due 2024-06", "${m}/${y}")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out)
	// Output: due 06/2024
}
