package main

import (
	"fmt"
	"os"

	"github.com/ttttttwt/final-test/cmd/cli/root"

	_ "github.com/ttttttwt/final-test/cmd/cli/posts"
	_ "github.com/ttttttwt/final-test/cmd/cli/sessions"
	_ "github.com/ttttttwt/final-test/cmd/cli/users"
)

func main() {
	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
