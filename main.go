package main

import "github.com/yumyai/genecanvas/cmd"

func main() {
	cmd.Execute()
}
