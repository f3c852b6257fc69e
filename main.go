package main

import (
	"fmt"
	"os"

	"github.com/jetsetilly/testdmg/emulation"
	"github.com/jetsetilly/testdmg/gui"
	"github.com/jetsetilly/testdmg/ui"
)

func main() {
	// buffered channels. this means we don't have to worry about the gui
	// closing before the emulation and vice versa
	endGui := make(chan bool, 1)
	endEmulation := make(chan bool, 1)

	// similarly, the result channels are buffered because we don't know the
	// order in which the gui and emulation will end
	resultGui := make(chan error, 1)
	resultEmulation := make(chan error, 1)

	u := ui.NewUI()

	go func() {
		resultGui <- gui.Launch(endGui, u)
		endEmulation <- true
	}()

	go func() {
		resultEmulation <- emulation.Launch(endEmulation, u, os.Args[1:])
		endGui <- true
	}()

	if err := <-resultGui; err != nil {
		fmt.Printf("*** %s\n", err)
	}
	if err := <-resultEmulation; err != nil {
		fmt.Printf("*** %s\n", err)
	}
}
