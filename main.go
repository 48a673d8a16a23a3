package main

import "github.com/atti-709/chliebnaskazdodenny-web/cmd"

func main() {
	cmd.Execute()
}
