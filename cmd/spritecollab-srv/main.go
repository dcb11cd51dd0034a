package main

import "github.com/marius851000/spritecollab-srv/internal/srv"

func main() {
	srv.Run()
}
