// Command pathtrace renders a scene file to a PPM image.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cbellone/pathtrace/pkg/core"
	"github.com/cbellone/pathtrace/pkg/loader"
	"github.com/cbellone/pathtrace/pkg/render"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <scene-file> <output.ppm>\n", os.Args[0])
		os.Exit(1)
	}
	inputPath, outputPath := os.Args[1], os.Args[2]

	logger := core.NewDefaultLogger()

	in, err := os.Open(inputPath)
	if err != nil {
		fmt.Printf("Error opening scene file: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	startTime := time.Now()

	sc, err := loader.New(logger).Load(in)
	if err != nil {
		fmt.Printf("Error loading scene: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		fmt.Printf("Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := render.Render(sc, out); err != nil {
		fmt.Printf("Error rendering scene: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendered %s -> %s in %v\n", inputPath, outputPath, time.Since(startTime))
}
