// Package render drives the per-pixel sampling loop, tone maps and gamma
// corrects the accumulated radiance, and encodes the result as a binary
// PPM (P6) image.
package render

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"runtime"
	"sync"

	"github.com/cbellone/pathtrace/pkg/core"
	"github.com/cbellone/pathtrace/pkg/integrator"
	"github.com/cbellone/pathtrace/pkg/scene"
)

// acesTonemap applies the Narkowicz ACES fit, clamped to [0, 1].
func acesTonemap(c core.Vec3) core.Vec3 {
	const a, b, d, e = 2.51, 0.03, 0.59, 0.14
	const cc = 2.43
	apply := func(x float64) float64 {
		v := (x * (a*x + b)) / (x*(cc*x+d) + e)
		return math.Max(0, math.Min(1, v))
	}
	return core.Vec3{X: apply(c.X), Y: apply(c.Y), Z: apply(c.Z)}
}

// displayGamma is the gamma the final image is encoded for.
const displayGamma = 2.2

func gammaCorrect(c core.Vec3) core.Vec3 {
	return c.GammaCorrect(displayGamma)
}

// pixelSample draws sc.Samples jittered camera rays through pixel (x, y)
// and averages the traced radiance.
func pixelSample(sc *scene.Scene, sampler core.Sampler, x, y int) core.Vec3 {
	var sum core.Vec3
	for i := 0; i < sc.Samples; i++ {
		fx := float64(x) + sampler.Get1D()
		fy := float64(y) + sampler.Get1D()
		ray := sc.Camera.Ray(fx, fy)
		sum = sum.Add(integrator.Trace(sc, ray, sampler, sc.RayDepth))
	}
	if sc.Samples == 0 {
		return core.Vec3{}
	}
	return sum.Multiply(1 / float64(sc.Samples))
}

// Render renders the scene and writes a binary PPM (P6) image to w. Rows
// are distributed across a worker pool sized to GOMAXPROCS; each pixel
// draws from a sampler seeded deterministically from its coordinates, so
// a render is reproducible regardless of how work happens to interleave
// across goroutines.
func Render(sc *scene.Scene, w io.Writer) error {
	width, height := sc.Camera.Width, sc.Camera.Height
	pixels := make([]core.Vec3, width*height)

	rows := make(chan int)
	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}

	for wkr := 0; wkr < workers; wkr++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				for x := 0; x < width; x++ {
					seed := int64(y)*int64(width) + int64(x)
					sampler := core.NewSeededSampler(seed)
					pixels[y*width+x] = pixelSample(sc, sampler, x, y)
				}
			}
		}()
	}
	for y := 0; y < height; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", width, height); err != nil {
		return err
	}

	buf := make([]byte, 3)
	for _, c := range pixels {
		c = acesTonemap(c)
		c = gammaCorrect(c)
		buf[0] = byte(math.Round(255 * c.X))
		buf[1] = byte(math.Round(255 * c.Y))
		buf[2] = byte(math.Round(255 * c.Z))
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
