package raster

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"scene-raytracer/internal/geometry"
	"scene-raytracer/internal/mathutil"
	"scene-raytracer/internal/scene"
	"scene-raytracer/internal/shade"
)

// RowError reports a row whose tracing panicked. None of the row is written,
// so it keeps the buffer's initial white.
type RowError struct {
	Row   int
	Value any
}

func (e *RowError) Error() string {
	return fmt.Sprintf("raster: row %d: %v", e.Row, e.Value)
}

type tracer func(ray geometry.Ray, s *scene.Scene) mathutil.Vec3

// Render traces one primary ray per pixel using a pool of workers,
// each taking whole rows. The result does not depend on the worker count.
// workers <= 0 uses runtime.NumCPU().
func Render(s *scene.Scene, workers int) (*FrameBuffer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return render(s, workers, shade.TraceRay)
}

func render(s *scene.Scene, workers int, trace tracer) (*FrameBuffer, error) {
	cam := s.Camera
	fb := NewFrameBuffer(cam.Width, cam.Height)

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > cam.Height {
		workers = cam.Height
	}

	rowErrs := make([]error, cam.Height)
	rowChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range rowChan {
				rowErrs[row] = renderRow(fb, s, row, trace)
			}
		}()
	}

	for row := 0; row < cam.Height; row++ {
		rowChan <- row
	}
	close(rowChan)
	wg.Wait()

	return fb, errors.Join(rowErrs...)
}

// renderRow writes only to its own row of fb, and only once the whole row traced.
func renderRow(fb *FrameBuffer, s *scene.Scene, row int, trace tracer) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &RowError{Row: row, Value: v}
		}
	}()

	width := s.Camera.Width
	line := make([]uint8, width*3)
	for col := 0; col < width; col++ {
		c := trace(s.Camera.PixelToRay(row, col), s)
		line[col*3], line[col*3+1], line[col*3+2] = Composite(c)
	}
	for col := 0; col < width; col++ {
		fb.PutPixel(row, col, line[col*3], line[col*3+1], line[col*3+2])
	}
	return nil
}
