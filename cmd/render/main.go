package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"linepaint/internal/canvas"
	"linepaint/internal/raster"
)

func main() {
	replayPath := flag.String("replay", "output/input/strokes.json", "path to stroke log")
	targetPath := flag.String("target", "", "target image (defaults to the one recorded in the stroke log)")
	epoch := flag.Int("epoch", 0, "replay up to this epoch (0 = all)")
	out := flag.String("out", "render.png", "output image")
	frames := flag.String("frames", "", "if set, write one frame per epoch into this directory")
	flag.Parse()

	replay, err := canvas.LoadReplay(*replayPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading stroke log: %v\n", err)
		os.Exit(1)
	}
	if *targetPath == "" {
		*targetPath = replay.Target
	}
	target, err := raster.Load(*targetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading target: %v\n", err)
		os.Exit(1)
	}

	n := *epoch
	if n <= 0 || n > len(replay.Epochs) {
		n = len(replay.Epochs)
	}
	fmt.Printf("Loaded stroke log for %s (%dx%d, %d epochs, seed %d)\n",
		replay.Target, replay.Width, replay.Height, len(replay.Epochs), replay.Seed)

	if *frames != "" {
		if err := writeFrames(replay, target, n, *frames); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing frames: %v\n", err)
			os.Exit(1)
		}
	}

	img, err := replay.Playback(target, n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying: %v\n", err)
		os.Exit(1)
	}
	if err := raster.Save(img, *out); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving %s: %v\n", *out, err)
		os.Exit(1)
	}

	ratio := canvas.Similarity(target, img) / canvas.MaxSimilarity(target)
	fmt.Printf("Rendered %d epochs to %s (similarity %.2f%%)\n", n, *out, ratio*100)
}

// writeFrames saves the canvas after every epoch up to n.
func writeFrames(replay *canvas.Replay, target *raster.Raster, n int, dir string) error {
	img, err := replay.Playback(target, 0)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		elite, err := replay.Lines(i)
		if err != nil {
			return err
		}
		img, _ = canvas.Commit(target, img, elite)
		if err := raster.Save(img, filepath.Join(dir, fmt.Sprintf("frame%04d.png", i+1))); err != nil {
			return err
		}
	}
	return nil
}
